package aicheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grammar-backend/internal/grammar"
)

func TestStripFencesEquivalence(t *testing.T) {
	body := `{"errors":[{"message":"m","offset":1,"length":2}]}`
	inputs := map[string]string{
		"bare":        body,
		"json fence":  "```json\n" + body + "\n```",
		"plain fence": "```\n" + body + "\n```",
		"padded":      "  \n```json " + body + " ```  \n",
	}
	want, err := Parse(body, "abcdef")
	require.NoError(t, err)

	for name, in := range inputs {
		in := in
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, body, StripFences(in))
			got, err := Parse(in, "abcdef")
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestParseAlternateKeys(t *testing.T) {
	primary := `{"errors":[{"message":"Bad verb","shortMessage":"Verb","suggestions":["is",{"value":"was"}],"explanation":"Agreement"}]}`
	alternate := `{"errors":[{"description":"Bad verb","type":"Verb","replacements":[{"suggestion":"is"},"was"],"rule":"Agreement"}]}`

	a, err := Parse(primary, "He are here.")
	require.NoError(t, err)
	b, err := Parse(alternate, "He are here.")
	require.NoError(t, err)
	require.Len(t, a, 1)
	require.Len(t, b, 1)

	assert.Equal(t, "Bad verb", a[0].Message)
	assert.Equal(t, a[0].Message, b[0].Message)
	assert.Equal(t, a[0].ShortMessage, b[0].ShortMessage)
	assert.Equal(t, []grammar.Replacement{{Value: "is"}, {Value: "was"}}, a[0].Replacements)
	assert.Equal(t, a[0].Replacements, b[0].Replacements)
	assert.Equal(t, a[0].Rule.Description, b[0].Rule.Description)
}

func TestParseDefaults(t *testing.T) {
	text := "Their going home."
	got, err := Parse(`{"errors":[{"message":"m"}]}`, text)
	require.NoError(t, err)
	require.Len(t, got, 1)

	e := got[0]
	assert.Equal(t, 0, e.Offset)
	assert.Equal(t, 1, e.Length)
	assert.Equal(t, "OPENAI_GRAMMAR_0", e.Rule.ID)
	assert.Equal(t, defaultRuleText, e.Rule.Description)
	assert.Equal(t, grammar.Category{ID: "AI_GRAMMAR", Name: "Grammar"}, e.Rule.Category)
	assert.Equal(t, "grammar", e.Rule.IssueType)
	assert.Equal(t, text, e.Sentence)
	assert.Equal(t, grammar.TypeOther, e.Type.TypeName)
	assert.NotNil(t, e.Replacements)
	assert.Empty(t, e.Replacements)
}

func TestParseLengthFromMatchedText(t *testing.T) {
	got, err := Parse(`{"errors":[{"offset":"6","text":"going"}]}`, "Their going home.")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 6, got[0].Offset)
	assert.Equal(t, 5, got[0].Length)
}

func TestParseRuleIDsAndCategories(t *testing.T) {
	raw := `{"errors":[
	  {"type":"spelling","category":"Spelling","severity":"high"},
	  {"type":"style","category":"word choice","severity":"Medium"},
	  {"type":"clarity","severity":"low"},
	  {"category":"Tone"}
	],"summary":{"totalErrors":4}}`
	got, err := Parse(raw, "Some text to check.")
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, "OPENAI_SPELLING_0", got[0].Rule.ID)
	assert.Equal(t, grammar.Category{ID: "SPELLING", Name: "Spelling"}, got[0].Rule.Category)
	assert.Equal(t, grammar.TypeHigh, got[0].Type.TypeName)

	assert.Equal(t, "OPENAI_STYLE_1", got[1].Rule.ID)
	assert.Equal(t, grammar.Category{ID: "WORD CHOICE", Name: "Word Choice"}, got[1].Rule.Category)
	assert.Equal(t, grammar.TypeMedium, got[1].Type.TypeName)

	assert.Equal(t, "OPENAI_CLARITY_2", got[2].Rule.ID)
	assert.Equal(t, grammar.Category{ID: "AI_GRAMMAR", Name: "Clarity"}, got[2].Rule.Category)
	assert.Equal(t, grammar.TypeLow, got[2].Type.TypeName)

	assert.Equal(t, "OPENAI_GRAMMAR_3", got[3].Rule.ID)
	assert.Equal(t, grammar.Category{ID: "TONE", Name: "Grammar"}, got[3].Rule.Category)
}

func TestParseClampsProviderSpans(t *testing.T) {
	got, err := Parse(`{"errors":[{"offset":40,"length":3},{"offset":2,"length":99}]}`, "short")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 5, got[0].Offset)
	assert.Equal(t, 0, got[0].Length)
	assert.Equal(t, 2, got[1].Offset)
	assert.Equal(t, 3, got[1].Length)
}

func TestParseMissingErrorsArray(t *testing.T) {
	got, err := Parse(`{"summary":{"overallQuality":"excellent"}}`, "Fine.")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParseRejectsMalformedOutput(t *testing.T) {
	_, err := Parse("Sure! Here are the errors: none", "x")
	require.Error(t, err)

	_, err = Parse(`["not","an","object"]`, "x")
	require.ErrorIs(t, err, ErrNotObject)

	_, err = Parse(`{"errors":[]} Hope this helps!`, "x")
	require.ErrorIs(t, err, ErrTrailingData)

	_, err = Parse(`{"errors":[]}{"errors":[]}`, "x")
	require.ErrorIs(t, err, ErrTrailingData)

	got, err := Parse("{\"errors\":[]}\n  \n", "x")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseDefaultLengthAtEndOfText(t *testing.T) {
	text := "Helo world"
	got, err := Parse(`{"errors":[{"message":"m","offset":10}]}`, text)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, 10, got[0].Offset)
	assert.Equal(t, 1, got[0].Length)
	assert.Equal(t, grammar.TextLength(text)+1, got[0].Offset+got[0].Length)
}

func TestParseHugeLengthClampsToText(t *testing.T) {
	got, err := Parse(`{"errors":[{"offset":2,"length":1e30},{"offset":-1e30,"length":"3"}]}`, "Helo world")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 2, got[0].Offset)
	assert.Equal(t, 8, got[0].Length)
	assert.Equal(t, 0, got[1].Offset)
	assert.Equal(t, 3, got[1].Length)
}

func TestMapCategory(t *testing.T) {
	cases := map[string]string{
		"grammar":            "Grammar",
		"PUNCTUATION":        "Punctuation",
		"sentence-structure": "Sentence Structure",
		"Sentence Structure": "Sentence Structure",
		"redundancy":         "Redundancy",
		"":                   "Grammar",
		"vibes":              "Grammar",
	}
	for in, want := range cases {
		assert.Equal(t, want, mapCategory(in), in)
	}
}
