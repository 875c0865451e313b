package grammar

import "strings"

// Folded type labels. Provider vocabularies map onto this set.
const (
	TypeUnknownWord = "UnknownWord"
	TypeHint        = "Hint"
	TypeOther       = "Other"
	TypeHigh        = "High"
	TypeMedium      = "Medium"
	TypeLow         = "Low"
)

var foldedTypes = map[string]string{
	"unknownword": TypeUnknownWord,
	"hint":        TypeHint,
	"other":       TypeOther,
	"high":        TypeHigh,
	"medium":      TypeMedium,
	"low":         TypeLow,
}

// FoldType maps a provider type or severity label onto the closed set.
func FoldType(label string) string {
	key := strings.ToLower(strings.TrimSpace(label))
	key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)
	if folded, ok := foldedTypes[key]; ok {
		return folded
	}
	return TypeOther
}

var categoryNames = map[string]string{
	"TYPOS":                  "Possible Typo",
	"GRAMMAR":                "Grammar",
	"STYLE":                  "Style",
	"PUNCTUATION":            "Punctuation",
	"CASING":                 "Capitalization",
	"REDUNDANCY":             "Redundancy",
	"SEMANTICS":              "Semantics",
	"MISC":                   "Miscellaneous",
	"TYPOGRAPHY":             "Typography",
	"CONFUSED_WORDS":         "Commonly Confused Words",
	"COLLOCATIONS":           "Collocations",
	"COMPOUNDING":            "Compounding",
	"NONSTANDARD_PHRASES":    "Nonstandard Phrases",
	"PLAIN_ENGLISH":          "Plain English",
	"REPETITIONS_STYLE":      "Style Repetitions",
	"FALSE_FRIENDS":          "False Friends",
	"GENDER_NEUTRALITY":      "Gender Neutrality",
	"AMERICAN_ENGLISH_STYLE": "American English Style",
	"BRITISH_ENGLISH":        "British English",
	"WIKIPEDIA":              "Wikipedia",
	"CREATIVE_WRITING":       "Creative Writing",
	"TEXT_ANALYSIS":          "Text Analysis",
	"PROPER_NOUNS":           "Proper Nouns",
}

const (
	fallbackCategoryID   = "MISC"
	fallbackCategoryName = "Miscellaneous"
)

// CompleteCategory fills a missing id or name so every error has both.
func CompleteCategory(c Category) Category {
	c.ID = strings.TrimSpace(c.ID)
	c.Name = strings.TrimSpace(c.Name)
	if c.ID == "" && c.Name == "" {
		return Category{ID: fallbackCategoryID, Name: fallbackCategoryName}
	}
	if c.ID == "" {
		c.ID = strings.ToUpper(strings.NewReplacer(" ", "_", "-", "_").Replace(c.Name))
	}
	if c.Name == "" {
		if name, ok := categoryNames[strings.ToUpper(c.ID)]; ok {
			c.Name = name
		} else {
			c.Name = c.ID
		}
	}
	return c
}

// ClampSpan keeps [offset, offset+length) inside a text of textLength units.
// Negative lengths become zero.
func ClampSpan(offset, length, textLength int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > textLength {
		offset = textLength
	}
	if length < 0 {
		length = 0
	}
	if offset+length > textLength {
		length = textLength - offset
	}
	return offset, length
}
