package aicheck

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"grammar-backend/internal/grammar"
)

const (
	defaultCategoryID   = "AI_GRAMMAR"
	defaultCategoryName = "Grammar"
	defaultIssueType    = "grammar"
	defaultRuleText     = "Grammar issue detected by AI"
	rulePrefix          = "OPENAI"
)

var categoryNames = map[string]string{
	"grammar":            "Grammar",
	"spelling":           "Spelling",
	"style":              "Style",
	"punctuation":        "Punctuation",
	"clarity":            "Clarity",
	"redundancy":         "Redundancy",
	"word_choice":        "Word Choice",
	"sentence_structure": "Sentence Structure",
}

// ErrNotObject is returned when the model output is valid JSON but not an object.
var ErrNotObject = errors.New("model output is not a JSON object")

// ErrTrailingData is returned when text follows the JSON document.
var ErrTrailingData = errors.New("model output has data after the JSON document")

// StripFences removes a wrapping Markdown code fence, with or without a
// language tag. Unfenced input is only trimmed.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	var rest string
	switch {
	case strings.HasPrefix(s, "```json"):
		rest = strings.TrimPrefix(s, "```json")
	case strings.HasPrefix(s, "```"):
		rest = strings.TrimPrefix(s, "```")
	default:
		return s
	}
	rest = strings.TrimSpace(rest)
	rest = strings.TrimSuffix(rest, "```")
	return strings.TrimSpace(rest)
}

// Parse decodes the model reply and maps its errors array. text is the
// submitted text, used for sentence fallback and span clamping.
func Parse(raw, text string) ([]grammar.Error, error) {
	cleaned := StripFences(raw)
	dec := json.NewDecoder(strings.NewReader(cleaned))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode model output: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}

	items, _ := obj["errors"].([]any)
	textLength := grammar.TextLength(text)
	out := make([]grammar.Error, 0, len(items))
	for i, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, mapItem(item, i, text, textLength))
	}
	return out, nil
}

func mapItem(item map[string]any, index int, text string, textLength int) grammar.Error {
	issueType := stringField(item, "type")
	category := stringField(item, "category")

	offset, _ := intField(item, "offset")
	length, hasLength := intField(item, "length")
	if !hasLength {
		if matched := stringField(item, "text"); matched != "" {
			length, hasLength = grammar.TextLength(matched), true
		}
	}
	if hasLength {
		offset, length = grammar.ClampSpan(offset, length, textLength)
	} else {
		offset, _ = grammar.ClampSpan(offset, 0, textLength)
		length = 1
	}

	ruleType := strings.ToUpper(issueType)
	if ruleType == "" {
		ruleType = "GRAMMAR"
	}
	categoryID := strings.ToUpper(category)
	if categoryID == "" {
		categoryID = defaultCategoryID
	}

	return grammar.Error{
		Message:      stringField(item, "message", "description"),
		ShortMessage: stringField(item, "shortMessage", "type"),
		Offset:       offset,
		Length:       length,
		Replacements: suggestions(item),
		Rule: grammar.Rule{
			ID:          fmt.Sprintf("%s_%s_%d", rulePrefix, ruleType, index),
			Description: orDefault(stringField(item, "explanation", "rule"), defaultRuleText),
			Category: grammar.Category{
				ID:   categoryID,
				Name: mapCategory(orDefault(category, issueType)),
			},
			IssueType: orDefault(issueType, defaultIssueType),
		},
		Sentence: orDefault(stringField(item, "sentence"), text),
		Type:     grammar.ErrorType{TypeName: grammar.FoldType(stringField(item, "severity"))},
	}
}

// mapCategory resolves a free-text label to a display name. Unknown labels
// read as Grammar.
func mapCategory(label string) string {
	key := strings.ToLower(strings.TrimSpace(label))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	if name, ok := categoryNames[key]; ok {
		return name
	}
	return defaultCategoryName
}

// stringField returns the first non-empty string among keys.
func stringField(item map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := item[k].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// intField reads a non-zero integer that may arrive as a number or a numeric
// string.
func intField(item map[string]any, key string) (int, bool) {
	var n float64
	switch v := item[key].(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	case float64:
		n = v
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if n == 0 || math.IsNaN(n) {
		return 0, false
	}
	// Out-of-range floats have no defined int conversion.
	n = math.Max(math.Min(n, math.MaxInt32), math.MinInt32)
	return int(n), true
}

// suggestions reads the first present list among suggestions and
// replacements. Items are bare strings or objects with value or suggestion.
func suggestions(item map[string]any) []grammar.Replacement {
	out := []grammar.Replacement{}
	for _, key := range []string{"suggestions", "replacements"} {
		list, ok := item[key].([]any)
		if !ok {
			continue
		}
		for _, entry := range list {
			switch v := entry.(type) {
			case string:
				if v != "" {
					out = append(out, grammar.Replacement{Value: v})
				}
			case map[string]any:
				if value := stringField(v, "value", "suggestion"); value != "" {
					out = append(out, grammar.Replacement{Value: value})
				}
			}
		}
		return out
	}
	return out
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
