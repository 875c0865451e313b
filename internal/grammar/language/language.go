package language

import (
	"sort"
	"strings"
)

// Default is used when a request does not name a language.
const Default = "en"

// variants maps short codes to the locale variants the rule-based checker accepts.
var variants = map[string]string{
	"en":    "en-US",
	"de":    "de-DE",
	"fr":    "fr-FR",
	"it":    "it-IT",
	"nl":    "nl",
	"es":    "es",
	"pt":    "pt-PT",
	"pl":    "pl-PL",
	"ru":    "ru-RU",
	"zh-cn": "zh-CN",
}

// Normalized is the resolved language plus the optional hint parameters.
type Normalized struct {
	Code             string `json:"code"`
	PreferredVariant string `json:"preferredVariant,omitempty"`
	MotherTongue     string `json:"motherTongue,omitempty"`
}

// HasHints reports whether any hint parameter was derived.
func (n Normalized) HasHints() bool {
	return n.PreferredVariant != "" || n.MotherTongue != ""
}

// Normalize resolves a language code through the variant table. Unmapped codes
// pass through unchanged.
func Normalize(lang string) Normalized {
	code, ok := variants[strings.ToLower(lang)]
	if !ok {
		code = lang
	}

	out := Normalized{Code: code}
	if hasVariant(code) {
		out.PreferredVariant = code
	}
	prefix, _, _ := strings.Cut(code, "-")
	if len(prefix) == 2 {
		out.MotherTongue = prefix
	}
	return out
}

// hasVariant matches "xx-YY": a separator with at least one character on each side.
func hasVariant(code string) bool {
	if len(code) < 3 {
		return false
	}
	i := strings.Index(code[1:], "-")
	if i < 0 {
		return false
	}
	return i+1 < len(code)-1
}

// Entry is one row of the variant table.
type Entry struct {
	Code    string `json:"code"`
	Variant string `json:"variant"`
}

// Table returns the variant table sorted by short code.
func Table() []Entry {
	out := make([]Entry, 0, len(variants))
	for code, variant := range variants {
		out = append(out, Entry{Code: code, Variant: variant})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
