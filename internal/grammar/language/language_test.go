package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMapsTable(t *testing.T) {
	for _, entry := range Table() {
		got := Normalize(entry.Code)
		assert.Equal(t, entry.Variant, got.Code, "code %q", entry.Code)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Normalized
	}{
		{name: "english", in: "en", want: Normalized{Code: "en-US", PreferredVariant: "en-US", MotherTongue: "en"}},
		{name: "upper case", in: "DE", want: Normalized{Code: "de-DE", PreferredVariant: "de-DE", MotherTongue: "de"}},
		{name: "chinese", in: "zh-CN", want: Normalized{Code: "zh-CN", PreferredVariant: "zh-CN", MotherTongue: "zh"}},
		{name: "no variant", in: "es", want: Normalized{Code: "es", MotherTongue: "es"}},
		{name: "dutch", in: "nl", want: Normalized{Code: "nl", MotherTongue: "nl"}},
		{name: "unmapped passthrough", in: "uk-UA", want: Normalized{Code: "uk-UA", PreferredVariant: "uk-UA", MotherTongue: "uk"}},
		{name: "unmapped keeps case", in: "Sv", want: Normalized{Code: "Sv", MotherTongue: "Sv"}},
		{name: "three letter prefix", in: "ast-ES", want: Normalized{Code: "ast-ES", PreferredVariant: "ast-ES"}},
		{name: "auto", in: "auto", want: Normalized{Code: "auto"}},
		{name: "trailing separator", in: "en-", want: Normalized{Code: "en-", MotherTongue: "en"}},
		{name: "empty", in: "", want: Normalized{Code: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestHasHints(t *testing.T) {
	assert.True(t, Normalize("en").HasHints())
	assert.False(t, Normalize("auto").HasHints())
}

func TestTableSorted(t *testing.T) {
	table := Table()
	assert.Len(t, table, 10)
	for i := 1; i < len(table); i++ {
		assert.Less(t, table[i-1].Code, table[i].Code)
	}
}
