package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"grammar-backend/internal/grammar"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"

	maxSuggestions = 3
)

func validFormat(format string) bool {
	switch format {
	case formatTable, formatJSON, formatYAML:
		return true
	}
	return false
}

func renderResult(w io.Writer, result grammar.Result, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case formatYAML:
		return writeYAML(w, result)
	case formatTable:
		writeTable(w, result)
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}

// writeYAML goes through JSON so keys match the API payload.
func writeYAML(w io.Writer, result grammar.Result) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func writeTable(w io.Writer, result grammar.Result) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	// StyleLight upper-cases footers, which would mangle language codes.
	tbl.Style().Format.Footer = text.FormatDefault
	tbl.AppendHeader(table.Row{"#", "Offset", "Length", "Type", "Category", "Message", "Suggestions"})
	for i, e := range result.Errors {
		tbl.AppendRow(table.Row{
			i + 1,
			e.Offset,
			e.Length,
			e.Type.TypeName,
			e.Rule.Category.Name,
			e.Message,
			suggestionList(e.Replacements),
		})
	}
	tbl.AppendFooter(table.Row{
		"", "", "", "", "",
		fmt.Sprintf("%s issues in %s characters (%s)",
			humanize.Comma(int64(result.TotalErrors)),
			humanize.Comma(int64(result.TextLength)),
			result.Language),
		fmt.Sprintf("%d ms", result.ProcessingTime),
	})
	tbl.Render()
}

func suggestionList(reps []grammar.Replacement) string {
	values := make([]string, 0, maxSuggestions)
	for _, r := range reps {
		if len(values) == maxSuggestions {
			break
		}
		values = append(values, r.Value)
	}
	return strings.Join(values, ", ")
}
