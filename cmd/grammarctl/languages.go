package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"grammar-backend/internal/grammar/language"
)

func languagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List language codes and the variants sent to LanguageTool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tbl := table.NewWriter()
			tbl.SetOutputMirror(cmd.OutOrStdout())
			tbl.SetStyle(table.StyleLight)
			tbl.AppendHeader(table.Row{"Code", "Variant", "Hints"})
			for _, entry := range language.Table() {
				hints := "-"
				if n := language.Normalize(entry.Code); n.HasHints() {
					hints = n.PreferredVariant + " / " + n.MotherTongue
				}
				tbl.AppendRow(table.Row{entry.Code, entry.Variant, hints})
			}
			tbl.AppendFooter(table.Row{"Default", language.Default, ""})
			tbl.Render()
			return nil
		},
	}
}
