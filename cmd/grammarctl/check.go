package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"grammar-backend/internal/bootstrap"
	"grammar-backend/internal/extract"
	"grammar-backend/internal/grammar"
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Analyze a file, or stdin when no file is given",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCheck,
	}

	cmd.Flags().String("language", "", "language code, e.g. en or de-DE")
	cmd.Flags().Bool("ai", false, "use the generative checker when a key is configured")
	cmd.Flags().StringP("format", "f", formatTable, "output format (table, json, yaml)")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	lang, _ := cmd.Flags().GetString("language")
	useAI, _ := cmd.Flags().GetBool("ai")
	format, _ := cmd.Flags().GetString("format")
	if !validFormat(format) {
		return fmt.Errorf("unknown format %q", format)
	}

	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	svc, err := bootstrap.BuildService(appConfig(viper.GetViper()), nil)
	if err != nil {
		return err
	}
	defer svc.Close()

	if useAI && !svc.GenerativeEnabled() {
		fmt.Fprintln(cmd.ErrOrStderr(), "no OpenAI key configured, using LanguageTool")
	}

	result, err := svc.Analyze(cmd.Context(), grammar.Request{Text: text, Language: lang}, useAI)
	if err != nil {
		return err
	}
	return renderResult(cmd.OutOrStdout(), result, format)
}

// readInput extracts text from the named file or reads stdin verbatim.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	text, err := extract.ExtractTextFromBytes(cmd.Context(), data, "", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", path, err)
	}
	return text, nil
}
