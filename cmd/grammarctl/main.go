package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"grammar-backend/internal/shared/config"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "grammarctl",
		Short: "Check text for grammar issues from the command line",
		Long: `grammarctl runs the same checkers as the API against a file or stdin,
and manages the analysis history schema.`,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/grammarctl/config.yaml)")
	rootCmd.PersistentFlags().String("languagetool-url", "", "LanguageTool check endpoint")
	rootCmd.PersistentFlags().String("database-url", "", "Postgres connection string")

	_ = viper.BindPFlag("languagetool.url", rootCmd.PersistentFlags().Lookup("languagetool-url"))
	_ = viper.BindPFlag("database.url", rootCmd.PersistentFlags().Lookup("database-url"))

	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(languagesCmd())
	rootCmd.AddCommand(migrateCmd())
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		viper.AddConfigPath(filepath.Join(home, ".config", "grammarctl"))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("GRAMMARCTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// setDefaults seeds v from the API's environment so both entrypoints agree.
func setDefaults(v *viper.Viper) {
	base := config.Load()
	v.SetDefault("languagetool.url", base.LanguageToolURL)
	v.SetDefault("openai.api_key", base.OpenAIAPIKey)
	v.SetDefault("openai.model", base.LLMModel)
	v.SetDefault("openai.base_url", base.OpenAIBaseURL)
	v.SetDefault("openai.timeout", base.OpenAITimeout)
	v.SetDefault("database.url", base.DatabaseURL)
}

// appConfig maps viper keys onto the shared config struct.
func appConfig(v *viper.Viper) config.Config {
	return config.Config{
		Env:             "cli",
		LanguageToolURL: v.GetString("languagetool.url"),
		OpenAIAPIKey:    strings.TrimSpace(v.GetString("openai.api_key")),
		LLMModel:        v.GetString("openai.model"),
		OpenAIBaseURL:   v.GetString("openai.base_url"),
		OpenAITimeout:   v.GetDuration("openai.timeout"),
		DatabaseURL:     v.GetString("database.url"),
	}
}
