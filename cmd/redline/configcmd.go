package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/redline/internal/config"
)

var (
	configLegacy bool
	configFormat string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the resolved configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved settings with API keys redacted",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), configOptions().Path)
		return nil
	},
}

func init() {
	configShowCmd.Flags().BoolVar(&configLegacy, "legacy", false, "Print as a legacy data.json settings file")
	configShowCmd.Flags().StringVar(&configFormat, "format", "yaml", "Output format: yaml, toml")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

func redact(s config.Settings) config.Settings {
	for _, key := range []*string{&s.OpenAIKey, &s.GeminiKey, &s.AnthropicKey} {
		if *key != "" {
			*key = "REDACTED"
		}
	}
	return s
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	s := redact(settings)

	var data []byte
	var err error
	if configLegacy {
		data, err = config.ExportLegacy(s)
	} else {
		data, err = config.Marshal("settings."+configFormat, s)
	}
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
