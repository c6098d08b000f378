package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/redline/internal/prompt"
	"github.com/dshills/redline/internal/provider"
)

var (
	promptsFormat string
	modelsFormat  string
)

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "List the configured prompts",
	Args:  cobra.NoArgs,
	RunE:  runPrompts,
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List supported models with their provider and prices",
	Args:  cobra.NoArgs,
	RunE:  runModels,
}

func init() {
	promptsCmd.Flags().StringVar(&promptsFormat, "format", "table", "Output format: table, json")
	modelsCmd.Flags().StringVar(&modelsFormat, "format", "table", "Output format: table, json")
}

func runPrompts(cmd *cobra.Command, _ []string) error {
	def, _ := prompt.Select(settings.Prompts, "", settings.DefaultPromptID)

	switch promptsFormat {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(settings.Prompts)
	case "table":
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tENABLED\tMODEL\tDEFAULT")
		for _, p := range settings.Prompts {
			model := p.Model
			if model == "" {
				model = "-"
			}
			mark := ""
			if p.ID == def.ID {
				mark = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%t\t%s\t%s\n", p.ID, p.Name, p.Enabled, model, mark)
		}
		return w.Flush()
	default:
		return fmt.Errorf("unknown output format: %s", promptsFormat)
	}
}

func runModels(cmd *cobra.Command, _ []string) error {
	models := provider.Models()
	switch modelsFormat {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(models)
	case "table":
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPROVIDER\tMAX OUTPUT\tINPUT $/M\tOUTPUT $/M\tKEY")
		for _, m := range models {
			key := "missing"
			if settings.APIKey(m.Kind) != "" {
				key = "set"
			}
			active := ""
			if m.ID == provider.ResolveModel(settings.Model) {
				active = " (default)"
			}
			fmt.Fprintf(w, "%s%s\t%s\t%d\t%.2f\t%.2f\t%s\n", m.ID, active, m.Kind, m.MaxOutputTokens, m.InputPrice, m.OutputPrice, key)
		}
		return w.Flush()
	default:
		return fmt.Errorf("unknown output format: %s", modelsFormat)
	}
}
