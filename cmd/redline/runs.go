package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/redline/internal/runlog"
)

var (
	runsLimit  int
	runsFormat string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent transformation runs and their cost",
	Args:  cobra.NoArgs,
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "Number of runs to show (0 for all)")
	runsCmd.Flags().StringVar(&runsFormat, "format", "table", "Output format: table, json")
}

func runRuns(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	db, err := runlog.Open(settings.DataDir)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	runs, err := db.Runs(ctx, runsLimit)
	if err != nil {
		return err
	}

	switch runsFormat {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(runs)
	case "table":
	default:
		return fmt.Errorf("unknown output format: %s", runsFormat)
	}

	total, err := db.TotalCost(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tOUTCOME\tSCOPE\tPROMPT\tMODEL\tMARKS\tCOST\tERROR")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t$%.4f\t%s\n",
			r.StartedAt.Format("2006-01-02 15:04:05"), r.Outcome, r.Scope, r.Prompt, r.Model, r.Marks, r.Cost, r.Error)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Total estimated cost: $%.4f\n", total)
	return nil
}
