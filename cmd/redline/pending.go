package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/redline/internal/runlog"
)

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List files with pending suggestions",
	Args:  cobra.NoArgs,
	RunE:  runPending,
}

func runPending(cmd *cobra.Command, _ []string) error {
	db, err := runlog.Open(settings.DataDir)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	paths, err := db.PendingPaths(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(paths) == 0 {
		fmt.Fprintln(out, "No pending suggestions.")
		return nil
	}
	for _, p := range paths {
		fmt.Fprintln(out, p)
	}
	return nil
}
