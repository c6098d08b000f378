package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/redline/internal/suggest"
)

var resolveAll bool

var acceptCmd = &cobra.Command{
	Use:   "accept FILE [ID...]",
	Short: "Accept pending suggestions",
	Long:  "Accept the suggestions with the given ids, or every suggestion with --all. Ids are listed by \"redline diff --list\".",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResolve(cmd, args, suggest.Accept)
	},
}

var rejectCmd = &cobra.Command{
	Use:   "reject FILE [ID...]",
	Short: "Reject pending suggestions",
	Long:  "Reject the suggestions with the given ids, or every suggestion with --all. Ids are listed by \"redline diff --list\".",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResolve(cmd, args, suggest.Reject)
	},
}

func init() {
	acceptCmd.Flags().BoolVar(&resolveAll, "all", false, "Resolve every pending suggestion")
	rejectCmd.Flags().BoolVar(&resolveAll, "all", false, "Resolve every pending suggestion")
}

func runResolve(cmd *cobra.Command, args []string, d suggest.Decision) error {
	ctx := cmd.Context()
	ids := args[1:]
	if !resolveAll && len(ids) == 0 {
		return errors.New("give suggestion ids or --all")
	}

	sess, err := openSession(ctx, settings, args[0])
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close() }()

	if !sess.doc.Suggestions().IsActive() {
		fmt.Fprintf(cmd.OutOrStdout(), "No pending suggestions in %s.\n", sess.doc.Path())
		return nil
	}

	n := 0
	if resolveAll {
		n, _, err = sess.doc.ResolveAll(d)
		if err != nil {
			return err
		}
	} else {
		for _, id := range ids {
			if _, err := sess.doc.Resolve(id, d); err != nil {
				if errors.Is(err, suggest.ErrMarkNotFound) {
					fmt.Fprintf(cmd.ErrOrStderr(), "skipping %s: not pending\n", id)
					continue
				}
				return err
			}
			n++
		}
	}

	if err := sess.persist(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%sed %d, %d pending.\n", capitalize(d.String()), n, sess.doc.Suggestions().Len())
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
