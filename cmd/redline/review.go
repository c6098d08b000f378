package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/redline/internal/config"
	"github.com/dshills/redline/internal/render"
	"github.com/dshills/redline/internal/review"
)

var reviewCmd = &cobra.Command{
	Use:   "review FILE",
	Short: "Accept or reject pending suggestions interactively",
	Long: `Open FILE in a terminal view with its pending suggestions highlighted.

Keys:
  n, j, Tab       next suggestion
  p, k, BackTab   previous suggestion
  a, Enter        accept
  r               reject
  A / R           accept all / reject all
  q, Esc          quit, keeping unresolved suggestions

Changes to the review colors in the config file apply immediately.`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

func runReview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if !isTerminal(os.Stdin) || !stdoutIsTerminal() {
		return errors.New("review needs a terminal; use \"redline accept\" or \"redline reject\" instead")
	}
	theme, err := render.ThemeFromHex(settings.Review.AddedColor, settings.Review.RemovedColor)
	if err != nil {
		return err
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

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	ui := review.New(screen, sess.doc, theme)

	opts := configOptions()
	if _, statErr := os.Stat(opts.Path); statErr == nil {
		w, err := config.Watch(opts, 200*time.Millisecond, func(s config.Settings, err error) {
			if err != nil {
				logger.Warn().Err(err).Msg("config reload failed")
				return
			}
			t, err := render.ThemeFromHex(s.Review.AddedColor, s.Review.RemovedColor)
			if err != nil {
				logger.Warn().Err(err).Msg("invalid review colors")
				return
			}
			ui.SetTheme(t)
		})
		if err != nil {
			logger.Warn().Err(err).Msg("config watch disabled")
		} else {
			defer func() { _ = w.Close() }()
		}
	}

	sum, runErr := ui.Run(ctx)
	screen.Fini()

	if err := sess.persist(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Accepted %d, rejected %d, %d pending.\n", sum.Accepted, sum.Rejected, sum.Pending)
	if runErr != nil && ctx.Err() != nil {
		return nil
	}
	return runErr
}
