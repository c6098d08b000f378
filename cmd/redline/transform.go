package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/redline/internal/document"
	"github.com/dshills/redline/internal/prompt"
	"github.com/dshills/redline/internal/provider"
	"github.com/dshills/redline/internal/render"
	"github.com/dshills/redline/internal/transform"
)

var (
	transformPrompt    string
	transformScope     string
	transformSelection string
	transformCursor    int
	transformModel     string
	transformDryRun    bool
	transformColor     string
	transformDynamic   bool
	transformLines     int
	transformWholeNote bool
	transformCustomCtx string
	transformNoContext bool
)

var transformCmd = &cobra.Command{
	Use:   "transform FILE",
	Short: "Rewrite part of a file as inline suggestions",
	Long: `Send the selected part of FILE to the configured model and write the
rewrite back as inline suggestions. Review them with "redline review",
"redline accept" or "redline reject".

Scopes:
  document   the whole file, skipping YAML frontmatter (default)
  selection  the byte range given by --selection FROM:TO
  paragraph  the paragraph around --cursor`,
	Args: cobra.ExactArgs(1),
	RunE: runTransform,
}

func init() {
	f := transformCmd.Flags()
	f.StringVarP(&transformPrompt, "prompt", "p", "", "Prompt id (see \"redline prompts\")")
	f.StringVar(&transformScope, "scope", "", "Scope: document, selection, paragraph")
	f.StringVar(&transformSelection, "selection", "", "Byte range FROM:TO to transform")
	f.IntVar(&transformCursor, "cursor", -1, "Byte offset inside the paragraph to transform")
	f.StringVarP(&transformModel, "model", "m", "", "Model override")
	f.BoolVar(&transformDryRun, "dry-run", false, "Show the suggestions without writing the file")
	f.StringVar(&transformColor, "color", "auto", "Color output: auto, always, never")
	f.BoolVar(&transformDynamic, "dynamic-context", false, "Send surrounding lines as context")
	f.IntVar(&transformLines, "context-lines", 0, "Lines before and after for dynamic context")
	f.BoolVar(&transformWholeNote, "whole-note", false, "Send the whole file as context")
	f.StringVar(&transformCustomCtx, "context", "", "Extra context for the model")
	f.BoolVar(&transformNoContext, "no-context", false, "Send no context, ignoring the config")
}

func parseSelection(s string) (document.Selection, error) {
	from, to, ok := strings.Cut(s, ":")
	if !ok {
		return document.Selection{}, fmt.Errorf("selection %q: want FROM:TO", s)
	}
	a, err := strconv.Atoi(strings.TrimSpace(from))
	if err != nil {
		return document.Selection{}, fmt.Errorf("selection %q: %w", s, err)
	}
	b, err := strconv.Atoi(strings.TrimSpace(to))
	if err != nil {
		return document.Selection{}, fmt.Errorf("selection %q: %w", s, err)
	}
	return document.Selection{Anchor: a, Head: b}, nil
}

// transformRequest builds the request and positions the document's
// selection from the flags.
func transformRequest(cmd *cobra.Command, doc *document.Document) (transform.Request, error) {
	scopeName := transformScope
	if scopeName == "" {
		switch {
		case transformSelection != "":
			scopeName = "selection"
		case transformCursor >= 0:
			scopeName = "paragraph"
		default:
			scopeName = "document"
		}
	}
	scope, err := transform.ParseScope(scopeName)
	if err != nil {
		return transform.Request{}, err
	}

	if transformSelection != "" {
		sel, err := parseSelection(transformSelection)
		if err != nil {
			return transform.Request{}, err
		}
		if err := doc.SetSelections(sel); err != nil {
			return transform.Request{}, err
		}
	} else if transformCursor >= 0 {
		if err := doc.SetCursor(transformCursor); err != nil {
			return transform.Request{}, err
		}
	}

	req := transform.Request{
		DocumentID: doc.ID(),
		Scope:      scope,
		PromptID:   transformPrompt,
		Model:      transformModel,
	}

	flags := cmd.Flags()
	if transformNoContext || flags.Changed("dynamic-context") || flags.Changed("whole-note") ||
		flags.Changed("context") || flags.Changed("context-lines") {
		opts := settings.ContextOptions()
		if transformNoContext {
			opts = prompt.ContextOptions{}
		}
		if flags.Changed("dynamic-context") {
			opts.Dynamic = transformDynamic
		}
		if flags.Changed("context-lines") {
			opts.DynamicLines = transformLines
		}
		if flags.Changed("whole-note") {
			opts.WholeNote = transformWholeNote
		}
		if flags.Changed("context") {
			opts.Custom = transformCustomCtx
		}
		req.Context = &opts
	}
	return req, nil
}

func runTransform(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	colored, err := useColor(transformColor)
	if err != nil {
		return err
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

	req, err := transformRequest(cmd, sess.doc)
	if err != nil {
		return err
	}

	gen, cleanup, err := generatorFactory(ctx, settings)
	if err != nil {
		return err
	}
	defer cleanup()

	errOut := cmd.ErrOrStderr()
	tr := transform.New(sess.ws, gen, settings,
		transform.WithRecorder(sess.db),
		transform.WithLogger(logger.With().Str("cmp", "transform").Logger()),
		transform.WithNotify(func(msg string) { fmt.Fprintln(errOut, msg) }),
	)

	out, err := tr.Run(ctx, req)
	if errors.Is(err, transform.ErrNoChanges) {
		fmt.Fprintln(cmd.OutOrStdout(), "No changes suggested.")
		return nil
	}
	if err != nil {
		var pe *transform.ProviderError
		if errors.As(err, &pe) && errors.Is(err, provider.ErrNoAPIKey) {
			return fmt.Errorf("%w\nrun \"redline models\" to see which provider serves each model", err)
		}
		return err
	}

	if err := render.WriteANSI(cmd.OutOrStdout(), render.Spans(sess.doc.Text(), markList(sess.doc)),
		render.ANSIOptions{Color: colored, Theme: theme}); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout())

	if transformDryRun {
		fmt.Fprintf(errOut, "Dry run: %s not modified.\n", sess.doc.Path())
		return nil
	}
	if err := sess.persist(ctx); err != nil {
		return err
	}
	fmt.Fprintf(errOut, "%d suggestions written to %s.\n", out.Marks, sess.doc.Path())
	return nil
}
