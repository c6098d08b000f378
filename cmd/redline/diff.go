package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/redline/internal/document"
	"github.com/dshills/redline/internal/render"
	"github.com/dshills/redline/internal/suggest"
)

var (
	diffColor string
	diffList  bool
)

var diffCmd = &cobra.Command{
	Use:   "diff FILE",
	Short: "Show a file with its pending suggestions",
	Long: `Print FILE with pending suggestions highlighted. Without color, added
text is shown as {+text+} and removed text as [-text-].`,
	Args: cobra.ExactArgs(1),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().StringVar(&diffColor, "color", "auto", "Color output: auto, always, never")
	diffCmd.Flags().BoolVar(&diffList, "list", false, "List suggestions with their ids instead")
}

func markList(doc *document.Document) []suggest.Mark {
	st, _ := doc.Suggestions().Current()
	return st.Marks
}

func runDiff(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	colored, err := useColor(diffColor)
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

	marks := markList(sess.doc)
	if diffList {
		return listMarks(cmd, sess.doc.Text(), marks)
	}
	if err := render.WriteANSI(cmd.OutOrStdout(), render.Spans(sess.doc.Text(), marks),
		render.ANSIOptions{Color: colored, Theme: theme}); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}

func listMarks(cmd *cobra.Command, text string, marks []suggest.Mark) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tRANGE\tTEXT")
	for _, m := range marks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%q\n", m.ID, m.Type, m.Range(), excerpt(text[m.From:m.To], 40))
	}
	return w.Flush()
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n-3])) + "..."
}
