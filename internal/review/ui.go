package review

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/dshills/redline/internal/document"
	"github.com/dshills/redline/internal/logging"
	"github.com/dshills/redline/internal/render"
	"github.com/dshills/redline/internal/suggest"
)

// Summary reports what a review session did.
type Summary struct {
	Accepted int
	Rejected int
	Pending  int
}

// UI draws a document on a tcell screen and maps keys to review actions:
//
//	n, j, Tab       next mark
//	p, k, BackTab   previous mark
//	a, Enter        accept focused mark
//	r               reject focused mark
//	A / R           accept / reject all
//	q, Esc, Ctrl-C  quit
type UI struct {
	screen tcell.Screen
	model  *Model
	log    zerolog.Logger

	mu    sync.Mutex
	theme render.Theme

	top     int
	status  string
	summary Summary
}

// New creates a review UI. The screen must already be initialized.
func New(screen tcell.Screen, doc *document.Document, theme render.Theme) *UI {
	return &UI{
		screen: screen,
		model:  NewModel(doc),
		theme:  theme,
		log:    logging.Component("review"),
	}
}

// Model returns the review model.
func (u *UI) Model() *Model {
	return u.model
}

// SetTheme swaps the colors and schedules a redraw. It is safe to call
// from another goroutine.
func (u *UI) SetTheme(t render.Theme) {
	u.mu.Lock()
	u.theme = t
	u.mu.Unlock()
	_ = u.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

func (u *UI) currentTheme() render.Theme {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.theme
}

// Run processes events until the user quits, every mark is resolved, or
// ctx is done.
func (u *UI) Run(ctx context.Context) (Summary, error) {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = u.screen.PostEvent(tcell.NewEventInterrupt(ctx))
		case <-stop:
		}
	}()

	u.draw()
	for !u.model.Done() {
		ev := u.screen.PollEvent()
		if ev == nil {
			break
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			u.screen.Sync()
		case *tcell.EventInterrupt:
			if ev.Data() == ctx {
				u.finish()
				return u.summary, ctx.Err()
			}
		case *tcell.EventKey:
			if quit := u.handleKey(ev); quit {
				u.finish()
				return u.summary, nil
			}
		}
		u.draw()
	}
	u.finish()
	return u.summary, nil
}

func (u *UI) finish() {
	u.summary.Pending = len(u.model.Marks())
	u.log.Info().
		Int("accepted", u.summary.Accepted).
		Int("rejected", u.summary.Rejected).
		Int("pending", u.summary.Pending).
		Msg("review finished")
}

func (u *UI) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyTab, tcell.KeyDown:
		u.model.Next()
		return false
	case tcell.KeyBacktab, tcell.KeyUp:
		u.model.Prev()
		return false
	case tcell.KeyEnter:
		u.resolve(suggest.Accept)
		return false
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case 'n', 'j':
		u.model.Next()
	case 'p', 'k':
		u.model.Prev()
	case 'a':
		u.resolve(suggest.Accept)
	case 'r':
		u.resolve(suggest.Reject)
	case 'A':
		u.resolveAll(suggest.Accept)
	case 'R':
		u.resolveAll(suggest.Reject)
	}
	return false
}

func (u *UI) count(d suggest.Decision, n int) {
	if d == suggest.Accept {
		u.summary.Accepted += n
	} else {
		u.summary.Rejected += n
	}
}

func (u *UI) resolve(d suggest.Decision) {
	mk, _, ok := u.model.Focused()
	if !ok {
		return
	}
	if _, err := u.model.Resolve(d); err != nil {
		u.status = err.Error()
		u.log.Warn().Err(err).Str("mark", mk.ID).Msg("resolve failed")
		return
	}
	u.count(d, 1)
	u.status = fmt.Sprintf("%s %s", d, mk.Type)
	u.log.Debug().Str("mark", mk.ID).Stringer("decision", d).Msg("mark resolved")
}

func (u *UI) resolveAll(d suggest.Decision) {
	n, err := u.model.ResolveAll(d)
	if err != nil {
		u.status = err.Error()
		u.log.Warn().Err(err).Msg("resolve all failed")
		return
	}
	u.count(d, n)
	u.status = fmt.Sprintf("%s all (%d)", d, n)
}

func (u *UI) draw() {
	width, height := u.screen.Size()
	if width <= 0 || height <= 0 {
		return
	}
	bodyHeight := height - 1

	doc := u.model.Document()
	lines := render.Layout(render.Spans(doc.Text(), u.model.Marks()), width)

	focus := ""
	if mk, _, ok := u.model.Focused(); ok {
		focus = mk.ID
		u.scrollTo(render.LineOf(lines, focus), bodyHeight)
	}

	u.screen.Clear()
	render.Draw(u.screen, render.Rect{Width: width, Height: bodyHeight}, lines, u.top, u.currentTheme(), focus)
	u.drawStatus(width, height-1)
	u.screen.Show()
}

func (u *UI) scrollTo(line, height int) {
	if line < 0 || height <= 0 {
		return
	}
	if line < u.top {
		u.top = line
	}
	if line >= u.top+height {
		u.top = line - height + 1
	}
}

func (u *UI) drawStatus(width, y int) {
	_, idx, _ := u.model.Focused()
	text := fmt.Sprintf(" %d/%d  a:accept r:reject A/R:all n/p:move q:quit", idx+1, len(u.model.Marks()))
	if u.status != "" {
		text += "  " + u.status
	}
	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range text {
		if x >= width {
			break
		}
		u.screen.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < width; x++ {
		u.screen.SetContent(x, y, ' ', nil, style)
	}
}
