package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/Makepad-fr/cart/internal/model"
)

const maxNameWidth = 60

// Printer writes the list to w as a framed panel. It implements
// cart.Renderer for the one-shot CLI commands.
type Printer struct {
	w     io.Writer
	theme Theme
	group bool
}

func NewPrinter(w io.Writer, theme Theme, group bool) *Printer {
	return &Printer{w: w, theme: theme, group: group}
}

func (p *Printer) Render(items []model.Item) {
	fmt.Fprintln(p.w, p.theme.Panel(strings.Join(p.Lines(Build(items)), "\n")))
}

// Lines lays out a page: header, progress, rows and the summary.
func (p *Printer) Lines(page Page) []string {
	t := p.theme
	done, pending := page.Counts()
	total := len(page.Rows)

	var lines []string
	lines = append(lines, fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Shopping list"),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), pending,
		t.Accent.Render("Total"), total,
	))
	lines = append(lines, t.Muted.Render(ProgressBar(done, total, 28)))
	lines = append(lines, "")

	if p.group {
		lines = append(lines, p.groupLines(page.Rows)...)
	} else {
		lines = append(lines, p.rowLines(page.Rows)...)
	}

	lines = append(lines, "")
	lines = append(lines, t.Accent.Render("Remaining")+"  "+p.badges(page.Remaining, false))
	lines = append(lines, t.Accent.Render("Purchased")+"  "+p.badges(page.Purchased, true))
	return lines
}

func (p *Printer) rowLines(rows []Row) []string {
	t := p.theme
	if len(rows) == 0 {
		return []string{t.Muted.Render("no items")}
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		box := t.Muted.Render(t.Box(false))
		name := truncate(r.Name, maxNameWidth)
		if r.Purchased {
			box = t.Success.Render(t.Box(true))
			name = t.Done.Render(name)
		}
		out = append(out, fmt.Sprintf("%s %s %s %s",
			t.Muted.Render(fmt.Sprintf("#%-3d", r.ID)), box, name,
			t.Accent.Render(fmt.Sprintf("×%d", r.Quantity))))
	}
	return out
}

func (p *Printer) groupLines(rows []Row) []string {
	var pend, done []Row
	for _, r := range rows {
		if r.Purchased {
			done = append(done, r)
		} else {
			pend = append(pend, r)
		}
	}
	t := p.theme
	var lines []string
	lines = append(lines, t.Accent.Render(StatusPending))
	if len(pend) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, p.rowLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render(StatusPurchased))
	if len(done) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, p.rowLines(done)...)
	}
	return lines
}

func (p *Printer) badges(bs []Badge, purchased bool) string {
	t := p.theme
	if len(bs) == 0 {
		return t.Muted.Render("(none)")
	}
	parts := make([]string, 0, len(bs))
	for _, b := range bs {
		name := b.Name
		if purchased {
			name = t.Done.Render(name)
		}
		parts = append(parts, fmt.Sprintf("%s %s", name, t.Muted.Render(fmt.Sprintf("[%d]", b.Quantity))))
	}
	return strings.Join(parts, "  ")
}

// ProgressBar renders a bar with the done/total count.
func ProgressBar(done, total, width int) string {
	denom := total
	if denom == 0 {
		denom = 1
	}
	if width <= 0 {
		width = 28
	}
	filled := int(float64(done) / float64(denom) * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + fmt.Sprintf("] %d/%d", done, total)
}

// OK prints a success line to w.
func (t Theme) OK(w io.Writer, msg string) {
	fmt.Fprintln(w, t.Success.Render(t.SymDone+" "+msg))
}

// Fail prints an error line to w.
func (t Theme) Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, t.Error.Render("✖ "+msg))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
