package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/Makepad-fr/cart/internal/model"
)

func TestBuild(t *testing.T) {
	items := []model.Item{
		{ID: 1, Name: "Помідори", Quantity: 2},
		{ID: 2, Name: "Печиво", Quantity: 1, Purchased: true},
		{ID: 5, Name: "Сир", Quantity: 1},
	}
	want := Page{
		Rows: []Row{
			{ID: 1, Name: "Помідори", Quantity: 2, Status: StatusPending, CanDecrement: true, CanDelete: true, CanEdit: true},
			{ID: 2, Name: "Печиво", Quantity: 1, Purchased: true, Status: StatusPurchased},
			{ID: 5, Name: "Сир", Quantity: 1, Status: StatusPending, CanDelete: true, CanEdit: true},
		},
		Remaining: []Badge{{Name: "Помідори", Quantity: 2}, {Name: "Сир", Quantity: 1}},
		Purchased: []Badge{{Name: "Печиво", Quantity: 1}},
	}
	if diff := cmp.Diff(want, Build(items)); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}

	done, pending := Build(items).Counts()
	assert.Equal(t, 1, done)
	assert.Equal(t, 2, pending)
}

func TestBuildEmpty(t *testing.T) {
	p := Build(nil)
	assert.Empty(t, p.Rows)
	assert.Empty(t, p.Remaining)
	assert.Empty(t, p.Purchased)
}

func TestPrinterRender(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, ThemeNamed("mono"), false)
	p.Render([]model.Item{
		{ID: 1, Name: "Milk", Quantity: 3},
		{ID: 2, Name: "Bread", Quantity: 1, Purchased: true},
	})
	out := buf.String()

	assert.Contains(t, out, "#1")
	assert.Contains(t, out, "[ ] Milk")
	assert.Contains(t, out, "[x] Bread")
	assert.Contains(t, out, "×3")
	assert.Contains(t, out, "1/2")
	assert.Contains(t, out, "Milk [3]")
}

func TestPrinterGrouped(t *testing.T) {
	p := NewPrinter(nil, ThemeNamed("mono"), true)
	lines := p.Lines(Build([]model.Item{{ID: 1, Name: "Milk", Quantity: 1}}))
	text := strings.Join(lines, "\n")

	assert.Contains(t, text, StatusPending)
	assert.Contains(t, text, StatusPurchased)
	assert.Contains(t, text, "(none)")
}

func TestPrinterNoItems(t *testing.T) {
	p := NewPrinter(nil, ThemeNamed(""), false)
	text := strings.Join(p.Lines(Build(nil)), "\n")
	assert.Contains(t, text, "no items")
	assert.Contains(t, text, "0/0")
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "[█████░░░░░] 1/2", ProgressBar(1, 2, 10))
	assert.Equal(t, "[░░░░░░░░░░] 0/0", ProgressBar(0, 0, 10))
	assert.Equal(t, "[██████████] 3/3", ProgressBar(3, 3, 10))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Помід...", truncate("Помідори свіжі", 8))
}

func TestThemeNamedFallsBack(t *testing.T) {
	assert.Equal(t, ThemeNamed("classic").BoxChecked, ThemeNamed("nope").BoxChecked)
	assert.Equal(t, "[x]", ThemeNamed("MONO").BoxChecked)
}
