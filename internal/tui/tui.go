// Package tui is the interactive front end. Key presses call straight into
// cart.Store; the store's renderer hands back the fresh list, which is
// redrawn through view.Build.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/cart/internal/cart"
	"github.com/Makepad-fr/cart/internal/model"
	"github.com/Makepad-fr/cart/internal/view"
)

// Frame collects what the store last rendered. Pass it to cart.New as the
// renderer and then to Run.
type Frame struct {
	items []model.Item
	dirty bool
}

func (f *Frame) Render(items []model.Item) {
	f.items = items
	f.dirty = true
}

// rowItem adapts a view.Row to bubbles/list.Item.
type rowItem struct{ view.Row }

func (i rowItem) Title() string       { return i.Name }
func (i rowItem) Description() string { return i.Status }
func (i rowItem) FilterValue() string { return i.Name }

// Single-line delegate in the panel style.
type rowDelegate struct{ theme view.Theme }

func (d rowDelegate) Height() int                             { return 1 }
func (d rowDelegate) Spacing() int                            { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(rowItem)
	if !ok {
		return
	}
	t := d.theme
	box := t.Muted.Render(t.Box(false))
	name := it.Name
	if it.Purchased {
		box = t.Success.Render(t.Box(true))
		name = t.Done.Render(name)
	}
	minus := "-"
	if !it.CanDecrement {
		minus = t.Muted.Render("-")
	}
	line := fmt.Sprintf("%s %s  %s %d +  %s", box, name, minus, it.Quantity, t.Muted.Render(it.Status))
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprint(w, prefix+line)
}

type mode int

const (
	browsing mode = iota
	adding
	editing
)

type Model struct {
	store *cart.Store
	frame *Frame
	theme view.Theme

	list list.Model
	ti   textinput.Model

	mode    mode
	editID  int
	errText string

	width, height int
}

var (
	toggleKey = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	incKey    = key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more"))
	decKey    = key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "less"))
	deleteKey = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	addKey    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editKey   = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
)

// New builds the model over an initialized store.
func New(store *cart.Store, frame *Frame, theme view.Theme) Model {
	l := list.New(nil, rowDelegate{theme: theme}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = theme.Title
	l.Styles.HelpStyle = theme.Muted
	l.Styles.PaginationStyle = theme.Muted
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")
	extra := func() []key.Binding {
		return []key.Binding{toggleKey, incKey, decKey, deleteKey, addKey, editKey}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := Model{store: store, frame: frame, theme: theme, list: l, ti: ti, width: 80, height: 24}
	if frame.items == nil {
		store.Render()
	}
	m.resize()
	m.refresh()
	return m
}

// Run starts the program in the alternate screen and blocks until quit.
func Run(store *cart.Store, frame *Frame, theme view.Theme) error {
	_, err := tea.NewProgram(New(store, frame, theme), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}
	switch m.mode {
	case adding, editing:
		return m.updateInput(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok || m.list.SettingFilter() {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch km.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "a":
		m.mode = adding
		m.errText = ""
		m.ti.SetValue("")
		m.ti.Placeholder = "New item name..."
		m.resize()
		return m, m.ti.Focus()
	}

	row, ok := m.selected()
	if !ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	switch km.String() {
	case " ":
		m.store.TogglePurchased(row.ID)
		return m, m.refresh()
	case "+", "=":
		m.store.UpdateQuantity(row.ID, 1)
		return m, m.refresh()
	case "-":
		if row.CanDecrement {
			m.store.UpdateQuantity(row.ID, -1)
		}
		return m, m.refresh()
	case "d":
		if row.CanDelete {
			m.store.DeleteItem(row.ID)
		}
		return m, m.refresh()
	case "e":
		if !m.store.CanEdit(row.ID) {
			return m, nil
		}
		m.mode = editing
		m.editID = row.ID
		m.errText = ""
		m.ti.SetValue(row.Name)
		m.ti.CursorEnd()
		m.ti.Placeholder = "Edit item name..."
		m.resize()
		return m, m.ti.Focus()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			if m.mode == adding {
				if !m.store.HandleAdd(m.ti.Value()) {
					m.errText = "Name cannot be empty"
					return m, nil
				}
			} else {
				m.store.FinishEditing(m.editID, m.ti.Value())
			}
			m.closeInput()
			return m, m.refresh()
		case "esc":
			m.closeInput()
			m.store.Render()
			return m, m.refresh()
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.mode = browsing
	m.errText = ""
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

func (m Model) selected() (view.Row, bool) {
	it, ok := m.list.SelectedItem().(rowItem)
	if !ok {
		return view.Row{}, false
	}
	return it.Row, true
}

// refresh rebuilds the list from the last rendered frame.
func (m *Model) refresh() tea.Cmd {
	if !m.frame.dirty {
		return nil
	}
	m.frame.dirty = false
	page := view.Build(m.frame.items)
	items := make([]list.Item, 0, len(page.Rows))
	for _, r := range page.Rows {
		items = append(items, rowItem{r})
	}
	done, pending := page.Counts()
	t := m.theme
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		t.Title.Render("Shopping list"),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), pending,
		t.Accent.Render("Total"), len(page.Rows),
	)
	cmd := m.list.SetItems(items)
	if n := len(items); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
	return cmd
}

func (m *Model) resize() {
	h := m.height - 4
	if m.mode != browsing {
		h -= 3
	}
	if h < 1 {
		h = 1
	}
	m.list.SetSize(m.width-4, h)
}

func (m Model) View() string {
	content := m.list.View()
	if m.mode != browsing {
		title := "Add item"
		if m.mode == editing {
			title = "Edit item"
		}
		if m.errText != "" {
			title += "  " + m.theme.Error.Render(m.errText)
		}
		content += "\n" + m.theme.Panel(title+"\n"+m.ti.View())
	}
	return m.theme.Panel(strings.TrimRight(content, "\n"))
}
