// Package view turns the list into a description of what to draw.
// Build is pure; Printer and the TUI apply its result to a terminal.
package view

import "github.com/Makepad-fr/cart/internal/model"

const (
	StatusPurchased = "Куплено"
	StatusPending   = "Не куплено"
)

// Row is one list line with the controls it offers.
type Row struct {
	ID           int
	Name         string
	Quantity     int
	Purchased    bool
	Status       string
	CanDecrement bool
	CanDelete    bool
	CanEdit      bool
}

// Badge is a summary chip: a name and its quantity.
type Badge struct {
	Name     string
	Quantity int
}

type Page struct {
	Rows      []Row
	Remaining []Badge
	Purchased []Badge
}

// Build describes items in display order. The summary splits them into
// remaining and purchased.
func Build(items []model.Item) Page {
	p := Page{Rows: make([]Row, 0, len(items))}
	for _, it := range items {
		status := StatusPending
		if it.Purchased {
			status = StatusPurchased
		}
		p.Rows = append(p.Rows, Row{
			ID:           it.ID,
			Name:         it.Name,
			Quantity:     it.Quantity,
			Purchased:    it.Purchased,
			Status:       status,
			CanDecrement: it.Quantity > 1,
			CanDelete:    !it.Purchased,
			CanEdit:      !it.Purchased,
		})
		b := Badge{Name: it.Name, Quantity: it.Quantity}
		if it.Purchased {
			p.Purchased = append(p.Purchased, b)
		} else {
			p.Remaining = append(p.Remaining, b)
		}
	}
	return p
}

// Counts returns how many rows are purchased and how many are still pending.
func (p Page) Counts() (purchased, pending int) {
	return len(p.Purchased), len(p.Remaining)
}
