// Package cart holds the shopping list state and its mutations.
//
// Every mutation writes the whole list to the Persister and, except for
// AddItem, asks the Renderer to redraw. Operations never fail: an unknown id
// or a blank name is a no-op.
package cart

import (
	"strings"

	"go.uber.org/zap"

	"github.com/Makepad-fr/cart/internal/model"
)

// Persister is the storage side of the store. store.Slot implements it.
type Persister interface {
	Load() (model.Snapshot, bool)
	Save(model.Snapshot)
}

// Renderer draws the list after a mutation.
type Renderer interface {
	Render(items []model.Item)
}

// RendererFunc adapts a plain function to Renderer.
type RendererFunc func(items []model.Item)

func (f RendererFunc) Render(items []model.Item) { f(items) }

// Defaults seeded into an empty list.
var Defaults = []model.Item{
	{Name: "Помідори", Quantity: 2},
	{Name: "Печиво", Quantity: 2},
	{Name: "Сир", Quantity: 100000},
}

type Store struct {
	items    []model.Item
	nextID   int
	persist  Persister
	renderer Renderer
	logger   *zap.Logger
}

func New(p Persister, r Renderer, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		items:    []model.Item{},
		nextID:   1,
		persist:  p,
		renderer: r,
		logger:   logger,
	}
}

// Initialize hydrates the store from the persister, seeding the defaults when
// there is nothing to hydrate from, and renders once.
func (s *Store) Initialize() {
	if snap, ok := s.load(); ok {
		s.items = snap.Items
		s.nextID = snap.NextID
		if top := model.MaxID(s.items); s.nextID <= top {
			s.logger.Warn("next id behind stored items, raising",
				zap.Int("nextId", s.nextID), zap.Int("maxId", top))
			s.nextID = top + 1
		}
	}
	if len(s.items) == 0 {
		for _, d := range Defaults {
			s.AddItem(d.Name, d.Quantity)
		}
		s.logger.Debug("seeded default items", zap.Int("count", len(Defaults)))
	}
	s.Render()
}

func (s *Store) load() (model.Snapshot, bool) {
	if s.persist == nil {
		return model.Snapshot{}, false
	}
	return s.persist.Load()
}

// AddItem appends a new item under the next id. quantity below 1 means the
// default of 1. The name is taken as given; see HandleAdd for trimming.
func (s *Store) AddItem(name string, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	s.items = append(s.items, model.Item{
		ID:       s.nextID,
		Name:     name,
		Quantity: quantity,
	})
	s.nextID++
	s.save()
}

// DeleteItem removes the item with id. It persists and renders even when
// nothing matched.
func (s *Store) DeleteItem(id int) {
	out := s.items[:0]
	for _, it := range s.items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	s.items = out
	s.changed()
}

func (s *Store) TogglePurchased(id int) {
	it := s.find(id)
	if it == nil {
		return
	}
	it.Purchased = !it.Purchased
	s.changed()
}

// UpdateQuantity adds delta to the quantity, never going below 1.
func (s *Store) UpdateQuantity(id, delta int) {
	it := s.find(id)
	if it == nil {
		return
	}
	it.Quantity = max(1, it.Quantity+delta)
	s.changed()
}

// UpdateName renames the item when newName is not blank.
func (s *Store) UpdateName(id int, newName string) {
	it := s.find(id)
	name := strings.TrimSpace(newName)
	if it == nil || name == "" {
		return
	}
	it.Name = name
	s.changed()
}

// Items returns a copy of the list in display order.
func (s *Store) Items() []model.Item {
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Item looks up a single item by id.
func (s *Store) Item(id int) (model.Item, bool) {
	if it := s.find(id); it != nil {
		return *it, true
	}
	return model.Item{}, false
}

func (s *Store) NextID() int { return s.nextID }

func (s *Store) Snapshot() model.Snapshot {
	return model.Snapshot{Items: s.Items(), NextID: s.nextID}
}

// Render redraws the current list.
func (s *Store) Render() {
	if s.renderer != nil {
		s.renderer.Render(s.Items())
	}
}

func (s *Store) find(id int) *model.Item {
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i]
		}
	}
	return nil
}

func (s *Store) save() {
	if s.persist != nil {
		s.persist.Save(s.Snapshot())
	}
}

func (s *Store) changed() {
	s.save()
	s.Render()
}
