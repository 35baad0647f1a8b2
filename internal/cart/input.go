package cart

import "strings"

// HandleAdd adds a typed-in name with quantity 1 and redraws.
// Blank input is ignored and reported as false.
func (s *Store) HandleAdd(input string) bool {
	name := strings.TrimSpace(input)
	if name == "" {
		return false
	}
	s.AddItem(name, 1)
	s.Render()
	return true
}

// CanEdit reports whether the item may be renamed. Purchased items are
// frozen.
func (s *Store) CanEdit(id int) bool {
	it := s.find(id)
	return it != nil && !it.Purchased
}

// FinishEditing commits an inline rename. A blank value falls back to a
// plain redraw so the old name shows again.
func (s *Store) FinishEditing(id int, input string) {
	if strings.TrimSpace(input) == "" {
		s.Render()
		return
	}
	s.UpdateName(id, input)
}
