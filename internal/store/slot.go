package store

import (
	"encoding/json"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Makepad-fr/cart/internal/model"
)

// DefaultKey is the slot name older sessions used.
const DefaultKey = "shoppingCart"

// Slot reads and writes the list snapshot under a single key.
// Failures are logged and absorbed; callers always get a usable answer.
type Slot struct {
	backend Backend
	key     string
	logger  *zap.Logger
}

func NewSlot(b Backend, key string, logger *zap.Logger) *Slot {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Slot{backend: b, key: key, logger: logger}
}

// Key reports the slot name.
func (s *Slot) Key() string { return s.key }

// Load returns the stored snapshot. The bool is false when the slot is empty,
// unreadable or corrupt.
func (s *Slot) Load() (model.Snapshot, bool) {
	raw, err := s.backend.Get(s.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Error("load snapshot", zap.String("key", s.key), zap.Error(err))
		}
		return model.Snapshot{}, false
	}
	snap, err := Decode([]byte(raw))
	if err != nil {
		s.logger.Error("load snapshot", zap.String("key", s.key), zap.Error(err))
		return model.Snapshot{}, false
	}
	return snap, true
}

// Save overwrites the slot with items and nextID.
func (s *Slot) Save(snap model.Snapshot) {
	b, err := Encode(snap)
	if err != nil {
		s.logger.Error("save snapshot", zap.String("key", s.key), zap.Error(err))
		return
	}
	if err := s.backend.Set(s.key, string(b)); err != nil {
		s.logger.Error("save snapshot", zap.String("key", s.key), zap.Error(err))
	}
}

// Clear empties the slot so the next session starts from the defaults.
func (s *Slot) Clear() error {
	return errors.Wrapf(s.backend.Delete(s.key), "clear %s", s.key)
}

// Decode parses a slot value. A missing items field yields an empty list and
// a missing or zero nextId yields 1.
func Decode(b []byte) (model.Snapshot, error) {
	var snap model.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return model.Snapshot{}, errors.Wrap(err, "json unmarshal")
	}
	if snap.Items == nil {
		snap.Items = []model.Item{}
	}
	if snap.NextID == 0 {
		snap.NextID = 1
	}
	return snap, nil
}

// Encode renders a snapshot in the slot layout.
func Encode(snap model.Snapshot) ([]byte, error) {
	if snap.Items == nil {
		snap.Items = []model.Item{}
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return nil, errors.Wrap(err, "json marshal")
	}
	return b, nil
}
