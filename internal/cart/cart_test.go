package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Makepad-fr/cart/internal/model"
	"github.com/Makepad-fr/cart/internal/store"
	"github.com/Makepad-fr/cart/internal/store/memstore"
)

// fakePersister records every snapshot it is asked to save.
type fakePersister struct {
	stored *model.Snapshot
	saves  []model.Snapshot
}

func (f *fakePersister) Load() (model.Snapshot, bool) {
	if f.stored == nil {
		return model.Snapshot{}, false
	}
	return *f.stored, true
}

func (f *fakePersister) Save(s model.Snapshot) { f.saves = append(f.saves, s) }

type recorder struct{ frames [][]model.Item }

func (r *recorder) Render(items []model.Item) { r.frames = append(r.frames, items) }

func newEmpty() (*Store, *fakePersister, *recorder) {
	p := &fakePersister{}
	r := &recorder{}
	return New(p, r, nil), p, r
}

func TestInitializeSeedsDefaultsOnEmptyStorage(t *testing.T) {
	s, p, r := newEmpty()
	s.Initialize()

	items := s.Items()
	require.Len(t, items, 3)
	assert.Equal(t, model.Item{ID: 1, Name: "Помідори", Quantity: 2}, items[0])
	assert.Equal(t, model.Item{ID: 2, Name: "Печиво", Quantity: 2}, items[1])
	assert.Equal(t, model.Item{ID: 3, Name: "Сир", Quantity: 100000}, items[2])
	assert.Equal(t, 4, s.NextID())
	assert.Len(t, p.saves, 3, "each seeded add persists")
	assert.Len(t, r.frames, 1, "initialize renders once")
}

func TestInitializeHydratesFromStorage(t *testing.T) {
	p := &fakePersister{stored: &model.Snapshot{
		Items:  []model.Item{{ID: 7, Name: "Milk", Quantity: 1, Purchased: true}},
		NextID: 9,
	}}
	s := New(p, nil, nil)
	s.Initialize()

	assert.Equal(t, []model.Item{{ID: 7, Name: "Milk", Quantity: 1, Purchased: true}}, s.Items())
	assert.Equal(t, 9, s.NextID())
	assert.Empty(t, p.saves)
}

func TestInitializeEmptyStoredListKeepsCounter(t *testing.T) {
	p := &fakePersister{stored: &model.Snapshot{Items: []model.Item{}, NextID: 10}}
	s := New(p, nil, nil)
	s.Initialize()

	items := s.Items()
	require.Len(t, items, 3)
	assert.Equal(t, []int{10, 11, 12}, []int{items[0].ID, items[1].ID, items[2].ID})
	assert.Equal(t, 13, s.NextID())
}

func TestInitializeRaisesStaleCounter(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	p := &fakePersister{stored: &model.Snapshot{
		Items:  []model.Item{{ID: 1, Name: "a", Quantity: 1}, {ID: 5, Name: "b", Quantity: 1}},
		NextID: 3,
	}}
	s := New(p, nil, zap.New(core))
	s.Initialize()

	assert.Equal(t, 6, s.NextID())
	assert.Equal(t, 1, logs.FilterMessage("next id behind stored items, raising").Len())
}

func TestInitializeCorruptSlotFallsBackToDefaults(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	logger := zap.New(core)
	kv := memstore.New()
	require.NoError(t, kv.Set(store.DefaultKey, "{not json"))

	s := New(store.NewSlot(kv, "", logger), nil, logger)
	s.Initialize()

	assert.Len(t, s.Items(), 3)
	assert.Equal(t, 4, s.NextID())
	assert.Equal(t, 1, logs.Len())
}

func TestAddItem(t *testing.T) {
	s, p, r := newEmpty()
	s.AddItem("Milk", 1)

	assert.Equal(t, []model.Item{{ID: 1, Name: "Milk", Quantity: 1}}, s.Items())
	assert.Equal(t, 2, s.NextID())
	require.Len(t, p.saves, 1)
	assert.Equal(t, model.Snapshot{Items: []model.Item{{ID: 1, Name: "Milk", Quantity: 1}}, NextID: 2}, p.saves[0])
	assert.Empty(t, r.frames, "add leaves rendering to the caller")
}

func TestAddItemDefaultsQuantity(t *testing.T) {
	s, _, _ := newEmpty()
	s.AddItem("Bread", 0)

	it, ok := s.Item(1)
	require.True(t, ok)
	assert.Equal(t, 1, it.Quantity)
}

func TestAddItemIDsStrictlyIncrease(t *testing.T) {
	s, _, _ := newEmpty()
	for i := 0; i < 50; i++ {
		s.AddItem("x", 1)
		if i%3 == 0 {
			s.DeleteItem(s.Items()[0].ID)
		}
	}
	items := s.Items()
	seen := map[int]bool{}
	for i, it := range items {
		assert.False(t, seen[it.ID], "duplicate id %d", it.ID)
		seen[it.ID] = true
		if i > 0 {
			assert.Greater(t, it.ID, items[i-1].ID)
		}
		assert.Less(t, it.ID, s.NextID())
	}
	assert.Equal(t, 51, s.NextID())
}

func TestDeleteItemIsIdempotent(t *testing.T) {
	s, p, r := newEmpty()
	s.AddItem("a", 1)
	s.AddItem("b", 1)

	s.DeleteItem(1)
	assert.Equal(t, []model.Item{{ID: 2, Name: "b", Quantity: 1}}, s.Items())

	s.DeleteItem(1)
	assert.Equal(t, []model.Item{{ID: 2, Name: "b", Quantity: 1}}, s.Items())
	assert.Equal(t, 3, s.NextID(), "ids are never reused")
	assert.Len(t, p.saves, 4)
	assert.Len(t, r.frames, 2)
}

func TestTogglePurchased(t *testing.T) {
	s, _, r := newEmpty()
	s.AddItem("Milk", 1)

	s.TogglePurchased(1)
	it, _ := s.Item(1)
	assert.True(t, it.Purchased)

	s.TogglePurchased(1)
	it, _ = s.Item(1)
	assert.False(t, it.Purchased)
	assert.Len(t, r.frames, 2)
}

func TestMissingIDIsSilentNoOp(t *testing.T) {
	s, p, r := newEmpty()
	s.AddItem("Milk", 2)
	before := s.Items()

	s.TogglePurchased(42)
	s.UpdateQuantity(42, 5)
	s.UpdateName(42, "Bread")

	assert.Equal(t, before, s.Items())
	assert.Len(t, p.saves, 1)
	assert.Empty(t, r.frames)
}

func TestUpdateQuantityClamps(t *testing.T) {
	s, _, _ := newEmpty()
	s.AddItem("Milk", 2)

	s.UpdateQuantity(1, -5)
	it, _ := s.Item(1)
	assert.Equal(t, 1, it.Quantity)

	s.UpdateQuantity(1, 3)
	it, _ = s.Item(1)
	assert.Equal(t, 4, it.Quantity)

	for _, delta := range []int{-1, -4, -1 << 30, 0} {
		s.UpdateQuantity(1, delta)
		it, _ = s.Item(1)
		assert.GreaterOrEqual(t, it.Quantity, 1, "delta %d", delta)
	}
}

func TestUpdateName(t *testing.T) {
	s, _, r := newEmpty()
	s.AddItem("Milk", 1)

	s.UpdateName(1, "   ")
	it, _ := s.Item(1)
	assert.Equal(t, "Milk", it.Name)
	assert.Empty(t, r.frames)

	s.UpdateName(1, "  Oat milk \t")
	it, _ = s.Item(1)
	assert.Equal(t, "Oat milk", it.Name)
	assert.Len(t, r.frames, 1)
}

func TestSaveFailureKeepsMemoryState(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	logger := zap.New(core)
	kv := memstore.New()
	kv.FailWrites(assert.AnError)

	r := &recorder{}
	s := New(store.NewSlot(kv, "", logger), r, logger)
	s.AddItem("Milk", 1)
	s.TogglePurchased(1)

	it, ok := s.Item(1)
	require.True(t, ok)
	assert.True(t, it.Purchased)
	assert.Len(t, r.frames, 1, "rendering is not blocked")
	assert.Equal(t, 2, logs.FilterMessage("save snapshot").Len())
}

func TestItemsReturnsCopy(t *testing.T) {
	s, _, _ := newEmpty()
	s.AddItem("Milk", 1)
	items := s.Items()
	items[0].Name = "changed"

	it, _ := s.Item(1)
	assert.Equal(t, "Milk", it.Name)
}

func TestRendererFunc(t *testing.T) {
	var got []model.Item
	s := New(nil, RendererFunc(func(items []model.Item) { got = items }), nil)
	s.AddItem("Milk", 1)
	s.Render()
	assert.Equal(t, []model.Item{{ID: 1, Name: "Milk", Quantity: 1}}, got)
}
