package model

// Item is one entry of the shopping list.
// The JSON tags match the layout older sessions wrote to the slot.
type Item struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Purchased bool   `json:"purchased"`
}

// Snapshot is everything that goes into the persistence slot.
type Snapshot struct {
	Items  []Item `json:"items"`
	NextID int    `json:"nextId"`
}

// MaxID returns the largest id in items, or 0 for an empty list.
func MaxID(items []Item) int {
	top := 0
	for _, it := range items {
		if it.ID > top {
			top = it.ID
		}
	}
	return top
}
