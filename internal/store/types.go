package store

// CartItem is one line of the locally persisted cart. IDs are stored
// as their normalized string form; AddedAt preserves insertion order.
type CartItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	AddedAt  int64   `json:"added_at"`
}
