package models

// CartItem is one line of the cookie-backed cart. It is a plain JSON shape,
// not a database row: display metadata and price are snapshotted at add-time
// and never re-fetched from the catalog.
type CartItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Slug     string  `json:"slug"`
	Stock    int     `json:"stock"`
	Quantity int     `json:"quantity"`
}

// Valid reports whether the item can be stored in a cart. Items without an id
// or with a non-positive quantity are dropped rather than stored.
func (i CartItem) Valid() bool {
	return i.ID != "" && i.Quantity >= 1
}

// CartSubtotal sums price times quantity over all lines.
func CartSubtotal(items []CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
