package domain

// CartLine is one product's presence in the cart. ProductID is the unique
// key; store fields are denormalized so the cart can be grouped per store
// without another catalog lookup.
type CartLine struct {
	ProductID int64   `json:"product_id"`
	StoreID   int64   `json:"store_id"`
	StoreName string  `json:"store_name"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Subtotal is the line's contribution to the cart total.
func (l CartLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}
