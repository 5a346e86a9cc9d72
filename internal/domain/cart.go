package domain

// CartLine is one product entry in the cart with its own quantity.
// At most one line exists per product id; adding an existing product
// increments the quantity instead of duplicating the line.
// The json tags are the persisted local-store representation.
type CartLine struct {
	ProductID   string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	SalePrice   *float64 `json:"salePrice,omitempty"`
	Image       string   `json:"image,omitempty"`
	Quantity    int      `json:"quantity"`
	IsDigital   bool     `json:"isDigital"`
	SupplierURL string   `json:"supplierUrl,omitempty"`
}

// EffectivePrice applies the sale-price-over-regular-price rule.
func (l *CartLine) EffectivePrice() float64 {
	if l.SalePrice != nil {
		return *l.SalePrice
	}
	return l.Price
}

// LineTotal is the effective price times the quantity.
func (l *CartLine) LineTotal() float64 {
	return l.EffectivePrice() * float64(l.Quantity)
}
