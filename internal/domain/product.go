package domain

import "time"

// Product is catalog data owned by the backend. The client never mutates
// products outside the admin surface; cart and wishlist entries only copy
// the display fields they need.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	SalePrice   *float64 `json:"salePrice,omitempty"`
	Images      []string `json:"images,omitempty"`
	Image       string   `json:"image,omitempty"`
	Category    string   `json:"category,omitempty"`
	IsDigital   bool     `json:"isDigital"`
	SupplierURL string   `json:"supplierUrl,omitempty"`
	Featured    bool     `json:"featured,omitempty"`
	Stock       int      `json:"stock,omitempty"`
}

// FirstImage returns the primary display image: first of Images, falling
// back to the legacy single-image field.
func (p *Product) FirstImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return p.Image
}

// EffectivePrice is the authoritative pricing rule everywhere a price is
// shown or summed: sale price when present, regular price otherwise.
func (p *Product) EffectivePrice() float64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

// Review is a customer product review.
type Review struct {
	ID        string    `json:"id,omitempty"`
	ProductID string    `json:"productId,omitempty"`
	Author    string    `json:"author,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// ListParams are the paging parameters accepted by listing endpoints.
type ListParams struct {
	Page  int
	Limit int
}
