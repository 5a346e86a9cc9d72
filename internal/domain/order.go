package domain

import "time"

// ShippingAddress is the checkout contact/shipping form.
type ShippingAddress struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
	Phone     string `json:"phone,omitempty"`
}

// Order mirrors the backend order record.
type Order struct {
	ID              string          `json:"id"`
	Items           []CartLine      `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Subtotal        float64         `json:"subtotal"`
	Shipping        float64         `json:"shipping"`
	Tax             float64         `json:"tax,omitempty"`
	Total           float64         `json:"total"`
	PaymentIntentID string          `json:"paymentIntentId,omitempty"`
	PaymentMethod   string          `json:"paymentMethod,omitempty"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	IsDigital       bool            `json:"isDigital"`
}

// CreateOrderRequest is the POST /orders payload.
type CreateOrderRequest struct {
	Items           []CartLine      `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Subtotal        float64         `json:"subtotal"`
	Shipping        float64         `json:"shipping"`
	Total           float64         `json:"total"`
	PaymentIntentID string          `json:"paymentIntentId"`
	IsDigital       bool            `json:"isDigital"`
}
