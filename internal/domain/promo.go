package domain

// PromoCode is an admin-managed discount code.
type PromoCode struct {
	ID         string  `json:"id,omitempty"`
	Code       string  `json:"code"`
	Type       string  `json:"type"` // "percentage" or "fixed"
	Value      float64 `json:"value"`
	MinSpend   float64 `json:"minSpend,omitempty"`
	UsageLimit int     `json:"usageLimit,omitempty"`
	StartAt    string  `json:"startAt,omitempty"`   // ISO8601 format
	ExpiresAt  string  `json:"expiresAt,omitempty"` // ISO8601 format
	IsActive   bool    `json:"isActive"`
}
