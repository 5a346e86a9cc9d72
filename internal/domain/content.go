package domain

import "time"

// ContactMessage is a contact-form submission. It goes straight from the
// client to the form service, bypassing the backend.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ContactRecord is a stored contact submission listed in the admin console.
type ContactRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// SocialPost is an admin social-media posting request.
type SocialPost struct {
	Platforms []string `json:"platforms"`
	Message   string   `json:"message"`
	ImageURL  string   `json:"imageUrl,omitempty"`
}

// SocialAccount is a connected social-media account.
type SocialAccount struct {
	Platform  string `json:"platform"`
	Handle    string `json:"handle"`
	Connected bool   `json:"connected"`
}

// Settings is the admin-editable site configuration. The shape is owned by
// the backend, so the client treats it as an opaque document.
type Settings map[string]interface{}
