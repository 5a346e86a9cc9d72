package domain

// User is the account identity returned by the auth endpoints.
type User struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// Session is the authenticated identity and credential held for the
// duration of a login. Token presence implies authenticated until the
// backend proves otherwise with a 401.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// AuthResponse is the wire shape of login/register/admin-login responses.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
