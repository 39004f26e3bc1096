package models

// User represents a user in the system
type User struct {
	ID            int64  `json:"id"`
	Email         string `json:"email"`
	Username      string `json:"username"`
	PasswordHash  string `json:"-"` // Not serialized; empty for OAuth-only users
	OAuthProvider string `json:"oauth_provider,omitempty"`
	OAuthSubject  string `json:"-"`
	RefreshToken  string `json:"-"` // AES-encrypted at rest
	CreatedAt     string `json:"created_at"`
}
