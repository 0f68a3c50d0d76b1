package domain

import "time"

// User represents a registered user. PasswordHash and RefreshTokenHash are
// never serialized; handlers attach users to responses directly.
type User struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone_number,omitempty"`
	PasswordHash     string    `json:"-"`
	RefreshTokenHash string    `json:"-"`
	Role             string    `json:"role"`
	StoreID          string    `json:"store_id,omitempty"`
	ProfileURL       string    `json:"profile_url,omitempty"`
	IsActive         bool      `json:"is_active"`
	EmailVerified    bool      `json:"email_verified"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Sanitize returns a copy with credential material cleared. The json tags
// already hide the hashes; this guards code paths that pass users around as
// values, such as the request context.
func (u User) Sanitize() User {
	u.PasswordHash = ""
	u.RefreshTokenHash = ""
	return u
}

// TokenPair holds an access and refresh token pair.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
