package user

import "time"

// Role is fixed at account creation; there is no role switching.
type Role string

const (
	RoleDonor     Role = "donor"
	RoleCollector Role = "collector"
)

func (r Role) Valid() bool {
	return r == RoleDonor || r == RoleCollector
}

// User is the stored identity record. Field names match the persisted
// document shape, so records written by earlier deployments keep loading.
//
// PasswordHash is present only for credential accounts and must never
// leave the service layer: every outward representation goes through
// ToDTO.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Avatar       *string   `json:"avatar,omitempty"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"password,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Sanitized returns a copy safe to embed as a denormalized snapshot.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// Session is the server-side marker that makes tokens revocable. It is
// stored per token with its own expiry.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
