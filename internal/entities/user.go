package entities

import "time"

// User is a registered DM account. Email is the unique login key;
// Username is a display name. PasswordHash is a bcrypt hash and is
// never serialized.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
