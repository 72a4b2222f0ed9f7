package model

import (
	"time"
)

// User is a stored account. The password is kept only as a salted
// HMAC-SHA-512 hash; hash and salt are written together at creation and
// never exposed over the API.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash []byte    `json:"-"`
	PasswordSalt []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
