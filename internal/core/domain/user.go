package domain

import "time"

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthResult is what a successful register or login hands back to the client.
type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
