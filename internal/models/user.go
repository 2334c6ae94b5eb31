package models

import "time"

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Account is the persisted credential record behind a User.
// PasswordHash is empty for demo accounts created by the login policy.
type Account struct {
	User         User      `json:"user"`
	PasswordHash string    `json:"password_hash,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
