package models

import "time"

// User is a flat record persisted in users.json. PasswordHash is an opaque
// string whose format depends on the configured credential implementation
// (verbatim password in demo mode, bcrypt hash otherwise).
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	CreatedAt    string `json:"created_at"`
}

// Timestamp returns the record timestamp format used across both stores.
func Timestamp() string {
	return time.Now().Format(time.RFC3339)
}
