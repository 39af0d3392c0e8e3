package entity

import "time"

// Credential is a signin account. Only the bcrypt hash of the password is stored.
type Credential struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Admin        bool      `json:"admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// SigninResult is returned on a successful signin.
type SigninResult struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Admin    bool   `json:"admin"`
}
