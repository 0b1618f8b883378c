package models

// User is an account record. The username is the primary key and never
// changes after registration.
type User struct {
	Username     string `json:"username"`
	PasswordHash []byte `json:"-"`
	Disabled     bool   `json:"disabled"`
}
