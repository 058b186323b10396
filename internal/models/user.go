// Package models defines the records persisted by the credential store.
package models

import "fmt"

// User is a stored credential. PasswordHash holds the hex digest produced by
// cryptox.Hasher, never the plain-text password.
type User struct {
	Username     string `db:"username"`
	PasswordHash string `db:"password"`
}

// String omits the digest so records can be logged safely.
func (u User) String() string {
	return fmt.Sprintf("User{Username: %s}", u.Username)
}
