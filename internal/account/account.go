package account

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role names assignable to an account.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Role is a per-application role assignment.
type Role struct {
	Application string `bson:"application" json:"application"`
	Role        string `bson:"role" json:"role"`
}

// Email is an address plus its confirmation state. Confirmed flips to true
// only through a successful email-confirmation token validation, and resets
// to false whenever the address value changes.
type Email struct {
	Value     string `bson:"value" json:"value"`
	Confirmed bool   `bson:"confirmed" json:"confirmed"`
}

// Account is the root identity record. ID is system-generated and never
// reassigned. PasswordHash always holds a bcrypt hash, never a raw password.
type Account struct {
	ID           string    `bson:"account_id" json:"accountId"`
	Email        Email     `bson:"email" json:"email"`
	Username     string    `bson:"username" json:"username"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Roles        []Role    `bson:"roles" json:"roles"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}

// VerifyPassword reports whether raw matches the stored hash.
// bcrypt's comparison is constant-time with respect to the hash.
func (a *Account) VerifyPassword(raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(raw)) == nil
}

// IsActive reports whether the account has a confirmed email address.
func (a *Account) IsActive() bool {
	return a.Email.Confirmed
}

// DefaultRoles returns the role set assigned to a freshly created account.
func DefaultRoles() []Role {
	return []Role{{Application: "app", Role: RoleAdmin}}
}
