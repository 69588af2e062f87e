// Package models holds the persistent records of carebook and the public
// shapes they are serialized to.
package models

import "time"

// Role discriminates patients from practitioners. It is fixed at
// registration.
type Role string

const (
	RoleUser        Role = "user"
	RoleProfesional Role = "profesional"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleProfesional
}

// Identity is a person able to sign in. IsVerified is only meaningful for
// RoleProfesional. Salt and PasswordHash never leave the server; use Public
// for anything that is serialized.
type Identity struct {
	ID           string    `json:"-"`
	Name         string    `json:"-"`
	LastName     string    `json:"-"`
	Email        string    `json:"-"`
	Role         Role      `json:"-"`
	Salt         string    `json:"-"`
	PasswordHash string    `json:"-"`
	IsVerified   bool      `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// PublicIdentity is the externally visible shape of an Identity.
type PublicIdentity struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Type       Role   `json:"type"`
	IsVerified *bool  `json:"is_verified,omitempty"`
}

// Public strips credentials from i.
func (i *Identity) Public() PublicIdentity {
	p := PublicIdentity{
		ID:       i.ID,
		Name:     i.Name,
		LastName: i.LastName,
		Email:    i.Email,
		Type:     i.Role,
	}
	if i.Role == RoleProfesional {
		verified := i.IsVerified
		p.IsVerified = &verified
	}
	return p
}
