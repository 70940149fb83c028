package types

import (
	"time"

	"github.com/google/uuid"
)

// Role names are a small fixed set seeded by migrations.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Role is shared, read-mostly reference data. Every User carries exactly one.
type Role struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// User represents an account (a principal once authenticated).
// Records are never hard-deleted: DeletedAt set means the user is invisible
// to every lookup.
type User struct {
	ID        uuid.UUID  `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Password  string     `json:"-"` // bcrypt digest, never exposed
	Photo     *string    `json:"photo,omitempty"`
	Role      Role       `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// UserProfile is the public projection of a User. It deliberately has no
// password field at all, so it cannot leak the digest by accident.
type UserProfile struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Photo     *string   `json:"photo,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile maps a User to its public projection.
func (u *User) Profile() *UserProfile {
	return &UserProfile{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Photo:     u.Photo,
		Role:      u.Role.Name,
		CreatedAt: u.CreatedAt,
	}
}

// UpdateUserParams carries the mutable profile fields; nil means unchanged.
type UpdateUserParams struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Photo     *string `json:"photo,omitempty" validate:"omitempty,url"`
}
