package types

import (
	"time"

	"github.com/google/uuid"
)

// Content entities share the soft-delete convention: DeletedAt set hides the
// row from every repository lookup.

type Category struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Image       *string    `json:"image,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`
}

type News struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Content    string     `json:"content"`
	Image      *string    `json:"image,omitempty"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"-"`
}

type Comment struct {
	ID        uuid.UUID  `json:"id"`
	Body      string     `json:"body"`
	UserID    uuid.UUID  `json:"user_id"`
	NewsID    uuid.UUID  `json:"news_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

type Testimonial struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Content   string     `json:"content"`
	Image     *string    `json:"image,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

type Member struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	FacebookURL  *string    `json:"facebook_url,omitempty"`
	InstagramURL *string    `json:"instagram_url,omitempty"`
	LinkedinURL  *string    `json:"linkedin_url,omitempty"`
	Image        *string    `json:"image,omitempty"`
	Description  *string    `json:"description,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"-"`
}

type Contact struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Phone     *string    `json:"phone,omitempty"`
	Email     string     `json:"email"`
	Message   *string    `json:"message,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"-"`
}

// Organization is the ONG's public data sheet. In practice there is a single
// row, but the schema does not enforce that.
type Organization struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Image        *string    `json:"image,omitempty"`
	Phone        *string    `json:"phone,omitempty"`
	Address      *string    `json:"address,omitempty"`
	Email        string     `json:"email"`
	WelcomeText  *string    `json:"welcome_text,omitempty"`
	AboutUsText  *string    `json:"about_us_text,omitempty"`
	FacebookURL  *string    `json:"facebook_url,omitempty"`
	InstagramURL *string    `json:"instagram_url,omitempty"`
	LinkedinURL  *string    `json:"linkedin_url,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"-"`
}

// Page wraps a list response with LIMIT/OFFSET pagination metadata.
type Page[T any] struct {
	Items []T `json:"items"`
	Page  int `json:"page"`
	Size  int `json:"size"`
	Total int `json:"total"`
}
