package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is a support request sent through the contact form.
type Message struct {
	ID        uuid.UUID
	UserID    *uuid.UUID
	Name      string
	Email     string
	Subject   string
	Body      string
	Read      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Wallet is a platform address users send deposits to.
type Wallet struct {
	ID        uuid.UUID
	Network   string
	Address   string
	Label     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// News is an article shown on the public site.
type News struct {
	ID        uuid.UUID
	Title     string
	Summary   string
	Body      string
	ImageURL  string
	Published bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
