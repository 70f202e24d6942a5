package auth

import (
	"time"

	"github.com/google/uuid"
)

// Account is a registered identity. Email is stored normalized and is unique.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
