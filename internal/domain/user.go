package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered customer a sale can be linked to.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     *string
	CreatedAt time.Time
}
