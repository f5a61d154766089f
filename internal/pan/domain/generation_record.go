package domain

import (
	"time"

	"github.com/google/uuid"
)

// GenerationRecord is one stored row of a persisted generation batch.
type GenerationRecord struct {
	ID        uuid.UUID
	BatchID   uuid.UUID
	Template  string
	Position  int
	PAN       string
	Brand     Brand
	Expiry    string
	CVV       string
	Issuer    string
	CreatedAt time.Time
}
