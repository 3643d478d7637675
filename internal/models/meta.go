package models

import (
	"time"

	"github.com/google/uuid"
)

// Meta carries the fields every content row shares. Identifier and
// creation timestamp are assigned server-side on create, never by the
// dashboard.
type Meta struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OwnerID   string    `gorm:"column:owner_id;type:uuid;index" json:"owner_id"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;index" json:"created_at"`
}

func (m *Meta) Stamp(ownerID string) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.OwnerID == "" {
		m.OwnerID = ownerID
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
}

func (m *Meta) RecordID() string { return m.ID }
