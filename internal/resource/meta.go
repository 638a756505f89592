package resource

import (
	"time"

	"github.com/google/uuid"
)

// Meta carries the store-generated identity and timestamps shared by every
// managed entity. Embed it as the first field of an entity struct.
type Meta struct {
	ID        string    `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ResourceMeta exposes the embedded metadata. Promotion of this method is how
// the generic store reaches id and timestamps without reflection.
func (m *Meta) ResourceMeta() *Meta {
	return m
}

// Metadated is satisfied by any entity embedding Meta.
type Metadated interface {
	ResourceMeta() *Meta
}

func (m *Meta) prepareInsert(now time.Time) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
}
