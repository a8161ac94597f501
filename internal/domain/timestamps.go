package domain

import "time"

// Timestamps provides common audit fields embedded in every persisted entity.
type Timestamps struct {
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	ID        string     `json:"id"`
}

// Touch updates the UpdatedAt timestamp to the current time.
// Call this whenever the underlying entity changes.
func (t *Timestamps) Touch() {
	t.UpdatedAt = time.Now()
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
// Call this when creating a new entity.
func (t *Timestamps) InitTimestamps() {
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
}

// IsDeleted returns true if this entity has been soft-deleted.
func (t *Timestamps) IsDeleted() bool {
	return t.DeletedAt != nil
}

// MarkDeleted marks this entity as soft-deleted by setting DeletedAt to now.
func (t *Timestamps) MarkDeleted() {
	now := time.Now()
	t.DeletedAt = &now
	t.UpdatedAt = now
}
