package models

import (
	"time"

	"github.com/google/uuid"
)

// Tag labels a recipe (e.g. "Dinner", "Vegan"). Names are unique per owner
// regardless of casing: the index covers lower(name), so "dinner" can never
// land next to "Dinner" even when two requests race past the service lookup.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tags_owner_name" json:"-"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:idx_tags_owner_name,expression:lower(name)" json:"name"`
	CreatedAt time.Time `json:"-"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}
