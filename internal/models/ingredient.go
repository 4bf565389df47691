package models

import (
	"time"

	"github.com/google/uuid"
)

// Ingredient follows the same per-owner uniqueness and get-or-create rules
// as Tag.
type Ingredient struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ingredients_owner_name" json:"-"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:idx_ingredients_owner_name,expression:lower(name)" json:"name"`
	CreatedAt time.Time `json:"-"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}
