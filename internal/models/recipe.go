package models

import (
	"time"

	"github.com/google/uuid"
)

// Recipe is the central entity. Tags and ingredients are attached through
// join tables and always belong to the same owner as the recipe itself.
type Recipe struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	UserID      uuid.UUID    `gorm:"type:uuid;not null;index" json:"-"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	TimeMinutes int          `gorm:"not null" json:"time_minutes"`
	Price       float64      `gorm:"type:decimal(7,2)" json:"price"`
	Link        string       `gorm:"size:255" json:"link"`
	Description string       `gorm:"type:text" json:"description"`
	Image       *string      `gorm:"size:255" json:"image"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	User        User         `gorm:"foreignKey:UserID" json:"-"`
	Tags        []Tag        `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE" json:"tags"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE" json:"ingredients"`
}
