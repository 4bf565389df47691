package dto

import "time"

// NameRef is how tags and ingredients appear in recipe payloads: by name
// only. The server resolves each name to a row via per-owner get-or-create.
type NameRef struct {
	Name string `json:"name" validate:"required,max=255"`
}

type CreateRecipeRequest struct {
	Title       string    `json:"title" validate:"required,max=255"`
	TimeMinutes int       `json:"time_minutes" validate:"required,min=1"`
	Price       float64   `json:"price" validate:"gte=0"`
	Link        string    `json:"link" validate:"omitempty,max=255"`
	Description string    `json:"description"`
	Tags        []NameRef `json:"tags" validate:"omitempty,dive"`
	Ingredients []NameRef `json:"ingredients" validate:"omitempty,dive"`
}

// UpdateRecipeRequest is a partial update: nil fields are left untouched.
// A non-nil empty Tags/Ingredients slice clears the association.
type UpdateRecipeRequest struct {
	Title       *string    `json:"title" validate:"omitempty,max=255"`
	TimeMinutes *int       `json:"time_minutes" validate:"omitempty,min=1"`
	Price       *float64   `json:"price" validate:"omitempty,gte=0"`
	Link        *string    `json:"link" validate:"omitempty,max=255"`
	Description *string    `json:"description"`
	Tags        *[]NameRef `json:"tags" validate:"omitempty,dive"`
	Ingredients *[]NameRef `json:"ingredients" validate:"omitempty,dive"`
}

type RecipeResponse struct {
	ID          uint                 `json:"id"`
	Title       string               `json:"title"`
	TimeMinutes int                  `json:"time_minutes"`
	Price       float64              `json:"price"`
	Link        string               `json:"link"`
	Description string               `json:"description"`
	Image       *string              `json:"image"`
	Tags        []TagResponse        `json:"tags"`
	Ingredients []IngredientResponse `json:"ingredients"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

type RecipeListResponse struct {
	Recipes []RecipeResponse `json:"recipes"`
	Count   int              `json:"count"`
}
