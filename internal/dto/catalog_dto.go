package dto

type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type IngredientResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type TagListResponse struct {
	Tags []TagResponse `json:"tags"`
}

type IngredientListResponse struct {
	Ingredients []IngredientResponse `json:"ingredients"`
}

// RenameRequest updates the name of a tag or ingredient.
type RenameRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}
