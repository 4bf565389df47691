package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/recipebox/recipebox-backend/internal/models"
	"github.com/recipebox/recipebox-backend/internal/scope"
	"gorm.io/gorm"
)

var (
	ErrIngredientNotFound  = errors.New("ingredient not found")
	ErrIngredientNameTaken = errors.New("an ingredient with that name already exists")
	ErrIngredientInUse     = errors.New("ingredient is still attached to at least one recipe")
)

type IngredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

func (s *IngredientService) List(ownerID uuid.UUID, onlyAssigned bool) ([]models.Ingredient, error) {
	q := s.db.Scopes(scope.ForOwner(ownerID)).Order("name ASC")

	if onlyAssigned {
		q = q.Where("id IN (?)", s.db.Table("recipe_ingredients").
			Select("recipe_ingredients.ingredient_id").
			Joins("JOIN recipes ON recipes.id = recipe_ingredients.recipe_id").
			Where("recipes.user_id = ?", ownerID))
	}

	var ingredients []models.Ingredient
	if err := q.Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return ingredients, nil
}

func (s *IngredientService) Rename(ownerID uuid.UUID, id uint, name string) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.Scopes(scope.ForOwner(ownerID)).First(&ingredient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, fmt.Errorf("failed to load ingredient: %w", err)
	}

	var clash models.Ingredient
	err := s.db.Scopes(scope.ForOwner(ownerID)).
		Where("LOWER(name) = LOWER(?) AND id <> ?", name, id).
		First(&clash).Error
	if err == nil {
		return nil, ErrIngredientNameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check ingredient name: %w", err)
	}

	if err := s.db.Model(&ingredient).Update("name", name).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrIngredientNameTaken
		}
		return nil, fmt.Errorf("failed to rename ingredient: %w", err)
	}
	return &ingredient, nil
}

func (s *IngredientService) Delete(ownerID uuid.UUID, id uint) error {
	var ingredient models.Ingredient
	if err := s.db.Scopes(scope.ForOwner(ownerID)).First(&ingredient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrIngredientNotFound
		}
		return fmt.Errorf("failed to load ingredient: %w", err)
	}

	var refs int64
	if err := s.db.Table("recipe_ingredients").Where("ingredient_id = ?", id).Count(&refs).Error; err != nil {
		return fmt.Errorf("failed to count ingredient references: %w", err)
	}
	if refs > 0 {
		return ErrIngredientInUse
	}

	if err := s.db.Delete(&ingredient).Error; err != nil {
		return fmt.Errorf("failed to delete ingredient: %w", err)
	}
	return nil
}
