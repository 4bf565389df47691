package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/recipebox/recipebox-backend/internal/models"
	"github.com/recipebox/recipebox-backend/internal/scope"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrRecipeNotFound = errors.New("recipe not found")

type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

type CreateRecipeInput struct {
	Title       string
	TimeMinutes int
	Price       float64
	Link        string
	Description string
	Tags        []string
	Ingredients []string
}

// UpdateRecipeInput is a partial update. Nil means "leave unchanged";
// a non-nil empty Tags/Ingredients slice clears the set.
type UpdateRecipeInput struct {
	Title       *string
	TimeMinutes *int
	Price       *float64
	Link        *string
	Description *string
	Tags        *[]string
	Ingredients *[]string
}

// List returns the owner's recipes, newest first. Non-empty tagIDs restricts
// the result to recipes carrying at least one of those tags; ingredientIDs
// works the same way; both together combine with AND. The subqueries keep the
// result free of duplicates when a recipe matches several requested ids.
func (s *RecipeService) List(ownerID uuid.UUID, tagIDs, ingredientIDs []uint) ([]models.Recipe, error) {
	q := s.db.Scopes(scope.ForOwner(ownerID)).
		Preload("Tags").
		Preload("Ingredients").
		Order("created_at DESC, id DESC")

	if len(tagIDs) > 0 {
		q = q.Where("id IN (?)",
			s.db.Table("recipe_tags").Select("recipe_id").Where("tag_id IN ?", tagIDs))
	}
	if len(ingredientIDs) > 0 {
		q = q.Where("id IN (?)",
			s.db.Table("recipe_ingredients").Select("recipe_id").Where("ingredient_id IN ?", ingredientIDs))
	}

	var recipes []models.Recipe
	if err := q.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// Get returns one of the owner's recipes with tags and ingredients loaded.
// Rows owned by anyone else look exactly like missing rows.
func (s *RecipeService) Get(ownerID uuid.UUID, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.Scopes(scope.ForOwner(ownerID)).
		Preload("Tags").
		Preload("Ingredients").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}
	return &recipe, nil
}

func (s *RecipeService) Create(ownerID uuid.UUID, in CreateRecipeInput) (*models.Recipe, error) {
	recipe := models.Recipe{
		UserID:      ownerID,
		Title:       in.Title,
		TimeMinutes: in.TimeMinutes,
		Price:       in.Price,
		Link:        in.Link,
		Description: in.Description,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}
		if err := replaceTags(tx, &recipe, in.Tags); err != nil {
			return err
		}
		return replaceIngredients(tx, &recipe, in.Ingredients)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ownerID, recipe.ID)
}

func (s *RecipeService) Update(ownerID uuid.UUID, id uint, in UpdateRecipeInput) (*models.Recipe, error) {
	recipe, err := s.Get(ownerID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.TimeMinutes != nil {
		updates["time_minutes"] = *in.TimeMinutes
	}
	if in.Price != nil {
		updates["price"] = *in.Price
	}
	if in.Link != nil {
		updates["link"] = *in.Link
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(recipe).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update recipe: %w", err)
			}
		}
		if in.Tags != nil {
			if err := replaceTags(tx, recipe, *in.Tags); err != nil {
				return err
			}
		}
		if in.Ingredients != nil {
			if err := replaceIngredients(tx, recipe, *in.Ingredients); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ownerID, id)
}

// Delete removes the recipe and its join rows. The tags and ingredients it
// referenced stay; they may still be attached to other recipes.
func (s *RecipeService) Delete(ownerID uuid.UUID, id uint) error {
	recipe, err := s.Get(ownerID, id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).Association("Tags").Clear(); err != nil {
			return fmt.Errorf("failed to detach tags: %w", err)
		}
		if err := tx.Model(recipe).Association("Ingredients").Clear(); err != nil {
			return fmt.Errorf("failed to detach ingredients: %w", err)
		}
		if err := tx.Delete(recipe).Error; err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}
		return nil
	})
}

// SetImage records a freshly stored image path on the recipe and returns the
// previously recorded path so the caller can remove the stale file once the
// row update has gone through.
func (s *RecipeService) SetImage(ownerID uuid.UUID, id uint, path string) (previous *string, err error) {
	recipe, err := s.Get(ownerID, id)
	if err != nil {
		return nil, err
	}

	previous = recipe.Image
	if err := s.db.Model(recipe).Update("image", path).Error; err != nil {
		return nil, fmt.Errorf("failed to record image: %w", err)
	}
	return previous, nil
}

func replaceTags(tx *gorm.DB, recipe *models.Recipe, names []string) error {
	tags, err := getOrCreateTags(tx, recipe.UserID, names)
	if err != nil {
		return err
	}
	assoc := tx.Model(recipe).Association("Tags")
	if len(tags) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(tags)
}

func replaceIngredients(tx *gorm.DB, recipe *models.Recipe, names []string) error {
	ingredients, err := getOrCreateIngredients(tx, recipe.UserID, names)
	if err != nil {
		return err
	}
	assoc := tx.Model(recipe).Association("Ingredients")
	if len(ingredients) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(ingredients)
}

// getOrCreateTags resolves names to the owner's tag rows, creating missing
// ones. Matching is case-insensitive and duplicate names within one call
// collapse to a single row. A concurrent identical create loses to the
// (user_id, lower(name)) unique index via ON CONFLICT DO NOTHING, after
// which the winner is re-read.
func getOrCreateTags(tx *gorm.DB, ownerID uuid.UUID, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	seen := make(map[string]bool, len(names))

	for _, raw := range names {
		name := strings.TrimSpace(raw)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true

		var tag models.Tag
		err := tx.Where("user_id = ? AND LOWER(name) = ?", ownerID, key).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = models.Tag{UserID: ownerID, Name: name}
			// No conflict target: the expression index on lower(name) is the
			// only unique constraint an insert here can hit.
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&tag)
			if res.Error != nil {
				return nil, fmt.Errorf("failed to create tag %q: %w", name, res.Error)
			}
			if tag.ID == 0 {
				if err := tx.Where("user_id = ? AND LOWER(name) = ?", ownerID, key).First(&tag).Error; err != nil {
					return nil, fmt.Errorf("failed to reload tag %q: %w", name, err)
				}
			}
		} else if err != nil {
			return nil, fmt.Errorf("failed to look up tag %q: %w", name, err)
		}

		tags = append(tags, tag)
	}
	return tags, nil
}

func getOrCreateIngredients(tx *gorm.DB, ownerID uuid.UUID, names []string) ([]models.Ingredient, error) {
	ingredients := make([]models.Ingredient, 0, len(names))
	seen := make(map[string]bool, len(names))

	for _, raw := range names {
		name := strings.TrimSpace(raw)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true

		var ingredient models.Ingredient
		err := tx.Where("user_id = ? AND LOWER(name) = ?", ownerID, key).First(&ingredient).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ingredient = models.Ingredient{UserID: ownerID, Name: name}
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&ingredient)
			if res.Error != nil {
				return nil, fmt.Errorf("failed to create ingredient %q: %w", name, res.Error)
			}
			if ingredient.ID == 0 {
				if err := tx.Where("user_id = ? AND LOWER(name) = ?", ownerID, key).First(&ingredient).Error; err != nil {
					return nil, fmt.Errorf("failed to reload ingredient %q: %w", name, err)
				}
			}
		} else if err != nil {
			return nil, fmt.Errorf("failed to look up ingredient %q: %w", name, err)
		}

		ingredients = append(ingredients, ingredient)
	}
	return ingredients, nil
}
