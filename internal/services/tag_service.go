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
	ErrTagNotFound  = errors.New("tag not found")
	ErrTagNameTaken = errors.New("a tag with that name already exists")
	ErrTagInUse     = errors.New("tag is still attached to at least one recipe")
)

type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

// List returns the owner's tags ordered by name. With onlyAssigned it keeps
// just the tags attached to at least one of the owner's recipes.
func (s *TagService) List(ownerID uuid.UUID, onlyAssigned bool) ([]models.Tag, error) {
	q := s.db.Scopes(scope.ForOwner(ownerID)).Order("name ASC")

	if onlyAssigned {
		q = q.Where("id IN (?)", s.db.Table("recipe_tags").
			Select("recipe_tags.tag_id").
			Joins("JOIN recipes ON recipes.id = recipe_tags.recipe_id").
			Where("recipes.user_id = ?", ownerID))
	}

	var tags []models.Tag
	if err := q.Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// Rename changes a tag's name, re-validating the per-owner case-insensitive
// uniqueness rule. Renaming onto another existing tag is a conflict, never a
// merge. Changing only the casing of the same tag is allowed.
func (s *TagService) Rename(ownerID uuid.UUID, id uint, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.Scopes(scope.ForOwner(ownerID)).First(&tag, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to load tag: %w", err)
	}

	var clash models.Tag
	err := s.db.Scopes(scope.ForOwner(ownerID)).
		Where("LOWER(name) = LOWER(?) AND id <> ?", name, id).
		First(&clash).Error
	if err == nil {
		return nil, ErrTagNameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check tag name: %w", err)
	}

	if err := s.db.Model(&tag).Update("name", name).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTagNameTaken
		}
		return nil, fmt.Errorf("failed to rename tag: %w", err)
	}
	return &tag, nil
}

// Delete removes an unreferenced tag. Tags still attached to a recipe are
// protected; the caller gets a conflict instead of a cascade.
func (s *TagService) Delete(ownerID uuid.UUID, id uint) error {
	var tag models.Tag
	if err := s.db.Scopes(scope.ForOwner(ownerID)).First(&tag, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return fmt.Errorf("failed to load tag: %w", err)
	}

	var refs int64
	if err := s.db.Table("recipe_tags").Where("tag_id = ?", id).Count(&refs).Error; err != nil {
		return fmt.Errorf("failed to count tag references: %w", err)
	}
	if refs > 0 {
		return ErrTagInUse
	}

	if err := s.db.Delete(&tag).Error; err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return nil
}
