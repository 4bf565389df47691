package services

import (
	"testing"

	"github.com/recipebox/recipebox-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTagList_LimitedToOwnerOrderedByName(t *testing.T) {
	db := newTestDB(t)
	tagSvc := NewTagService(db)
	recipeSvc := NewRecipeService(db)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	createTestRecipe(t, recipeSvc, alice.ID, "Soup", []string{"Vegan", "Dinner"}, nil)
	createTestRecipe(t, recipeSvc, bob.ID, "Cake", []string{"Dessert"}, nil)

	tags, err := tagSvc.List(alice.ID, false)
	require.NoError(t, err)

	require.Len(t, tags, 2)
	assert.Equal(t, "Dinner", tags[0].Name)
	assert.Equal(t, "Vegan", tags[1].Name)
}

func TestTagList_OnlyAssigned(t *testing.T) {
	db := newTestDB(t)
	tagSvc := NewTagService(db)
	recipeSvc := NewRecipeService(db)
	owner := createTestUser(t, db, "user@example.com")

	createTestRecipe(t, recipeSvc, owner.ID, "Soup", []string{"Dinner"}, nil)
	require.NoError(t, db.Create(&models.Tag{UserID: owner.ID, Name: "Unused"}).Error)

	all, err := tagSvc.List(owner.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assigned, err := tagSvc.List(owner.ID, true)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, "Dinner", assigned[0].Name)
}

func TestTagList_OnlyAssignedIsDistinct(t *testing.T) {
	db := newTestDB(t)
	tagSvc := NewTagService(db)
	recipeSvc := NewRecipeService(db)
	owner := createTestUser(t, db, "user@example.com")

	// same tag on two recipes must show up once
	createTestRecipe(t, recipeSvc, owner.ID, "Soup", []string{"Dinner"}, nil)
	createTestRecipe(t, recipeSvc, owner.ID, "Stew", []string{"Dinner"}, nil)

	assigned, err := tagSvc.List(owner.ID, true)
	require.NoError(t, err)
	assert.Len(t, assigned, 1)
}

func TestTagRename_Succeeds(t *testing.T) {
	db := newTestDB(t)
	tagSvc := NewTagService(db)
	owner := createTestUser(t, db, "user@example.com")

	tag := models.Tag{UserID: owner.ID, Name: "Diner"}
	require.NoError(t, db.Create(&tag).Error)

	renamed, err := tagSvc.Rename(owner.ID, tag.ID, "Dinner")
	require.NoError(t, err)
	assert.Equal(t, "Dinner", renamed.Name)
	assert.Equal(t, tag.ID, renamed.ID)
}

func TestTagRename_ToExistingNameIsConflict(t *testing.T) {
	db := newTestDB(t)
	tagSvc := NewTagService(db)
	owner := createTestUser(t, db, "user@example.com")

	breakfast := models.Tag{UserID: owner.ID, Name: "Breakfast"}
	dinner := models.Tag{UserID: owner.ID, Name: "Dinner"}
	require.NoError(t, db.Create(&breakfast).Error)
	require.NoError(t, db.Create(&dinner).Error)

	_, err := tagSvc.Rename(owner.ID, breakfast.ID, "dinner")
	assert.ErrorIs(t, err, ErrTagNameTaken)

	// unchanged after the failed rename
	var reloaded models.Tag
	require.NoError(t, db.First(&reloaded, breakfast.ID).Error)
	assert.Equal(t, "Breakfast", reloaded.Name)
}

func TestTagRename_CaseChangeOfSameTagIsAllowed(t *testing.T) {
	db := newTestDB(t)
	tagSvc := NewTagService(db)
	owner := createTestUser(t, db, "user@example.com")

	tag := models.Tag{UserID: owner.ID, Name: "dinner"}
	require.NoError(t, db.Create(&tag).Error)

	renamed, err := tagSvc.Rename(owner.ID, tag.ID, "Dinner")
	require.NoError(t, err)
	assert.Equal(t, "Dinner", renamed.Name)
}

func TestTagRename_SameNameDifferentOwnersIsFine(t *testing.T) {
	db := newTestDB(t)
	tagSvc := NewTagService(db)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	aliceTag := models.Tag{UserID: alice.ID, Name: "Quick"}
	bobTag := models.Tag{UserID: bob.ID, Name: "Dinner"}
	require.NoError(t, db.Create(&aliceTag).Error)
	require.NoError(t, db.Create(&bobTag).Error)

	// Bob already owns "Dinner" but that must not block Alice
	renamed, err := tagSvc.Rename(alice.ID, aliceTag.ID, "Dinner")
	require.NoError(t, err)
	assert.Equal(t, "Dinner", renamed.Name)
}

func TestTagRename_OtherUsersTagIsNotFound(t *testing.T) {
	db := newTestDB(t)
	tagSvc := NewTagService(db)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	tag := models.Tag{UserID: alice.ID, Name: "Dinner"}
	require.NoError(t, db.Create(&tag).Error)

	_, err := tagSvc.Rename(bob.ID, tag.ID, "Stolen")
	assert.ErrorIs(t, err, ErrTagNotFound)
}

func TestTagDelete_Unreferenced(t *testing.T) {
	db := newTestDB(t)
	tagSvc := NewTagService(db)
	owner := createTestUser(t, db, "user@example.com")

	tag := models.Tag{UserID: owner.ID, Name: "Unused"}
	require.NoError(t, db.Create(&tag).Error)

	require.NoError(t, tagSvc.Delete(owner.ID, tag.ID))

	var count int64
	require.NoError(t, db.Model(&models.Tag{}).Where("id = ?", tag.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestTagDelete_BlockedWhileReferenced(t *testing.T) {
	db := newTestDB(t)
	tagSvc := NewTagService(db)
	recipeSvc := NewRecipeService(db)
	owner := createTestUser(t, db, "user@example.com")

	recipe := createTestRecipe(t, recipeSvc, owner.ID, "Soup", []string{"Dinner"}, nil)
	dinnerID := tagIDs(recipe)["Dinner"]

	assert.ErrorIs(t, tagSvc.Delete(owner.ID, dinnerID), ErrTagInUse)

	// detach, then delete works
	empty := []string{}
	_, err := recipeSvc.Update(owner.ID, recipe.ID, UpdateRecipeInput{Tags: &empty})
	require.NoError(t, err)
	require.NoError(t, tagSvc.Delete(owner.ID, dinnerID))
}

func TestTagDelete_OtherUsersTagIsNotFound(t *testing.T) {
	db := newTestDB(t)
	tagSvc := NewTagService(db)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	tag := models.Tag{UserID: alice.ID, Name: "Dinner"}
	require.NoError(t, db.Create(&tag).Error)

	assert.ErrorIs(t, tagSvc.Delete(bob.ID, tag.ID), ErrTagNotFound)
}

func TestTagNameIndexIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")

	require.NoError(t, db.Create(&models.Tag{UserID: owner.ID, Name: "Dinner"}).Error)

	// a raw insert that skips the service lookup still hits the index
	err := db.Create(&models.Tag{UserID: owner.ID, Name: "dinner"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// other owners are unaffected
	require.NoError(t, db.Create(&models.Tag{UserID: other.ID, Name: "dinner"}).Error)
}

func TestIngredientNameIndexIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")

	require.NoError(t, db.Create(&models.Ingredient{UserID: owner.ID, Name: "Salt"}).Error)
	err := db.Create(&models.Ingredient{UserID: owner.ID, Name: "SALT"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
