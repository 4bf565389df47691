package services

import (
	"errors"
	"testing"

	"github.com/recipebox/recipebox-backend/internal/dto"
	"github.com/recipebox/recipebox-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func registerTestUser(t *testing.T, svc *AuthService, email string) *dto.AuthResponse {
	t.Helper()

	resp, err := svc.Register(&dto.RegisterRequest{
		Email:    email,
		Password: "password123",
		Name:     "Test User",
	})
	require.NoError(t, err)
	return resp
}

func TestAuthRegister_CreatesUserWithHashedPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp := registerTestUser(t, svc, "user@example.com")

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "user@example.com", resp.User.Email)

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "user@example.com").Error)
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
}

func TestAuthRegister_DuplicateEmailIsConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	registerTestUser(t, svc, "user@example.com")

	_, err := svc.Register(&dto.RegisterRequest{
		Email:    "user@example.com",
		Password: "password456",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthRegister_ShortPasswordRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&dto.RegisterRequest{
		Email:    "user@example.com",
		Password: "short",
	})
	assert.Error(t, err)
}

func TestAuthLogin_RightAndWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	registerTestUser(t, svc, "user@example.com")

	resp, err := svc.Login(&dto.LoginRequest{Email: "user@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = svc.Login(&dto.LoginRequest{Email: "user@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthRefresh_RotatesToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	registered := registerTestUser(t, svc, "user@example.com")

	refreshed, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: registered.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.RefreshToken)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// the old refresh token is single-use
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: registered.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthLogout_RevokesRefreshToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	registered := registerTestUser(t, svc, "user@example.com")

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: registered.RefreshToken}))

	_, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: registered.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthUpdateProfile_NameAndPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	registered := registerTestUser(t, svc, "user@example.com")

	newName := "Renamed"
	newPassword := "newpassword123"
	_, err := svc.UpdateProfile(registered.User.ID, &dto.UpdateProfileRequest{
		Name:     &newName,
		Password: &newPassword,
	})
	require.NoError(t, err)

	user, err := svc.Me(registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", user.Name)
	assert.Equal(t, "user@example.com", user.Email)

	_, err = svc.Login(&dto.LoginRequest{Email: "user@example.com", Password: "newpassword123"})
	require.NoError(t, err)
	_, err = svc.Login(&dto.LoginRequest{Email: "user@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthDeleteAccount_RemovesOwnedData(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())
	recipeSvc := NewRecipeService(db)

	registered := registerTestUser(t, svc, "user@example.com")
	createTestRecipe(t, recipeSvc, registered.User.ID, "Soup", []string{"easy"}, []string{"salt"})

	require.NoError(t, svc.DeleteAccount(registered.User.ID, "password123"))

	var recipes, tags, ingredients, tokens int64
	db.Model(&models.Recipe{}).Where("user_id = ?", registered.User.ID).Count(&recipes)
	db.Model(&models.Tag{}).Where("user_id = ?", registered.User.ID).Count(&tags)
	db.Model(&models.Ingredient{}).Where("user_id = ?", registered.User.ID).Count(&ingredients)
	db.Model(&models.RefreshToken{}).Where("user_id = ?", registered.User.ID).Count(&tokens)
	assert.Zero(t, recipes)
	assert.Zero(t, tags)
	assert.Zero(t, ingredients)
	assert.Zero(t, tokens)

	_, err := svc.Login(&dto.LoginRequest{Email: "user@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthDeleteAccount_WrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	registered := registerTestUser(t, svc, "user@example.com")

	assert.ErrorIs(t, svc.DeleteAccount(registered.User.ID, "wrong"), ErrInvalidCredentials)

	_, err := svc.Me(registered.User.ID)
	require.NoError(t, err)
}

func TestAuthRegister_NormalizesEmailDomain(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(&dto.RegisterRequest{
		Email:    "Alice@EXAMPLE.Com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice@example.com", resp.User.Email)

	// the normalized form is what duplicates are checked against
	_, err = svc.Register(&dto.RegisterRequest{
		Email:    "Alice@example.COM",
		Password: "password456",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	// login normalizes the same way, so domain casing never locks anyone out
	login, err := svc.Login(&dto.LoginRequest{
		Email:    "Alice@ExAmPlE.cOm",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice@example.com", login.User.Email)
}

func TestAuthRefresh_FailsWhenRevokeCannotBeStored(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())
	resp := registerTestUser(t, svc, "user@example.com")

	require.NoError(t, db.Callback().Update().Before("gorm:update").
		Register("refuse_updates", func(tx *gorm.DB) {
			tx.AddError(errors.New("storage unavailable"))
		}))

	_, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.Error(t, err)

	// no new pair was issued while the old token could not be revoked
	var count int64
	require.NoError(t, db.Model(&models.RefreshToken{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
