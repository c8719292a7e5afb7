package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annapurna-ai/backend/internal/models"
	"github.com/annapurna-ai/backend/internal/testhelpers"
)

func TestRegisterAndLogin(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	token, err := svc.Register(ctx, "Asha", "asha@example.com", "strong-password", models.VegetarianEggless, 70)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "Asha", claims.Name)

	// Registration seeds the settings row.
	var settings models.UserSettings
	require.NoError(t, db.First(&settings, "user_id = ?", claims.UserID).Error)
	assert.Equal(t, models.VegetarianEggless, settings.DietaryPreference)
	assert.Equal(t, 70.0, settings.ProteinGoal)

	loginToken, err := svc.Login(ctx, "asha@example.com", "strong-password")
	require.NoError(t, err)
	loginClaims, err := svc.ValidateToken(loginToken)
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, loginClaims.UserID)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, "A", "dup@example.com", "password123", models.NonVegetarian, 0)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "B", "dup@example.com", "password456", models.NonVegetarian, 0)
	assert.Error(t, err)
}

func TestRegisterRejectsUnknownPreference(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := NewAuthService(db, "test-secret")

	_, err := svc.Register(context.Background(), "A", "pref@example.com", "password123", "keto", 0)
	assert.Error(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, "A", "login@example.com", "right-password", models.NonVegetarian, 0)
	require.NoError(t, err)

	_, err = svc.Login(ctx, "login@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	ctx := context.Background()

	issuer := NewAuthService(db, "secret-a")
	token, err := issuer.Register(ctx, "A", "sig@example.com", "password123", models.NonVegetarian, 0)
	require.NoError(t, err)

	verifier := NewAuthService(db, "secret-b")
	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}
