package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annapurna-ai/backend/internal/models"
	"github.com/annapurna-ai/backend/internal/testhelpers"
)

func TestGetSettingsCreatesDefaults(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := NewProfileService(db)
	ctx := context.Background()
	userID := seedUser(t, db, "defaults@example.com")

	settings, err := svc.GetSettings(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, models.NonVegetarian, settings.DietaryPreference)
	assert.Zero(t, settings.ProteinGoal)

	// Second call returns the same row, not another default.
	again, err := svc.GetSettings(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, settings.ID, again.ID)
}

func TestUpdateSettingsPartial(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := NewProfileService(db)
	ctx := context.Background()
	userID := seedUser(t, db, "partial@example.com")

	goal := 85.0
	updated, err := svc.UpdateSettings(ctx, userID, &goal, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 85.0, updated.ProteinGoal)
	assert.Equal(t, models.NonVegetarian, updated.DietaryPreference, "untouched fields keep their value")

	pref := models.VegetarianEggless
	model := "gemini-2.5-pro"
	updated, err = svc.UpdateSettings(ctx, userID, nil, &pref, &model)
	require.NoError(t, err)
	assert.Equal(t, models.VegetarianEggless, updated.DietaryPreference)
	assert.Equal(t, "gemini-2.5-pro", updated.AIModel)
	assert.Equal(t, 85.0, updated.ProteinGoal)

	bad := models.DietaryPreference("fruitarian")
	_, err = svc.UpdateSettings(ctx, userID, nil, &bad, nil)
	assert.Error(t, err)
}

func TestStartOfWeek(t *testing.T) {
	// Wednesday 2026-08-26 -> Monday 2026-08-24.
	wed := time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), StartOfWeek(wed))

	// Monday maps to itself.
	mon := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, mon, StartOfWeek(mon))

	// Sunday belongs to the preceding Monday.
	sun := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), StartOfWeek(sun))
}

func TestWeeklyTargetUpsertAndDailyGoal(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := NewProfileService(db)
	ctx := context.Background()
	userID := seedUser(t, db, "target@example.com")

	wed := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	target, err := svc.SetWeeklyTarget(ctx, userID, wed, 14000)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, target.DailyGoal())

	// Any day of the same week resolves to the same target.
	sun := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)
	got, err := svc.GetWeeklyTarget(ctx, userID, sun)
	require.NoError(t, err)
	assert.Equal(t, target.ID, got.ID)

	// Setting again for the same week updates in place.
	updated, err := svc.SetWeeklyTarget(ctx, userID, sun, 10500)
	require.NoError(t, err)
	assert.Equal(t, target.ID, updated.ID)
	assert.Equal(t, 1500.0, updated.DailyGoal())

	var count int64
	db.Model(&models.WeeklyTarget{}).Where("user_id = ?", userID).Count(&count)
	assert.EqualValues(t, 1, count)

	// The next week has no target.
	_, err = svc.GetWeeklyTarget(ctx, userID, wed.AddDate(0, 0, 7))
	assert.Error(t, err)
}
