package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

var inventoryStatKeys = []string{
	StatTotalValue,
	StatIngredientCount,
	StatRecipeCount,
	StatMealCount,
	StatLowStockCount,
	StatExpiredCount,
	StatMassItems,
	StatVolumeItems,
	StatCountItems,
}

var wasteStatKeys = []string{
	StatExpiredCount,
	StatExpiredValue,
	StatExpiringSoonCount,
	StatWasteRatio,
}

func TestInventoryStatisticsEmptyRepository(t *testing.T) {
	stats := New().InventoryStatistics()

	require.Len(t, stats, len(inventoryStatKeys), "every key present even when empty")
	for _, key := range inventoryStatKeys {
		assert.Contains(t, stats, key)
		assert.Zero(t, stats[key])
	}
}

func TestInventoryStatistics(t *testing.T) {
	repo := New()

	flour := newIngredient(t, "Flour", 1000, types.UnitGram, 0.002)
	lowSugar := newIngredient(t, "Sugar", 50, types.UnitGram, 0.003)
	milk := newIngredient(t, "Milk", 1000, types.UnitMilliliter, 0.001)
	expiredYogurt := newIngredient(t, "Yogurt", 500, types.UnitGram, 0.004)
	past := time.Now().Add(-time.Hour)
	expiredYogurt.ExpiryDate = &past
	eggs := newIngredient(t, "Eggs", 12, types.UnitPiece, 0.3)

	for _, ingredient := range []*types.Ingredient{flour, lowSugar, milk, expiredYogurt, eggs} {
		require.NoError(t, repo.AddIngredient(ingredient))
	}
	require.NoError(t, repo.AddRecipe(newRecipe(t, "Bread", "")))
	require.NoError(t, repo.AddMeal(newMeal(t, "Friday dinner")))

	stats := repo.InventoryStatistics()

	// 2.0 + 0.15 + 1.0 + 2.0 + 3.6
	assert.InDelta(t, 8.75, stats[StatTotalValue], 1e-9)
	assert.Equal(t, 5.0, stats[StatIngredientCount])
	assert.Equal(t, 1.0, stats[StatRecipeCount])
	assert.Equal(t, 1.0, stats[StatMealCount])
	assert.Equal(t, 1.0, stats[StatLowStockCount])
	assert.Equal(t, 1.0, stats[StatExpiredCount])
	assert.Equal(t, 3.0, stats[StatMassItems])
	assert.Equal(t, 1.0, stats[StatVolumeItems])
	assert.Equal(t, 1.0, stats[StatCountItems])
}

func TestWasteStatisticsEmptyRepository(t *testing.T) {
	stats := New().WasteStatistics()

	require.Len(t, stats, len(wasteStatKeys), "every key present even when empty")
	for _, key := range wasteStatKeys {
		assert.Contains(t, stats, key)
		assert.Zero(t, stats[key], "waste ratio is 0 for a worthless inventory")
	}
}

func TestWasteStatistics(t *testing.T) {
	repo := New()

	expired := newIngredient(t, "Yogurt", 500, types.UnitGram, 0.004)
	past := time.Now().Add(-time.Hour)
	expired.ExpiryDate = &past

	expiringSoon := newIngredient(t, "Milk", 1000, types.UnitMilliliter, 0.001)
	in24h := time.Now().Add(24 * time.Hour)
	expiringSoon.ExpiryDate = &in24h

	fresh := newIngredient(t, "Flour", 1000, types.UnitGram, 0.005)

	for _, ingredient := range []*types.Ingredient{expired, expiringSoon, fresh} {
		require.NoError(t, repo.AddIngredient(ingredient))
	}

	stats := repo.WasteStatistics()

	assert.Equal(t, 1.0, stats[StatExpiredCount])
	assert.InDelta(t, 2.0, stats[StatExpiredValue], 1e-9)
	assert.Equal(t, 2.0, stats[StatExpiringSoonCount], "expired counts as expiring soon")
	// 2.0 expired out of 8.0 total.
	assert.InDelta(t, 0.25, stats[StatWasteRatio], 1e-9)
}
