package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

func TestListMealsByDate(t *testing.T) {
	repo := New()

	today := newMeal(t, "Today's dinner")
	today.PlannedTime = time.Date(2026, time.March, 14, 19, 0, 0, 0, time.UTC)
	lateToday := newMeal(t, "Midnight snack")
	lateToday.PlannedTime = time.Date(2026, time.March, 14, 23, 59, 0, 0, time.UTC)
	tomorrow := newMeal(t, "Tomorrow's lunch")
	tomorrow.PlannedTime = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.AddMeal(today))
	require.NoError(t, repo.AddMeal(lateToday))
	require.NoError(t, repo.AddMeal(tomorrow))

	matched := repo.ListMealsByDate(time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC))
	require.Len(t, matched, 2)
	names := []string{matched[0].Name, matched[1].Name}
	assert.Contains(t, names, "Today's dinner")
	assert.Contains(t, names, "Midnight snack")

	assert.Empty(t, repo.ListMealsByDate(time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC)))
}

func TestListMealsByDateHonorsLocation(t *testing.T) {
	repo := New()

	// 23:00 UTC on March 14 is already March 15 in UTC+3.
	meal := newMeal(t, "Late dinner")
	meal.PlannedTime = time.Date(2026, time.March, 14, 23, 0, 0, 0, time.UTC)
	require.NoError(t, repo.AddMeal(meal))

	east := time.FixedZone("UTC+3", 3*60*60)
	assert.Empty(t, repo.ListMealsByDate(time.Date(2026, time.March, 14, 12, 0, 0, 0, east)))
	assert.Len(t, repo.ListMealsByDate(time.Date(2026, time.March, 15, 12, 0, 0, 0, east)), 1)
}

func TestSearchRecipes(t *testing.T) {
	repo := New()
	require.NoError(t, repo.AddRecipe(newRecipe(t, "Sourdough Bread", "Slow fermented loaf")))
	require.NoError(t, repo.AddRecipe(newRecipe(t, "Pancakes", "Quick breakfast with bread flour")))
	require.NoError(t, repo.AddRecipe(newRecipe(t, "Tomato Soup", "Comfort food")))

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "matches name case-insensitively", query: "BREAD", want: 2},
		{name: "matches description", query: "comfort", want: 1},
		{name: "no match", query: "sushi", want: 0},
		{name: "empty query matches all", query: "", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, repo.SearchRecipes(tt.query), tt.want)
		})
	}
}

func TestListLowStockIngredients(t *testing.T) {
	repo := New()
	low := newIngredient(t, "Flour", 50, types.UnitGram, 0.002)
	boundary := newIngredient(t, "Sugar", 100, types.UnitGram, 0.003)
	plenty := newIngredient(t, "Salt", 150, types.UnitGram, 0.001)
	unthresholded := newIngredient(t, "Vanilla", 0.1, types.UnitTeaspoon, 0.5)
	for _, ingredient := range []*types.Ingredient{low, boundary, plenty, unthresholded} {
		require.NoError(t, repo.AddIngredient(ingredient))
	}

	lowStock := repo.ListLowStockIngredients()
	require.Len(t, lowStock, 2)
	ids := []string{lowStock[0].ID, lowStock[1].ID}
	assert.Contains(t, ids, low.ID)
	assert.Contains(t, ids, boundary.ID, "threshold is inclusive")
}

func TestListExpiringIngredients(t *testing.T) {
	repo := New()

	expired := newIngredient(t, "Yogurt", 500, types.UnitGram, 0.005)
	past := time.Now().Add(-time.Hour)
	expired.ExpiryDate = &past

	soon := newIngredient(t, "Milk", 1000, types.UnitMilliliter, 0.001)
	in24h := time.Now().Add(24 * time.Hour)
	soon.ExpiryDate = &in24h

	later := newIngredient(t, "Cheese", 200, types.UnitGram, 0.02)
	in10d := time.Now().Add(240 * time.Hour)
	later.ExpiryDate = &in10d

	forever := newIngredient(t, "Salt", 500, types.UnitGram, 0.001)

	for _, ingredient := range []*types.Ingredient{expired, soon, later, forever} {
		require.NoError(t, repo.AddIngredient(ingredient))
	}

	expiring := repo.ListExpiringIngredients(72 * time.Hour)
	require.Len(t, expiring, 2)
	ids := []string{expiring[0].ID, expiring[1].ID}
	assert.Contains(t, ids, expired.ID, "already expired counts as expiring")
	assert.Contains(t, ids, soon.ID)
}

func TestTotalInventoryValue(t *testing.T) {
	repo := New()
	assert.Zero(t, repo.TotalInventoryValue())

	require.NoError(t, repo.AddIngredient(newIngredient(t, "Flour", 1000, types.UnitGram, 0.002)))
	require.NoError(t, repo.AddIngredient(newIngredient(t, "Eggs", 12, types.UnitPiece, 0.3)))

	assert.InDelta(t, 5.6, repo.TotalInventoryValue(), 1e-9)
}
