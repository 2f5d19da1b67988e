// Analytical queries over the repository's collections. Each query runs
// under the read lock so it observes a consistent view of all three
// collections.
package repository

import (
	"strings"
	"time"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// ListMealsByDate returns all meals whose planned time falls on the same
// calendar day as date, evaluated in date's location. Results are sorted
// by ID.
func (r *Repository) ListMealsByDate(date time.Time) []*types.Meal {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wantYear, wantMonth, wantDay := date.Date()
	var out []*types.Meal
	for _, meal := range sortedMealsLocked(r.meals) {
		year, month, day := meal.PlannedTime.In(date.Location()).Date()
		if year == wantYear && month == wantMonth && day == wantDay {
			out = append(out, meal)
		}
	}
	return out
}

// SearchRecipes returns all recipes whose name or description contains the
// query, case-insensitively. An empty query matches every recipe. Results
// are sorted by ID.
func (r *Repository) SearchRecipes(query string) []*types.Recipe {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(query)
	var out []*types.Recipe
	for _, recipe := range sortedRecipesLocked(r.recipes) {
		if strings.Contains(strings.ToLower(recipe.Name), needle) ||
			strings.Contains(strings.ToLower(recipe.Description), needle) {
			out = append(out, recipe)
		}
	}
	return out
}

// ListLowStockIngredients returns all ingredients at or below their
// per-unit low stock threshold, sorted by ID.
func (r *Repository) ListLowStockIngredients() []*types.Ingredient {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*types.Ingredient
	for _, ingredient := range sortedIngredientsLocked(r.ingredients) {
		if ingredient.IsLowStock() {
			out = append(out, ingredient)
		}
	}
	return out
}

// ListExpiringIngredients returns all ingredients that expire within the
// given duration from now, including those already expired, sorted by ID.
func (r *Repository) ListExpiringIngredients(within time.Duration) []*types.Ingredient {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*types.Ingredient
	for _, ingredient := range sortedIngredientsLocked(r.ingredients) {
		if ingredient.ExpiresWithin(within) {
			out = append(out, ingredient)
		}
	}
	return out
}

// TotalInventoryValue returns the summed cost of all stored ingredients,
// each in its own unit.
func (r *Repository) TotalInventoryValue() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0.0
	for _, ingredient := range r.ingredients {
		total += ingredient.Cost()
	}
	return total
}
