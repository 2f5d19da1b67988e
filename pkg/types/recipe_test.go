package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustIngredient(t *testing.T, name string, quantity float64, unit Unit, price float64) *Ingredient {
	t.Helper()
	ingredient, err := NewIngredient(name, quantity, unit)
	require.NoError(t, err)
	require.NoError(t, ingredient.SetUnitPrice(price))
	return ingredient
}

func stepOrders(r *Recipe) []int {
	orders := make([]int, len(r.Steps))
	for idx, step := range r.Steps {
		orders[idx] = step.Order
	}
	return orders
}

func TestNewRecipe(t *testing.T) {
	recipe, err := NewRecipe("Bread", "A simple loaf")
	require.NoError(t, err)
	assert.NotEmpty(t, recipe.ID)
	assert.Equal(t, "Bread", recipe.Name)
	assert.Equal(t, DifficultyEasy, recipe.Difficulty)
	assert.Equal(t, 1, recipe.Servings)
	assert.Empty(t, recipe.Ingredients)
	assert.Empty(t, recipe.Steps)

	_, err = NewRecipe("", "no name")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRecipeSetters(t *testing.T) {
	recipe, err := NewRecipe("Bread", "")
	require.NoError(t, err)

	assert.ErrorIs(t, recipe.SetName(""), ErrInvalidArgument)
	assert.NoError(t, recipe.SetName("Sourdough"))
	assert.Equal(t, "Sourdough", recipe.Name)

	assert.ErrorIs(t, recipe.SetDifficulty("impossible"), ErrInvalidArgument)
	assert.NoError(t, recipe.SetDifficulty(DifficultyHard))
	assert.Equal(t, DifficultyHard, recipe.Difficulty)

	assert.ErrorIs(t, recipe.SetServings(0), ErrInvalidArgument)
	assert.NoError(t, recipe.SetServings(4))
	assert.Equal(t, 4, recipe.Servings)
}

func TestRecipeAddIngredient(t *testing.T) {
	recipe, err := NewRecipe("Bread", "")
	require.NoError(t, err)

	assert.ErrorIs(t, recipe.AddIngredient(nil), ErrInvalidArgument)

	flour := mustIngredient(t, "Flour", 500, UnitGram, 0.002)
	require.NoError(t, flour.SetNutrition("calories", 1820))
	require.NoError(t, recipe.AddIngredient(flour))

	assert.ErrorIs(t, recipe.AddIngredient(flour), ErrDuplicateID)
	assert.Len(t, recipe.Ingredients, 1)
	assert.Equal(t, 1820.0, recipe.Nutrition["calories"])

	// Same name, different ID is allowed.
	moreFlour := mustIngredient(t, "Flour", 100, UnitGram, 0.002)
	require.NoError(t, moreFlour.SetNutrition("calories", 364))
	require.NoError(t, recipe.AddIngredient(moreFlour))
	assert.Len(t, recipe.Ingredients, 2)
	assert.Equal(t, 2184.0, recipe.Nutrition["calories"])
}

func TestRecipeRemoveIngredient(t *testing.T) {
	recipe, err := NewRecipe("Bread", "")
	require.NoError(t, err)

	flour := mustIngredient(t, "Flour", 500, UnitGram, 0.002)
	require.NoError(t, flour.SetNutrition("calories", 1820))
	water := mustIngredient(t, "Water", 300, UnitMilliliter, 0)
	require.NoError(t, recipe.AddIngredient(flour))
	require.NoError(t, recipe.AddIngredient(water))

	assert.ErrorIs(t, recipe.RemoveIngredient("no-such-id"), ErrNotFound)

	require.NoError(t, recipe.RemoveIngredient(flour.ID))
	assert.Len(t, recipe.Ingredients, 1)
	assert.Equal(t, water.ID, recipe.Ingredients[0].ID)
	assert.Zero(t, recipe.Nutrition["calories"], "nutrition recomputed after removal")
}

func TestRecipeAddStep(t *testing.T) {
	recipe, err := NewRecipe("Bread", "")
	require.NoError(t, err)

	assert.ErrorIs(t, recipe.AddStep(Step{Order: 0, Description: "bad"}), ErrInvalidArgument)

	require.NoError(t, recipe.AddStep(Step{Order: 1, Description: "Mix", DurationMinutes: 10}))
	require.NoError(t, recipe.AddStep(Step{Order: 2, Description: "Bake", DurationMinutes: 40}))

	// Inserting at an occupied order shifts the colliding steps up.
	require.NoError(t, recipe.AddStep(Step{Order: 2, Description: "Proof", DurationMinutes: 60}))

	require.Len(t, recipe.Steps, 3)
	assert.Equal(t, []int{1, 2, 3}, stepOrders(recipe))
	assert.Equal(t, "Mix", recipe.Steps[0].Description)
	assert.Equal(t, "Proof", recipe.Steps[1].Description)
	assert.Equal(t, "Bake", recipe.Steps[2].Description)
}

func TestRecipeRemoveStep(t *testing.T) {
	recipe, err := NewRecipe("Bread", "")
	require.NoError(t, err)
	require.NoError(t, recipe.AddStep(Step{Order: 1, Description: "Mix"}))
	require.NoError(t, recipe.AddStep(Step{Order: 2, Description: "Proof"}))
	require.NoError(t, recipe.AddStep(Step{Order: 3, Description: "Bake"}))

	assert.ErrorIs(t, recipe.RemoveStep(9), ErrNotFound)

	require.NoError(t, recipe.RemoveStep(2))
	require.Len(t, recipe.Steps, 2)
	assert.Equal(t, []int{1, 2}, stepOrders(recipe), "orders renumbered to stay contiguous")
	assert.Equal(t, "Mix", recipe.Steps[0].Description)
	assert.Equal(t, "Bake", recipe.Steps[1].Description)
}

func TestRecipeReorderStep(t *testing.T) {
	newRecipe := func(t *testing.T) *Recipe {
		recipe, err := NewRecipe("Bread", "")
		require.NoError(t, err)
		for order, description := range map[int]string{1: "Mix", 2: "Proof", 3: "Shape", 4: "Bake"} {
			require.NoError(t, recipe.AddStep(Step{Order: order, Description: description}))
		}
		return recipe
	}

	t.Run("move forward", func(t *testing.T) {
		recipe := newRecipe(t)
		require.NoError(t, recipe.ReorderStep(1, 3))

		assert.Equal(t, []int{1, 2, 3, 4}, stepOrders(recipe))
		descriptions := []string{recipe.Steps[0].Description, recipe.Steps[1].Description, recipe.Steps[2].Description, recipe.Steps[3].Description}
		assert.Equal(t, []string{"Proof", "Shape", "Mix", "Bake"}, descriptions)
	})

	t.Run("move backward", func(t *testing.T) {
		recipe := newRecipe(t)
		require.NoError(t, recipe.ReorderStep(4, 2))

		assert.Equal(t, []int{1, 2, 3, 4}, stepOrders(recipe))
		descriptions := []string{recipe.Steps[0].Description, recipe.Steps[1].Description, recipe.Steps[2].Description, recipe.Steps[3].Description}
		assert.Equal(t, []string{"Mix", "Bake", "Proof", "Shape"}, descriptions)
	})

	t.Run("invalid orders", func(t *testing.T) {
		recipe := newRecipe(t)
		assert.ErrorIs(t, recipe.ReorderStep(0, 2), ErrInvalidArgument)
		assert.ErrorIs(t, recipe.ReorderStep(1, 0), ErrInvalidArgument)
		assert.ErrorIs(t, recipe.ReorderStep(9, 1), ErrInvalidArgument)
	})
}

func TestRecipeScaleServings(t *testing.T) {
	recipe, err := NewRecipe("Bread", "")
	require.NoError(t, err)
	require.NoError(t, recipe.SetServings(2))
	require.NoError(t, recipe.AddIngredient(mustIngredient(t, "Flour", 500, UnitGram, 0.002)))
	require.NoError(t, recipe.AddIngredient(mustIngredient(t, "Water", 300, UnitMilliliter, 0)))

	assert.ErrorIs(t, recipe.ScaleServings(0), ErrInvalidArgument)

	require.NoError(t, recipe.ScaleServings(6))
	assert.Equal(t, 6, recipe.Servings)
	assert.Equal(t, 1500.0, recipe.Ingredients[0].Quantity)
	assert.Equal(t, 900.0, recipe.Ingredients[1].Quantity)

	// Scaling to the current count is a no-op.
	require.NoError(t, recipe.ScaleServings(6))
	assert.Equal(t, 1500.0, recipe.Ingredients[0].Quantity)

	require.NoError(t, recipe.ScaleServings(3))
	assert.Equal(t, 750.0, recipe.Ingredients[0].Quantity)
}

func TestRecipeTotalCost(t *testing.T) {
	recipe, err := NewRecipe("Bread", "")
	require.NoError(t, err)
	require.NoError(t, recipe.AddIngredient(mustIngredient(t, "Flour", 1000, UnitGram, 0.002)))

	assert.InDelta(t, 2.0, recipe.TotalCost(), 1e-9)

	require.NoError(t, recipe.ScaleServings(3))
	assert.InDelta(t, 6.0, recipe.TotalCost(), 1e-9)
}

func TestRecipeTotalTime(t *testing.T) {
	recipe, err := NewRecipe("Bread", "")
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), recipe.TotalTime())

	require.NoError(t, recipe.AddStep(Step{Order: 1, Description: "Mix", DurationMinutes: 10}))
	require.NoError(t, recipe.AddStep(Step{Order: 2, Description: "Bake", DurationMinutes: 40}))
	assert.Equal(t, 50*time.Minute, recipe.TotalTime())
}

func TestRecipeIsValid(t *testing.T) {
	recipe, err := NewRecipe("Bread", "")
	require.NoError(t, err)
	assert.False(t, recipe.IsValid(), "no ingredients or steps yet")

	require.NoError(t, recipe.AddIngredient(mustIngredient(t, "Flour", 500, UnitGram, 0.002)))
	assert.False(t, recipe.IsValid(), "no steps yet")

	require.NoError(t, recipe.AddStep(Step{Order: 1, Description: "Mix"}))
	assert.True(t, recipe.IsValid())
}

func TestRecipeUpdateNutrition(t *testing.T) {
	recipe, err := NewRecipe("Bread", "")
	require.NoError(t, err)
	flour := mustIngredient(t, "Flour", 500, UnitGram, 0.002)
	require.NoError(t, flour.SetNutrition("calories", 1820))
	require.NoError(t, recipe.AddIngredient(flour))

	// Mutate the ingredient's nutrition in place; the recipe's derived map
	// only refreshes on request.
	require.NoError(t, flour.SetNutrition("calories", 2000))
	assert.Equal(t, 1820.0, recipe.Nutrition["calories"])

	recipe.UpdateNutrition()
	assert.Equal(t, 2000.0, recipe.Nutrition["calories"])
}

func TestRecipeClone(t *testing.T) {
	recipe, err := NewRecipe("Bread", "A loaf")
	require.NoError(t, err)
	require.NoError(t, recipe.AddIngredient(mustIngredient(t, "Flour", 500, UnitGram, 0.002)))
	require.NoError(t, recipe.AddStep(Step{Order: 1, Description: "Mix", DurationMinutes: 10}))

	clone := recipe.Clone()
	assert.Equal(t, recipe.ID, clone.ID, "clone keeps the ID")

	require.NoError(t, clone.Ingredients[0].Scale(2))
	clone.Steps[0].Description = "Knead"
	require.NoError(t, clone.ScaleServings(4))

	assert.Equal(t, 500.0, recipe.Ingredients[0].Quantity)
	assert.Equal(t, "Mix", recipe.Steps[0].Description)
	assert.Equal(t, 1, recipe.Servings)
}

func TestRecipeValidate(t *testing.T) {
	valid := func(t *testing.T) *Recipe {
		recipe, err := NewRecipe("Bread", "")
		require.NoError(t, err)
		require.NoError(t, recipe.AddIngredient(mustIngredient(t, "Flour", 500, UnitGram, 0.002)))
		require.NoError(t, recipe.AddStep(Step{Order: 1, Description: "Mix"}))
		return recipe
	}

	assert.NoError(t, valid(t).Validate())

	tests := []struct {
		name   string
		mutate func(*Recipe)
	}{
		{name: "empty id", mutate: func(r *Recipe) { r.ID = "" }},
		{name: "empty name", mutate: func(r *Recipe) { r.Name = "" }},
		{name: "unknown difficulty", mutate: func(r *Recipe) { r.Difficulty = "trivial" }},
		{name: "zero servings", mutate: func(r *Recipe) { r.Servings = 0 }},
		{name: "non-positive step order", mutate: func(r *Recipe) { r.Steps[0].Order = 0 }},
		{name: "invalid ingredient", mutate: func(r *Recipe) { r.Ingredients[0].Quantity = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipe := valid(t)
			tt.mutate(recipe)

			assert.ErrorIs(t, recipe.Validate(), ErrValidation)
		})
	}
}
