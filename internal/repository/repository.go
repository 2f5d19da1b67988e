// Package repository implements the shared, concurrency-safe owner of all
// food-planning entities. A single Repository holds the ingredient, recipe,
// and meal collections behind one lock so that cross-collection queries
// observe a consistent view.
package repository

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Repository owns the three entity collections, keyed by ID. All mutating
// operations and all reads are serialized behind a single RWMutex scoped
// to the whole repository; there is no per-entity locking.
//
// Get methods return the shared stored instance: mutating a returned
// entity is visible to subsequent lookups and races with concurrent
// repository calls. Callers needing a stable view must Clone the entity or
// route the mutation back through the Update methods.
type Repository struct {
	mu          sync.RWMutex
	ingredients map[string]*types.Ingredient
	recipes     map[string]*types.Recipe
	meals       map[string]*types.Meal
}

// New creates an empty repository.
func New() *Repository {
	return &Repository{
		ingredients: make(map[string]*types.Ingredient),
		recipes:     make(map[string]*types.Recipe),
		meals:       make(map[string]*types.Meal),
	}
}

// AddIngredient inserts an ingredient.
// Returns ErrValidation if the ingredient fails its structural invariant
// and ErrDuplicateID if the ID is already present. On failure the
// repository is unchanged.
func (r *Repository) AddIngredient(ingredient *types.Ingredient) error {
	if ingredient == nil {
		return fmt.Errorf("%w: ingredient must not be nil", types.ErrInvalidArgument)
	}
	if err := ingredient.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ingredients[ingredient.ID]; exists {
		return fmt.Errorf("%w: ingredient %s", types.ErrDuplicateID, ingredient.ID)
	}
	r.ingredients[ingredient.ID] = ingredient
	return nil
}

// GetIngredient returns the stored ingredient with the given ID. The
// returned instance is shared, not a copy.
// Returns ErrNotFound if absent.
func (r *Repository) GetIngredient(id string) (*types.Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ingredient, ok := r.ingredients[id]
	if !ok {
		return nil, fmt.Errorf("%w: ingredient %s", types.ErrNotFound, id)
	}
	return ingredient, nil
}

// UpdateIngredient replaces the stored ingredient with the same ID.
// Returns ErrValidation if the ingredient fails its structural invariant
// and ErrNotFound if the ID is not present.
func (r *Repository) UpdateIngredient(ingredient *types.Ingredient) error {
	if ingredient == nil {
		return fmt.Errorf("%w: ingredient must not be nil", types.ErrInvalidArgument)
	}
	if err := ingredient.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ingredients[ingredient.ID]; !exists {
		return fmt.Errorf("%w: ingredient %s", types.ErrNotFound, ingredient.ID)
	}
	r.ingredients[ingredient.ID] = ingredient
	return nil
}

// RemoveIngredient removes the ingredient with the given ID. Recipes and
// meals referencing a copy of it keep their copy; removal does not
// cascade.
// Returns ErrNotFound if absent.
func (r *Repository) RemoveIngredient(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ingredients[id]; !exists {
		return fmt.Errorf("%w: ingredient %s", types.ErrNotFound, id)
	}
	delete(r.ingredients, id)
	return nil
}

// ListIngredients returns a snapshot slice of all stored ingredients,
// sorted by ID for determinism. The entities themselves are shared
// instances.
func (r *Repository) ListIngredients() []*types.Ingredient {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedIngredientsLocked(r.ingredients)
}

// AddRecipe inserts a recipe.
// Returns ErrValidation if the recipe fails its structural invariant and
// ErrDuplicateID if the ID is already present.
func (r *Repository) AddRecipe(recipe *types.Recipe) error {
	if recipe == nil {
		return fmt.Errorf("%w: recipe must not be nil", types.ErrInvalidArgument)
	}
	if err := recipe.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.recipes[recipe.ID]; exists {
		return fmt.Errorf("%w: recipe %s", types.ErrDuplicateID, recipe.ID)
	}
	r.recipes[recipe.ID] = recipe
	return nil
}

// GetRecipe returns the stored recipe with the given ID. The returned
// instance is shared, not a copy.
// Returns ErrNotFound if absent.
func (r *Repository) GetRecipe(id string) (*types.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recipe, ok := r.recipes[id]
	if !ok {
		return nil, fmt.Errorf("%w: recipe %s", types.ErrNotFound, id)
	}
	return recipe, nil
}

// UpdateRecipe replaces the stored recipe with the same ID.
// Returns ErrValidation if the recipe fails its structural invariant and
// ErrNotFound if the ID is not present.
func (r *Repository) UpdateRecipe(recipe *types.Recipe) error {
	if recipe == nil {
		return fmt.Errorf("%w: recipe must not be nil", types.ErrInvalidArgument)
	}
	if err := recipe.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.recipes[recipe.ID]; !exists {
		return fmt.Errorf("%w: recipe %s", types.ErrNotFound, recipe.ID)
	}
	r.recipes[recipe.ID] = recipe
	return nil
}

// RemoveRecipe removes the recipe with the given ID. Meals referencing the
// recipe keep their reference.
// Returns ErrNotFound if absent.
func (r *Repository) RemoveRecipe(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.recipes[id]; !exists {
		return fmt.Errorf("%w: recipe %s", types.ErrNotFound, id)
	}
	delete(r.recipes, id)
	return nil
}

// ListRecipes returns a snapshot slice of all stored recipes, sorted by
// ID for determinism. The entities themselves are shared instances.
func (r *Repository) ListRecipes() []*types.Recipe {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedRecipesLocked(r.recipes)
}

// AddMeal inserts a meal.
// Returns ErrValidation if the meal fails its structural invariant and
// ErrDuplicateID if the ID is already present.
func (r *Repository) AddMeal(meal *types.Meal) error {
	if meal == nil {
		return fmt.Errorf("%w: meal must not be nil", types.ErrInvalidArgument)
	}
	if err := meal.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.meals[meal.ID]; exists {
		return fmt.Errorf("%w: meal %s", types.ErrDuplicateID, meal.ID)
	}
	r.meals[meal.ID] = meal
	return nil
}

// GetMeal returns the stored meal with the given ID. The returned instance
// is shared, not a copy.
// Returns ErrNotFound if absent.
func (r *Repository) GetMeal(id string) (*types.Meal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meal, ok := r.meals[id]
	if !ok {
		return nil, fmt.Errorf("%w: meal %s", types.ErrNotFound, id)
	}
	return meal, nil
}

// UpdateMeal replaces the stored meal with the same ID.
// Returns ErrValidation if the meal fails its structural invariant and
// ErrNotFound if the ID is not present.
func (r *Repository) UpdateMeal(meal *types.Meal) error {
	if meal == nil {
		return fmt.Errorf("%w: meal must not be nil", types.ErrInvalidArgument)
	}
	if err := meal.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.meals[meal.ID]; !exists {
		return fmt.Errorf("%w: meal %s", types.ErrNotFound, meal.ID)
	}
	r.meals[meal.ID] = meal
	return nil
}

// RemoveMeal removes the meal with the given ID.
// Returns ErrNotFound if absent.
func (r *Repository) RemoveMeal(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.meals[id]; !exists {
		return fmt.Errorf("%w: meal %s", types.ErrNotFound, id)
	}
	delete(r.meals, id)
	return nil
}

// ListMeals returns a snapshot slice of all stored meals, sorted by ID for
// determinism. The entities themselves are shared instances.
func (r *Repository) ListMeals() []*types.Meal {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedMealsLocked(r.meals)
}

// Clear removes every entity from all three collections.
func (r *Repository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ingredients = make(map[string]*types.Ingredient)
	r.recipes = make(map[string]*types.Recipe)
	r.meals = make(map[string]*types.Meal)
}

// Snapshot returns a deep copy of all three collections, taken under the
// read lock so persistence can write it without blocking the repository.
// Meals in the snapshot reference cloned recipes via RecipeID only.
func (r *Repository) Snapshot() types.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := types.Snapshot{
		Ingredients: make([]*types.Ingredient, 0, len(r.ingredients)),
		Recipes:     make([]*types.Recipe, 0, len(r.recipes)),
		Meals:       make([]*types.Meal, 0, len(r.meals)),
	}
	for _, ingredient := range sortedIngredientsLocked(r.ingredients) {
		snapshot.Ingredients = append(snapshot.Ingredients, ingredient.Clone())
	}
	for _, recipe := range sortedRecipesLocked(r.recipes) {
		snapshot.Recipes = append(snapshot.Recipes, recipe.Clone())
	}
	for _, meal := range sortedMealsLocked(r.meals) {
		snapshot.Meals = append(snapshot.Meals, meal.Clone())
	}
	return snapshot
}

// Replace atomically swaps all three collections with the snapshot's
// contents. Every entity is validated first and meal recipe references are
// rebound by RecipeID; on any failure the repository is left unchanged.
// Meals referencing a recipe absent from the snapshot keep a nil reference
// (their RecipeID survives).
func (r *Repository) Replace(snapshot types.Snapshot) error {
	ingredients := make(map[string]*types.Ingredient, len(snapshot.Ingredients))
	for _, ingredient := range snapshot.Ingredients {
		if err := ingredient.Validate(); err != nil {
			return err
		}
		if _, exists := ingredients[ingredient.ID]; exists {
			return fmt.Errorf("%w: ingredient %s", types.ErrDuplicateID, ingredient.ID)
		}
		ingredients[ingredient.ID] = ingredient
	}

	recipes := make(map[string]*types.Recipe, len(snapshot.Recipes))
	for _, recipe := range snapshot.Recipes {
		if err := recipe.Validate(); err != nil {
			return err
		}
		if _, exists := recipes[recipe.ID]; exists {
			return fmt.Errorf("%w: recipe %s", types.ErrDuplicateID, recipe.ID)
		}
		recipes[recipe.ID] = recipe
	}

	meals := make(map[string]*types.Meal, len(snapshot.Meals))
	for _, meal := range snapshot.Meals {
		if err := meal.Validate(); err != nil {
			return err
		}
		if _, exists := meals[meal.ID]; exists {
			return fmt.Errorf("%w: meal %s", types.ErrDuplicateID, meal.ID)
		}
		if meal.RecipeID != "" {
			meal.Recipe = recipes[meal.RecipeID]
		}
		meals[meal.ID] = meal
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.ingredients = ingredients
	r.recipes = recipes
	r.meals = meals
	return nil
}

// sortedIngredientsLocked returns the map values sorted by ID. The caller
// must hold the lock.
func sortedIngredientsLocked(m map[string]*types.Ingredient) []*types.Ingredient {
	out := make([]*types.Ingredient, 0, len(m))
	for _, ingredient := range m {
		out = append(out, ingredient)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out
}

func sortedRecipesLocked(m map[string]*types.Recipe) []*types.Recipe {
	out := make([]*types.Recipe, 0, len(m))
	for _, recipe := range m {
		out = append(out, recipe)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out
}

func sortedMealsLocked(m map[string]*types.Meal) []*types.Meal {
	out := make([]*types.Meal, 0, len(m))
	for _, meal := range m {
		out = append(out, meal)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out
}
