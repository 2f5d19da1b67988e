package types

import (
	"fmt"
	"sort"
	"time"
)

// Recipe difficulty levels, ordered easy < medium < hard.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// validDifficulties is the set of recognized difficulty values.
var validDifficulties = map[string]bool{
	DifficultyEasy:   true,
	DifficultyMedium: true,
	DifficultyHard:   true,
}

// Step is a single instruction in a recipe's preparation.
type Step struct {
	// Order is the 1-based position of the step, unique within the recipe.
	Order int `json:"order"`

	// Description says what to do in this step.
	Description string `json:"description"`

	// DurationMinutes is the estimated time to complete the step.
	DurationMinutes int `json:"duration_minutes"`
}

// Recipe is a named cooking procedure: ordered steps, ingredient
// quantities, and nutrition derived by summing the ingredients' nutrition
// maps.
//
// The ingredient list holds copies owned by the recipe, never instances
// shared with the repository's ingredient collection. After any structural
// mutation the step orders form a contiguous 1..N sequence and the
// nutrition map is recomputed from scratch.
type Recipe struct {
	// ID is a UUID v7, generated on creation. Immutable once assigned.
	ID string `json:"id"`

	// Name is a human-readable name (required, non-empty).
	Name string `json:"name"`

	// Description is free-form text describing the recipe.
	Description string `json:"description"`

	// Difficulty is one of the Difficulty constants.
	Difficulty string `json:"difficulty"`

	// Servings is the number of servings the recipe makes. Always positive.
	Servings int `json:"servings"`

	// Ingredients lists the recipe's own ingredient copies. Duplicate
	// names are allowed; duplicate IDs are not.
	Ingredients []*Ingredient `json:"ingredients"`

	// Steps is the preparation sequence, sorted by Order.
	Steps []Step `json:"steps"`

	// Nutrition is derived: the per-nutrient sum over all ingredients.
	Nutrition map[string]float64 `json:"nutrition"`
}

// NewRecipe creates a recipe with a generated ID, difficulty easy, and one
// serving.
// Returns ErrInvalidArgument if name is empty.
func NewRecipe(name, description string) (*Recipe, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidArgument)
	}
	return &Recipe{
		ID:          NewID(),
		Name:        name,
		Description: description,
		Difficulty:  DifficultyEasy,
		Servings:    1,
		Nutrition:   make(map[string]float64),
	}, nil
}

// SetName renames the recipe.
// Returns ErrInvalidArgument if name is empty.
func (r *Recipe) SetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidArgument)
	}
	r.Name = name
	return nil
}

// SetDifficulty sets the difficulty level.
// Returns ErrInvalidArgument if the value is not a recognized difficulty.
func (r *Recipe) SetDifficulty(difficulty string) error {
	if !validDifficulties[difficulty] {
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidArgument, difficulty)
	}
	r.Difficulty = difficulty
	return nil
}

// SetServings sets the serving count without scaling ingredient
// quantities; use ScaleServings to scale.
// Returns ErrInvalidArgument if servings is not positive.
func (r *Recipe) SetServings(servings int) error {
	if servings <= 0 {
		return fmt.Errorf("%w: servings must be positive", ErrInvalidArgument)
	}
	r.Servings = servings
	return nil
}

// AddIngredient appends an ingredient and recomputes the nutrition map.
// Returns ErrInvalidArgument for a nil ingredient and ErrDuplicateID if an
// ingredient with the same ID is already present.
func (r *Recipe) AddIngredient(ingredient *Ingredient) error {
	if ingredient == nil {
		return fmt.Errorf("%w: ingredient must not be nil", ErrInvalidArgument)
	}
	for _, existing := range r.Ingredients {
		if existing.ID == ingredient.ID {
			return fmt.Errorf("%w: ingredient %s", ErrDuplicateID, ingredient.ID)
		}
	}
	r.Ingredients = append(r.Ingredients, ingredient)
	r.recalculateNutrition()
	return nil
}

// RemoveIngredient removes the ingredient with the given ID and recomputes
// the nutrition map.
// Returns ErrNotFound if no ingredient has that ID.
func (r *Recipe) RemoveIngredient(id string) error {
	for idx, ingredient := range r.Ingredients {
		if ingredient.ID == id {
			r.Ingredients = append(r.Ingredients[:idx], r.Ingredients[idx+1:]...)
			r.recalculateNutrition()
			return nil
		}
	}
	return fmt.Errorf("%w: ingredient %s", ErrNotFound, id)
}

// AddStep inserts a step, keeping steps sorted by order. If the order
// collides with an existing step, every step at or above it is shifted up
// by one first; duplicate orders are never retained.
// Returns ErrInvalidArgument if the step order is not positive.
func (r *Recipe) AddStep(step Step) error {
	if step.Order <= 0 {
		return fmt.Errorf("%w: step order must be positive", ErrInvalidArgument)
	}
	for _, existing := range r.Steps {
		if existing.Order == step.Order {
			for idx := range r.Steps {
				if r.Steps[idx].Order >= step.Order {
					r.Steps[idx].Order++
				}
			}
			break
		}
	}
	r.Steps = append(r.Steps, step)
	r.sortSteps()
	return nil
}

// RemoveStep removes the step with the given order and renumbers the
// remaining steps to a contiguous 1..N sequence in their current relative
// order.
// Returns ErrNotFound if no step has that order.
func (r *Recipe) RemoveStep(order int) error {
	for idx, step := range r.Steps {
		if step.Order == order {
			r.Steps = append(r.Steps[:idx], r.Steps[idx+1:]...)
			r.renumberSteps()
			return nil
		}
	}
	return fmt.Errorf("%w: step with order %d", ErrNotFound, order)
}

// ReorderStep moves the step at oldOrder to newOrder, shifting the steps
// strictly between the two positions by one. The resulting order set is
// contiguous 1..N.
// Returns ErrInvalidArgument if either order is not positive or no step
// has oldOrder.
func (r *Recipe) ReorderStep(oldOrder, newOrder int) error {
	if oldOrder <= 0 || newOrder <= 0 {
		return fmt.Errorf("%w: step orders must be positive", ErrInvalidArgument)
	}
	idx := -1
	for i, step := range r.Steps {
		if step.Order == oldOrder {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("%w: step with order %d", ErrInvalidArgument, oldOrder)
	}

	moved := r.Steps[idx]
	r.Steps = append(r.Steps[:idx], r.Steps[idx+1:]...)
	moved.Order = newOrder

	for i := range r.Steps {
		switch {
		case oldOrder < newOrder:
			if r.Steps[i].Order > oldOrder && r.Steps[i].Order <= newOrder {
				r.Steps[i].Order--
			}
		default:
			if r.Steps[i].Order >= newOrder && r.Steps[i].Order < oldOrder {
				r.Steps[i].Order++
			}
		}
	}

	r.Steps = append(r.Steps, moved)
	r.sortSteps()
	r.renumberSteps()
	return nil
}

// ScaleServings scales every ingredient quantity by the ratio of
// newServings to the current serving count and updates the count. No-op
// when the counts are equal.
// Returns ErrInvalidArgument if newServings is not positive.
func (r *Recipe) ScaleServings(newServings int) error {
	if newServings <= 0 {
		return fmt.Errorf("%w: servings must be positive", ErrInvalidArgument)
	}
	if newServings == r.Servings {
		return nil
	}
	factor := float64(newServings) / float64(r.Servings)
	for _, ingredient := range r.Ingredients {
		if err := ingredient.Scale(factor); err != nil {
			return err
		}
	}
	r.Servings = newServings
	return nil
}

// TotalCost returns the sum of ingredient costs.
func (r *Recipe) TotalCost() float64 {
	total := 0.0
	for _, ingredient := range r.Ingredients {
		total += ingredient.Cost()
	}
	return total
}

// TotalTime returns the summed duration of all steps.
func (r *Recipe) TotalTime() time.Duration {
	minutes := 0
	for _, step := range r.Steps {
		minutes += step.DurationMinutes
	}
	return time.Duration(minutes) * time.Minute
}

// IsValid reports whether the recipe is complete: non-empty name, positive
// servings, at least one ingredient, and at least one step.
func (r *Recipe) IsValid() bool {
	return r.Name != "" && r.Servings > 0 && len(r.Ingredients) > 0 && len(r.Steps) > 0
}

// UpdateNutrition recomputes the nutrition map from the current
// ingredients. Structural mutations call this automatically; it is exposed
// for callers that mutate ingredient nutrition in place.
func (r *Recipe) UpdateNutrition() {
	r.recalculateNutrition()
}

// Clone returns an independent deep copy of the recipe, keeping the same
// ID. Ingredient copies are cloned as well.
func (r *Recipe) Clone() *Recipe {
	cp := *r
	cp.Ingredients = make([]*Ingredient, len(r.Ingredients))
	for idx, ingredient := range r.Ingredients {
		cp.Ingredients[idx] = ingredient.Clone()
	}
	cp.Steps = make([]Step, len(r.Steps))
	copy(cp.Steps, r.Steps)
	cp.Nutrition = make(map[string]float64, len(r.Nutrition))
	for k, v := range r.Nutrition {
		cp.Nutrition[k] = v
	}
	return &cp
}

// Validate checks the recipe's structural invariant: non-empty ID and
// name, recognized difficulty, positive servings, positive step orders,
// and valid ingredients.
// Returns ErrValidation naming the offending field.
func (r *Recipe) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: recipe id must not be empty", ErrValidation)
	}
	if r.Name == "" {
		return fmt.Errorf("%w: recipe name must not be empty", ErrValidation)
	}
	if !validDifficulties[r.Difficulty] {
		return fmt.Errorf("%w: unknown difficulty %q", ErrValidation, r.Difficulty)
	}
	if r.Servings <= 0 {
		return fmt.Errorf("%w: recipe servings must be positive", ErrValidation)
	}
	for _, step := range r.Steps {
		if step.Order <= 0 {
			return fmt.Errorf("%w: step order must be positive", ErrValidation)
		}
	}
	for _, ingredient := range r.Ingredients {
		if err := ingredient.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// recalculateNutrition rebuilds the nutrition map by summing, per
// nutrient, across all current ingredients.
func (r *Recipe) recalculateNutrition() {
	r.Nutrition = make(map[string]float64)
	for _, ingredient := range r.Ingredients {
		for nutrient, value := range ingredient.Nutrition {
			r.Nutrition[nutrient] += value
		}
	}
}

// sortSteps orders steps by their Order field.
func (r *Recipe) sortSteps() {
	sort.SliceStable(r.Steps, func(a, b int) bool {
		return r.Steps[a].Order < r.Steps[b].Order
	})
}

// renumberSteps rewrites step orders to a contiguous 1..N sequence,
// preserving the current relative order.
func (r *Recipe) renumberSteps() {
	for idx := range r.Steps {
		r.Steps[idx].Order = idx + 1
	}
}
