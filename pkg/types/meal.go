package types

import (
	"fmt"
	"time"
)

// Meal types.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// validMealTypes is the set of recognized meal type values.
var validMealTypes = map[string]bool{
	MealBreakfast: true,
	MealLunch:     true,
	MealDinner:    true,
	MealSnack:     true,
}

// Meal statuses. A meal starts as planned; transitions are unconstrained,
// any status may be set from any other.
const (
	StatusPlanned   = "planned"
	StatusShopping  = "shopping"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusConsumed  = "consumed"
)

// validMealStatuses is the set of recognized meal status values.
var validMealStatuses = map[string]bool{
	StatusPlanned:   true,
	StatusShopping:  true,
	StatusPreparing: true,
	StatusReady:     true,
	StatusConsumed:  true,
}

// Meal is a planned consumption event, optionally seeded from a recipe.
//
// The ingredient list holds independent copies owned by the meal; the
// Recipe reference is shared, the same Recipe instance may be referenced
// by several meals. EstimatedCost is derived and recomputed after every
// ingredient or serving mutation.
type Meal struct {
	// ID is a UUID v7, generated on creation.
	ID string `json:"id"`

	// Name is a human-readable name (required, non-empty).
	Name string `json:"name"`

	// Type is one of the meal type constants.
	Type string `json:"type"`

	// Status is one of the meal status constants.
	Status string `json:"status"`

	// PlannedTime is when the meal is planned to be consumed.
	PlannedTime time.Time `json:"planned_time"`

	// Servings is the number of servings. Always positive.
	Servings int `json:"servings"`

	// Ingredients lists the meal's own ingredient copies.
	Ingredients []*Ingredient `json:"ingredients"`

	// EstimatedCost is derived: the sum of current ingredient costs.
	EstimatedCost float64 `json:"estimated_cost"`

	// RecipeID is the identifier of the referenced recipe, empty when the
	// meal has none. Persisted instead of the recipe itself.
	RecipeID string `json:"recipe_id,omitempty"`

	// Recipe is the shared recipe reference. Not serialized; rebound from
	// RecipeID on load.
	Recipe *Recipe `json:"-"`
}

// NewMeal creates a meal with a generated ID, status planned, one serving,
// and the current time as planned time.
// Returns ErrInvalidArgument if name is empty or the type is not
// recognized.
func NewMeal(name, mealType string) (*Meal, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidArgument)
	}
	if !validMealTypes[mealType] {
		return nil, fmt.Errorf("%w: unknown meal type %q", ErrInvalidArgument, mealType)
	}
	return &Meal{
		ID:          NewID(),
		Name:        name,
		Type:        mealType,
		Status:      StatusPlanned,
		PlannedTime: time.Now(),
		Servings:    1,
	}, nil
}

// SetName renames the meal.
// Returns ErrInvalidArgument if name is empty.
func (m *Meal) SetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidArgument)
	}
	m.Name = name
	return nil
}

// SetType sets the meal type.
// Returns ErrInvalidArgument if the value is not a recognized type.
func (m *Meal) SetType(mealType string) error {
	if !validMealTypes[mealType] {
		return fmt.Errorf("%w: unknown meal type %q", ErrInvalidArgument, mealType)
	}
	m.Type = mealType
	return nil
}

// SetStatus sets the meal status. Any status is reachable from any other;
// no workflow ordering is enforced.
// Returns ErrInvalidArgument if the value is not a recognized status.
func (m *Meal) SetStatus(status string) error {
	if !validMealStatuses[status] {
		return fmt.Errorf("%w: unknown meal status %q", ErrInvalidArgument, status)
	}
	m.Status = status
	return nil
}

// SetRecipe binds the meal to a recipe: the ingredient list is replaced
// with fresh copies of the recipe's ingredients, scaled from the recipe's
// serving count to the meal's, and the cost is recomputed. The recipe
// reference itself is shared, not copied. A nil recipe clears the
// reference and leaves the ingredient list untouched.
func (m *Meal) SetRecipe(recipe *Recipe) error {
	m.Recipe = recipe
	if recipe == nil {
		m.RecipeID = ""
		return nil
	}
	m.RecipeID = recipe.ID

	m.Ingredients = make([]*Ingredient, 0, len(recipe.Ingredients))
	for _, ingredient := range recipe.Ingredients {
		m.Ingredients = append(m.Ingredients, ingredient.Clone())
	}
	if recipe.Servings > 0 && recipe.Servings != m.Servings {
		factor := float64(m.Servings) / float64(recipe.Servings)
		for _, ingredient := range m.Ingredients {
			if err := ingredient.Scale(factor); err != nil {
				return err
			}
		}
	}
	m.recalculateCost()
	return nil
}

// SetServings sets the serving count, scaling every owned ingredient copy
// by the ratio of new to old servings and recomputing the cost. No-op when
// the count is unchanged.
// Returns ErrInvalidArgument if servings is not positive.
func (m *Meal) SetServings(servings int) error {
	return m.ScaleServings(servings)
}

// ScaleServings scales the meal to a new serving count. See SetServings.
func (m *Meal) ScaleServings(newServings int) error {
	if newServings <= 0 {
		return fmt.Errorf("%w: servings must be positive", ErrInvalidArgument)
	}
	if newServings == m.Servings {
		return nil
	}
	factor := float64(newServings) / float64(m.Servings)
	for _, ingredient := range m.Ingredients {
		if err := ingredient.Scale(factor); err != nil {
			return err
		}
	}
	m.Servings = newServings
	m.recalculateCost()
	return nil
}

// AddIngredient appends an ingredient copy and recomputes the cost.
// Returns ErrInvalidArgument for a nil ingredient and ErrDuplicateID if an
// ingredient with the same ID is already present.
func (m *Meal) AddIngredient(ingredient *Ingredient) error {
	if ingredient == nil {
		return fmt.Errorf("%w: ingredient must not be nil", ErrInvalidArgument)
	}
	for _, existing := range m.Ingredients {
		if existing.ID == ingredient.ID {
			return fmt.Errorf("%w: ingredient %s", ErrDuplicateID, ingredient.ID)
		}
	}
	m.Ingredients = append(m.Ingredients, ingredient)
	m.recalculateCost()
	return nil
}

// RemoveIngredient removes the ingredient with the given ID and recomputes
// the cost.
// Returns ErrNotFound if no ingredient has that ID.
func (m *Meal) RemoveIngredient(id string) error {
	for idx, ingredient := range m.Ingredients {
		if ingredient.ID == id {
			m.Ingredients = append(m.Ingredients[:idx], m.Ingredients[idx+1:]...)
			m.recalculateCost()
			return nil
		}
	}
	return fmt.Errorf("%w: ingredient %s", ErrNotFound, id)
}

// IsComplete reports whether the meal has ingredients and has moved past
// the planned status.
func (m *Meal) IsComplete() bool {
	return len(m.Ingredients) > 0 && m.Status != StatusPlanned
}

// NutritionalValue returns the summed "calories" nutrient across the
// meal's ingredients. Unlike Recipe's full nutrition map, this is a
// calories-only aggregate.
func (m *Meal) NutritionalValue() float64 {
	total := 0.0
	for _, ingredient := range m.Ingredients {
		total += ingredient.Nutrition["calories"]
	}
	return total
}

// UpdateCost recomputes the estimated cost from the current ingredients.
// Ingredient and serving mutations call this automatically; it is exposed
// for callers that mutate ingredient quantities or prices in place.
func (m *Meal) UpdateCost() {
	m.recalculateCost()
}

// Clone returns an independent deep copy of the meal, keeping the same ID.
// The recipe reference stays shared.
func (m *Meal) Clone() *Meal {
	cp := *m
	cp.Ingredients = make([]*Ingredient, len(m.Ingredients))
	for idx, ingredient := range m.Ingredients {
		cp.Ingredients[idx] = ingredient.Clone()
	}
	return &cp
}

// Validate checks the meal's structural invariant: non-empty ID and name,
// recognized type and status, positive servings, and valid ingredients.
// Returns ErrValidation naming the offending field.
func (m *Meal) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("%w: meal id must not be empty", ErrValidation)
	}
	if m.Name == "" {
		return fmt.Errorf("%w: meal name must not be empty", ErrValidation)
	}
	if !validMealTypes[m.Type] {
		return fmt.Errorf("%w: unknown meal type %q", ErrValidation, m.Type)
	}
	if !validMealStatuses[m.Status] {
		return fmt.Errorf("%w: unknown meal status %q", ErrValidation, m.Status)
	}
	if m.Servings <= 0 {
		return fmt.Errorf("%w: meal servings must be positive", ErrValidation)
	}
	for _, ingredient := range m.Ingredients {
		if err := ingredient.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// recalculateCost rebuilds the estimated cost by summing current
// ingredient costs.
func (m *Meal) recalculateCost() {
	total := 0.0
	for _, ingredient := range m.Ingredients {
		total += ingredient.Cost()
	}
	m.EstimatedCost = total
}
