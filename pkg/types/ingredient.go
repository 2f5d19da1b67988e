package types

import (
	"fmt"
	"time"
)

// lowStockThresholds maps a unit to the quantity at or below which an
// ingredient counts as low stock. Units absent from this table are never
// considered low.
var lowStockThresholds = map[Unit]float64{
	UnitGram:       100.0,
	UnitKilogram:   0.1,
	UnitMilliliter: 100.0,
	UnitLiter:      0.1,
	UnitPiece:      2.0,
}

// Ingredient is a named substance with a quantity, a per-unit price, an
// optional expiry date, and nutritional information.
//
// Nutrition amounts are totals for the current quantity, not per-unit
// values; Scale deliberately leaves them untouched.
type Ingredient struct {
	// ID is a UUID v7, generated on creation. Immutable once assigned.
	ID string `json:"id"`

	// Name is a human-readable name (required, non-empty).
	Name string `json:"name"`

	// Quantity is the amount on hand, expressed in Unit. Never negative.
	Quantity float64 `json:"quantity"`

	// Unit is the measurement unit of Quantity.
	Unit Unit `json:"unit"`

	// UnitPrice is the cost of one Unit of the ingredient. Never negative.
	UnitPrice float64 `json:"unit_price"`

	// ExpiryDate is the instant the ingredient expires; nil means never.
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`

	// Nutrition maps nutrient names (e.g. "calories") to non-negative
	// amounts for the current quantity.
	Nutrition map[string]float64 `json:"nutrition"`
}

// NewIngredient creates an ingredient with a generated ID.
// Returns ErrInvalidArgument if name is empty, quantity is negative, or the
// unit is not recognized.
func NewIngredient(name string, quantity float64, unit Unit) (*Ingredient, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidArgument)
	}
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrInvalidArgument)
	}
	if !unit.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, string(unit))
	}
	return &Ingredient{
		ID:        NewID(),
		Name:      name,
		Quantity:  quantity,
		Unit:      unit,
		Nutrition: make(map[string]float64),
	}, nil
}

// SetName renames the ingredient.
// Returns ErrInvalidArgument if name is empty.
func (i *Ingredient) SetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidArgument)
	}
	i.Name = name
	return nil
}

// SetQuantity replaces the quantity.
// Returns ErrInvalidArgument if quantity is negative.
func (i *Ingredient) SetQuantity(quantity float64) error {
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidArgument)
	}
	i.Quantity = quantity
	return nil
}

// SetUnitPrice replaces the per-unit price.
// Returns ErrInvalidArgument if price is negative.
func (i *Ingredient) SetUnitPrice(price float64) error {
	if price < 0 {
		return fmt.Errorf("%w: unit price must not be negative", ErrInvalidArgument)
	}
	i.UnitPrice = price
	return nil
}

// Scale multiplies the quantity by factor. Unit, price, and nutrition are
// unchanged.
// Returns ErrInvalidArgument if factor is not positive.
func (i *Ingredient) Scale(factor float64) error {
	if factor <= 0 {
		return fmt.Errorf("%w: scale factor must be positive", ErrInvalidArgument)
	}
	i.Quantity *= factor
	return nil
}

// SetNutrition sets the amount of a nutrient for the current quantity.
// Returns ErrInvalidArgument if value is negative.
func (i *Ingredient) SetNutrition(nutrient string, value float64) error {
	if value < 0 {
		return fmt.Errorf("%w: nutrition value must not be negative", ErrInvalidArgument)
	}
	if i.Nutrition == nil {
		i.Nutrition = make(map[string]float64)
	}
	i.Nutrition[nutrient] = value
	return nil
}

// RemoveNutrition deletes a nutrient entry. Removing an absent nutrient is
// a no-op.
func (i *Ingredient) RemoveNutrition(nutrient string) {
	delete(i.Nutrition, nutrient)
}

// Cost returns quantity × unit price, in the ingredient's own unit.
func (i *Ingredient) Cost() float64 {
	return i.Quantity * i.UnitPrice
}

// IsExpired reports whether the current time is strictly after the expiry
// date. An ingredient without an expiry date never expires.
func (i *Ingredient) IsExpired() bool {
	if i.ExpiryDate == nil {
		return false
	}
	return time.Now().After(*i.ExpiryDate)
}

// ExpiresWithin reports whether the ingredient expires within the given
// duration from now. Already expired ingredients count as expiring.
func (i *Ingredient) ExpiresWithin(d time.Duration) bool {
	if i.ExpiryDate == nil {
		return false
	}
	return !i.ExpiryDate.After(time.Now().Add(d))
}

// IsLowStock reports whether the quantity is at or below the per-unit low
// stock threshold. Units without a threshold are never low.
func (i *Ingredient) IsLowStock() bool {
	threshold, ok := lowStockThresholds[i.Unit]
	if !ok {
		return false
	}
	return i.Quantity <= threshold
}

// Clone returns an independent deep copy of the ingredient, keeping the
// same ID. Callers needing isolation from the shared repository instance
// should operate on a clone.
func (i *Ingredient) Clone() *Ingredient {
	cp := *i
	if i.ExpiryDate != nil {
		t := *i.ExpiryDate
		cp.ExpiryDate = &t
	}
	cp.Nutrition = make(map[string]float64, len(i.Nutrition))
	for k, v := range i.Nutrition {
		cp.Nutrition[k] = v
	}
	return &cp
}

// Validate checks the ingredient's structural invariant: non-empty ID and
// name, recognized unit, non-negative quantity, price, and nutrition values.
// Returns ErrValidation naming the offending field.
func (i *Ingredient) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("%w: ingredient id must not be empty", ErrValidation)
	}
	if i.Name == "" {
		return fmt.Errorf("%w: ingredient name must not be empty", ErrValidation)
	}
	if !i.Unit.Valid() {
		return fmt.Errorf("%w: unknown unit %q", ErrValidation, string(i.Unit))
	}
	if i.Quantity < 0 {
		return fmt.Errorf("%w: ingredient quantity must not be negative", ErrValidation)
	}
	if i.UnitPrice < 0 {
		return fmt.Errorf("%w: ingredient unit price must not be negative", ErrValidation)
	}
	for nutrient, value := range i.Nutrition {
		if value < 0 {
			return fmt.Errorf("%w: nutrition value for %q must not be negative", ErrValidation, nutrient)
		}
	}
	return nil
}
