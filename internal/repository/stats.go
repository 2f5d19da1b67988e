// Aggregate statistics for the external reporting layer. The key names in
// the returned maps are a published contract; do not rename them.
package repository

import (
	"time"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Inventory statistics keys.
const (
	StatTotalValue      = "total_value"
	StatIngredientCount = "ingredient_count"
	StatRecipeCount     = "recipe_count"
	StatMealCount       = "meal_count"
	StatLowStockCount   = "low_stock_count"
	StatExpiredCount    = "expired_count"
	StatMassItems       = "mass_items"
	StatVolumeItems     = "volume_items"
	StatCountItems      = "count_items"
)

// Waste statistics keys.
const (
	StatExpiredValue      = "expired_value"
	StatExpiringSoonCount = "expiring_soon_count"
	StatWasteRatio        = "waste_ratio"
)

// expiringSoonWindow is the horizon used for the expiring_soon_count key.
const expiringSoonWindow = 72 * time.Hour

// InventoryStatistics returns aggregate inventory figures keyed by the
// Stat* inventory constants: total ingredient value, entity counts,
// low-stock and expired counts, and ingredient counts per unit
// compatibility class.
func (r *Repository) InventoryStatistics() map[string]float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := map[string]float64{
		StatTotalValue:      0,
		StatIngredientCount: float64(len(r.ingredients)),
		StatRecipeCount:     float64(len(r.recipes)),
		StatMealCount:       float64(len(r.meals)),
		StatLowStockCount:   0,
		StatExpiredCount:    0,
		StatMassItems:       0,
		StatVolumeItems:     0,
		StatCountItems:      0,
	}
	for _, ingredient := range r.ingredients {
		stats[StatTotalValue] += ingredient.Cost()
		if ingredient.IsLowStock() {
			stats[StatLowStockCount]++
		}
		if ingredient.IsExpired() {
			stats[StatExpiredCount]++
		}
		if class, err := ingredient.Unit.Class(); err == nil {
			switch class {
			case types.ClassMass:
				stats[StatMassItems]++
			case types.ClassVolume:
				stats[StatVolumeItems]++
			case types.ClassCount:
				stats[StatCountItems]++
			}
		}
	}
	return stats
}

// WasteStatistics returns expiry-focused figures keyed by the Stat* waste
// constants: count and value of expired ingredients, count of ingredients
// expiring within 72 hours, and the expired share of total inventory value
// (0 when the inventory is worthless).
func (r *Repository) WasteStatistics() map[string]float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := map[string]float64{
		StatExpiredCount:      0,
		StatExpiredValue:      0,
		StatExpiringSoonCount: 0,
		StatWasteRatio:        0,
	}
	totalValue := 0.0
	for _, ingredient := range r.ingredients {
		totalValue += ingredient.Cost()
		if ingredient.IsExpired() {
			stats[StatExpiredCount]++
			stats[StatExpiredValue] += ingredient.Cost()
		}
		if ingredient.ExpiresWithin(expiringSoonWindow) {
			stats[StatExpiringSoonCount]++
		}
	}
	if totalValue > 0 {
		stats[StatWasteRatio] = stats[StatExpiredValue] / totalValue
	}
	return stats
}
