// Package types defines the food-planning entities (Ingredient, Recipe,
// Meal), the measurement unit tables and conversions, the Store interface,
// and standard error types for the Pantry storage system.
package types
