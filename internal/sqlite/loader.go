// JSONL loading and SQLite mirror maintenance.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// loadAllJSONL reads the three JSONL files from dataDir and inserts their
// records into the SQLite mirror. Loading is transactional: all succeed or
// the database remains empty. Lines that fail to unmarshal into their
// entity type are skipped.
func loadAllJSONL(db *sql.DB, dataDir string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	records, err := readJSONL(filepath.Join(dataDir, ingredientsFile))
	if err != nil {
		return fmt.Errorf("reading %s: %w", ingredientsFile, err)
	}
	for _, rec := range records {
		var ingredient types.Ingredient
		if err := json.Unmarshal(rec, &ingredient); err != nil {
			continue
		}
		if err := insertIngredient(tx, &ingredient); err != nil {
			continue
		}
	}

	records, err = readJSONL(filepath.Join(dataDir, recipesFile))
	if err != nil {
		return fmt.Errorf("reading %s: %w", recipesFile, err)
	}
	for _, rec := range records {
		var recipe types.Recipe
		if err := json.Unmarshal(rec, &recipe); err != nil {
			continue
		}
		if err := insertRecipe(tx, &recipe); err != nil {
			continue
		}
	}

	records, err = readJSONL(filepath.Join(dataDir, mealsFile))
	if err != nil {
		return fmt.Errorf("reading %s: %w", mealsFile, err)
	}
	for _, rec := range records {
		var meal types.Meal
		if err := json.Unmarshal(rec, &meal); err != nil {
			continue
		}
		if err := insertMeal(tx, &meal); err != nil {
			continue
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

// rebuildMirror replaces the mirror's contents with the snapshot's in one
// transaction.
func rebuildMirror(db *sql.DB, snapshot types.Snapshot) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning mirror transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"meals", "recipes", "ingredients"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for _, ingredient := range snapshot.Ingredients {
		if err := insertIngredient(tx, ingredient); err != nil {
			return err
		}
	}
	for _, recipe := range snapshot.Recipes {
		if err := insertRecipe(tx, recipe); err != nil {
			return err
		}
	}
	for _, meal := range snapshot.Meals {
		if err := insertMeal(tx, meal); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing mirror transaction: %w", err)
	}
	return nil
}

func insertIngredient(tx *sql.Tx, ingredient *types.Ingredient) error {
	data, err := json.Marshal(ingredient)
	if err != nil {
		return fmt.Errorf("marshal ingredient %s: %w", ingredient.ID, err)
	}
	var expiry any
	if ingredient.ExpiryDate != nil {
		expiry = ingredient.ExpiryDate.Format(time.RFC3339Nano)
	}
	_, err = tx.Exec(
		`INSERT INTO ingredients (id, name, quantity, unit, unit_price, expiry_date, data)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ingredient.ID, ingredient.Name, ingredient.Quantity, ingredient.Unit.String(),
		ingredient.UnitPrice, expiry, string(data),
	)
	if err != nil {
		return fmt.Errorf("insert ingredient %s: %w", ingredient.ID, err)
	}
	return nil
}

func insertRecipe(tx *sql.Tx, recipe *types.Recipe) error {
	data, err := json.Marshal(recipe)
	if err != nil {
		return fmt.Errorf("marshal recipe %s: %w", recipe.ID, err)
	}
	_, err = tx.Exec(
		`INSERT INTO recipes (id, name, description, difficulty, servings, data)
         VALUES (?, ?, ?, ?, ?, ?)`,
		recipe.ID, recipe.Name, recipe.Description, recipe.Difficulty, recipe.Servings, string(data),
	)
	if err != nil {
		return fmt.Errorf("insert recipe %s: %w", recipe.ID, err)
	}
	return nil
}

func insertMeal(tx *sql.Tx, meal *types.Meal) error {
	data, err := json.Marshal(meal)
	if err != nil {
		return fmt.Errorf("marshal meal %s: %w", meal.ID, err)
	}
	var recipeID any
	if meal.RecipeID != "" {
		recipeID = meal.RecipeID
	}
	_, err = tx.Exec(
		`INSERT INTO meals (id, name, meal_type, status, planned_time, servings, estimated_cost, recipe_id, data)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meal.ID, meal.Name, meal.Type, meal.Status,
		meal.PlannedTime.Format(time.RFC3339Nano), meal.Servings,
		meal.EstimatedCost, recipeID, string(data),
	)
	if err != nil {
		return fmt.Errorf("insert meal %s: %w", meal.ID, err)
	}
	return nil
}

func selectIngredients(db *sql.DB) ([]*types.Ingredient, error) {
	rows, err := db.Query("SELECT data FROM ingredients ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*types.Ingredient
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var ingredient types.Ingredient
		if err := json.Unmarshal([]byte(data), &ingredient); err != nil {
			return nil, fmt.Errorf("unmarshal ingredient: %w", err)
		}
		out = append(out, &ingredient)
	}
	return out, rows.Err()
}

func selectRecipes(db *sql.DB) ([]*types.Recipe, error) {
	rows, err := db.Query("SELECT data FROM recipes ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*types.Recipe
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var recipe types.Recipe
		if err := json.Unmarshal([]byte(data), &recipe); err != nil {
			return nil, fmt.Errorf("unmarshal recipe: %w", err)
		}
		out = append(out, &recipe)
	}
	return out, rows.Err()
}

func selectMeals(db *sql.DB) ([]*types.Meal, error) {
	rows, err := db.Query("SELECT data FROM meals ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*types.Meal
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var meal types.Meal
		if err := json.Unmarshal([]byte(data), &meal); err != nil {
			return nil, fmt.Errorf("unmarshal meal: %w", err)
		}
		out = append(out, &meal)
	}
	return out, rows.Err()
}

// writeIngredientsJSONL writes all ingredients to ingredients.jsonl
// atomically.
func writeIngredientsJSONL(dataDir string, ingredients []*types.Ingredient) error {
	records := make([]json.RawMessage, 0, len(ingredients))
	for _, ingredient := range ingredients {
		data, err := json.Marshal(ingredient)
		if err != nil {
			return fmt.Errorf("marshal ingredient %s: %w", ingredient.ID, err)
		}
		records = append(records, data)
	}
	return writeJSONL(filepath.Join(dataDir, ingredientsFile), records)
}

// writeRecipesJSONL writes all recipes to recipes.jsonl atomically.
func writeRecipesJSONL(dataDir string, recipes []*types.Recipe) error {
	records := make([]json.RawMessage, 0, len(recipes))
	for _, recipe := range recipes {
		data, err := json.Marshal(recipe)
		if err != nil {
			return fmt.Errorf("marshal recipe %s: %w", recipe.ID, err)
		}
		records = append(records, data)
	}
	return writeJSONL(filepath.Join(dataDir, recipesFile), records)
}

// writeMealsJSONL writes all meals to meals.jsonl atomically.
func writeMealsJSONL(dataDir string, meals []*types.Meal) error {
	records := make([]json.RawMessage, 0, len(meals))
	for _, meal := range meals {
		data, err := json.Marshal(meal)
		if err != nil {
			return fmt.Errorf("marshal meal %s: %w", meal.ID, err)
		}
		records = append(records, data)
	}
	return writeJSONL(filepath.Join(dataDir, mealsFile), records)
}
