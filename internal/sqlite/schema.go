// Package sqlite implements the SQLite snapshot store for the Pantry
// storage system. JSONL files in the data directory are the source of
// truth; the SQLite database mirrors them for querying and is rebuilt on
// every Attach.
package sqlite

import (
	"database/sql"
	"fmt"
)

// Schema DDL for all tables. Scalar fields are promoted to columns for
// querying; the data column keeps the full JSON document, nested lists
// included.
const (
	createIngredients = `CREATE TABLE ingredients (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    quantity REAL NOT NULL,
    unit TEXT NOT NULL,
    unit_price REAL NOT NULL,
    expiry_date TEXT,
    data TEXT NOT NULL
);`

	createRecipes = `CREATE TABLE recipes (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    difficulty TEXT NOT NULL,
    servings INTEGER NOT NULL,
    data TEXT NOT NULL
);`

	createMeals = `CREATE TABLE meals (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    meal_type TEXT NOT NULL,
    status TEXT NOT NULL,
    planned_time TEXT NOT NULL,
    servings INTEGER NOT NULL,
    estimated_cost REAL NOT NULL,
    recipe_id TEXT,
    data TEXT NOT NULL
);`
)

// schemaStatements lists the DDL in creation order.
var schemaStatements = []string{
	createIngredients,
	createRecipes,
	createMeals,
}

// initSchema creates all tables in a fresh database.
func initSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}
