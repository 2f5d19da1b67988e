package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Compile-time interface check.
var _ types.Store = (*Backend)(nil)

// Backend implements the Store interface using SQLite as the query mirror
// and JSONL files as the source of truth.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach initializes the backend with the given configuration. Creates
// DataDir if it does not exist, initializes the SQLite schema, and loads
// the JSONL files into the database.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	// The database is a disposable mirror; rebuild it from JSONL on every
	// attach.
	dbPath := filepath.Join(dataDir, "pantry.db")
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return err
	}

	if err := initJSONLFiles(dataDir); err != nil {
		db.Close()
		return err
	}

	if err := loadAllJSONL(db, dataDir); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.config = config
	b.config.DataDir = dataDir
	b.attached = true

	return nil
}

// Detach releases all resources held by the backend. Closes the SQLite
// connection. After Detach, Save and Load return ErrStoreDetached.
// Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil // idempotent
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	return nil
}

// Save persists the snapshot: each collection is written to its JSONL file
// atomically, then the SQLite mirror is rebuilt to match.
func (b *Backend) Save(snapshot types.Snapshot) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreDetached
	}

	if err := writeIngredientsJSONL(b.config.DataDir, snapshot.Ingredients); err != nil {
		return fmt.Errorf("save ingredients: %w", err)
	}
	if err := writeRecipesJSONL(b.config.DataDir, snapshot.Recipes); err != nil {
		return fmt.Errorf("save recipes: %w", err)
	}
	if err := writeMealsJSONL(b.config.DataDir, snapshot.Meals); err != nil {
		return fmt.Errorf("save meals: %w", err)
	}

	return rebuildMirror(b.db, snapshot)
}

// Load reads the last saved snapshot from the SQLite mirror. A fresh data
// directory loads an empty snapshot.
func (b *Backend) Load() (types.Snapshot, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.Snapshot{}, types.ErrStoreDetached
	}

	ingredients, err := selectIngredients(b.db)
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("load ingredients: %w", err)
	}
	recipes, err := selectRecipes(b.db)
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("load recipes: %w", err)
	}
	meals, err := selectMeals(b.db)
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("load meals: %w", err)
	}

	return types.Snapshot{
		Ingredients: ingredients,
		Recipes:     recipes,
		Meals:       meals,
	}, nil
}
