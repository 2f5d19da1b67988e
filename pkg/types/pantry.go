package types

// Snapshot is a point-in-time copy of all three entity collections. Bulk
// persistence is expressed entirely in terms of snapshots: a save writes
// one, a load produces one, and the repository replaces its collections
// from one atomically.
type Snapshot struct {
	Ingredients []*Ingredient `json:"ingredients"`
	Recipes     []*Recipe     `json:"recipes"`
	Meals       []*Meal       `json:"meals"`
}

// Store defines the interface for snapshot persistence backends. Callers
// attach to a backend, save or load snapshots, and detach when done. The
// store knows nothing about the repository's locking; callers must take
// the snapshot before calling Save.
type Store interface {
	// Attach connects the store to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls
	// succeed. After Detach, Save and Load return ErrStoreDetached.
	Detach() error

	// Save persists the snapshot, replacing any previously saved state.
	Save(snapshot Snapshot) error

	// Load reads the last saved snapshot. A fresh store loads an empty
	// snapshot.
	Load() (Snapshot, error)
}
