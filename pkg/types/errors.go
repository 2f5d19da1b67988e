package types

import "errors"

// Entity and operation errors. Callers match with errors.Is; most sites
// wrap these with field context via fmt.Errorf("%w: ...").
var (
	// ErrInvalidArgument reports malformed input to a setter or operation:
	// a negative numeric field, an empty required name, or a non-positive
	// servings count, step order, or scale factor.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrValidation reports a structural invariant violation detected when
	// an entity is handed to the repository.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound reports an operation on an identifier that is not present.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateID reports an insert collision on an identifier.
	ErrDuplicateID = errors.New("duplicate entity ID")
)

// Unit conversion errors.
var (
	// ErrIncompatibleUnits reports a conversion between units of different
	// compatibility classes (mass, volume, count).
	ErrIncompatibleUnits = errors.New("incompatible units")

	// ErrUnknownUnit reports an unrecognized unit token.
	ErrUnknownUnit = errors.New("unknown unit")
)

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)
