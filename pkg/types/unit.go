package types

import "fmt"

// Unit is a measurement unit, identified by its short token.
type Unit string

// Supported measurement units.
const (
	UnitGram       Unit = "g"
	UnitKilogram   Unit = "kg"
	UnitMilliliter Unit = "ml"
	UnitLiter      Unit = "l"
	UnitPiece      Unit = "pc"
	UnitTeaspoon   Unit = "tsp"
	UnitTablespoon Unit = "tbsp"
	UnitCup        Unit = "cup"
	UnitOunce      Unit = "oz"
	UnitPound      Unit = "lb"
)

// UnitClass partitions units into compatibility classes. Conversion is
// defined only between units of the same class.
type UnitClass string

// Unit compatibility classes.
const (
	ClassMass   UnitClass = "mass"
	ClassVolume UnitClass = "volume"
	ClassCount  UnitClass = "count"
)

// unitDef describes a unit: its compatibility class and the factor that
// converts one of it into the canonical unit of the class (gram for mass,
// milliliter for volume, piece for count).
type unitDef struct {
	class       UnitClass
	toCanonical float64
}

// unitTable lists every recognized unit.
var unitTable = map[Unit]unitDef{
	UnitGram:       {class: ClassMass, toCanonical: 1},
	UnitKilogram:   {class: ClassMass, toCanonical: 1000},
	UnitOunce:      {class: ClassMass, toCanonical: 28.349523125},
	UnitPound:      {class: ClassMass, toCanonical: 453.59237},
	UnitMilliliter: {class: ClassVolume, toCanonical: 1},
	UnitLiter:      {class: ClassVolume, toCanonical: 1000},
	UnitTeaspoon:   {class: ClassVolume, toCanonical: 4.92892159375},
	UnitTablespoon: {class: ClassVolume, toCanonical: 14.78676478125},
	UnitCup:        {class: ClassVolume, toCanonical: 236.5882365},
	UnitPiece:      {class: ClassCount, toCanonical: 1},
}

// AllUnits lists every recognized unit token for enumeration.
var AllUnits = []Unit{
	UnitGram,
	UnitKilogram,
	UnitMilliliter,
	UnitLiter,
	UnitPiece,
	UnitTeaspoon,
	UnitTablespoon,
	UnitCup,
	UnitOunce,
	UnitPound,
}

// String returns the short token for the unit ("g", "kg", "tsp", ...).
func (u Unit) String() string {
	return string(u)
}

// Valid reports whether the unit is one of the recognized units.
func (u Unit) Valid() bool {
	_, ok := unitTable[u]
	return ok
}

// Class returns the compatibility class of the unit.
// Returns ErrUnknownUnit for unrecognized units.
func (u Unit) Class() (UnitClass, error) {
	def, ok := unitTable[u]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, string(u))
	}
	return def.class, nil
}

// ParseUnit maps a short token to its Unit.
// Returns ErrUnknownUnit for unrecognized tokens.
func ParseUnit(token string) (Unit, error) {
	u := Unit(token)
	if _, ok := unitTable[u]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, token)
	}
	return u, nil
}

// ConvertUnit converts a value between two units of the same compatibility
// class, going through the canonical unit of the class.
// Returns ErrUnknownUnit if either unit is unrecognized and
// ErrIncompatibleUnits if the units belong to different classes.
func ConvertUnit(value float64, from, to Unit) (float64, error) {
	fromDef, ok := unitTable[from]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, string(from))
	}
	toDef, ok := unitTable[to]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, string(to))
	}
	if fromDef.class != toDef.class {
		return 0, fmt.Errorf("%w: cannot convert %s to %s", ErrIncompatibleUnits, from, to)
	}
	return value * fromDef.toCanonical / toDef.toCanonical, nil
}
