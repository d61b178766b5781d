package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Unit is the closed enumeration of measurement units a composition link may
// carry. Comparisons are always done on the parsed value, never on the raw
// string, so "ML" and "ml" are the same unit.
type Unit string

const (
	UnitMl    Unit = "ml"
	UnitL     Unit = "l"
	UnitOz    Unit = "oz"
	UnitTsp   Unit = "tsp"
	UnitTbsp  Unit = "tbsp"
	UnitCup   Unit = "cup"
	UnitPiece Unit = "piece"
	UnitDash  Unit = "dash"
	UnitDrop  Unit = "drop"
	UnitOther Unit = "other"
)

var (
	ErrUnknownUnit = errors.New("unknown unit")

	// ErrCorruptUnit marks a stored unit value outside the enumeration. This
	// is a data-integrity failure surfaced during hydration, not silently
	// substituted with "other".
	ErrCorruptUnit = errors.New("corrupt unit value in store")
)

var validUnits = map[Unit]bool{
	UnitMl:    true,
	UnitL:     true,
	UnitOz:    true,
	UnitTsp:   true,
	UnitTbsp:  true,
	UnitCup:   true,
	UnitPiece: true,
	UnitDash:  true,
	UnitDrop:  true,
	UnitOther: true,
}

// ParseUnit normalizes and validates a unit string.
func ParseUnit(s string) (Unit, error) {
	u := Unit(strings.ToLower(strings.TrimSpace(s)))
	if !validUnits[u] {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
	return u, nil
}

// ParseStoredUnit is ParseUnit for values read back from the store, where an
// unknown unit means the row is corrupt rather than the input malformed.
func ParseStoredUnit(s string) (Unit, error) {
	u, err := ParseUnit(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrCorruptUnit, s)
	}
	return u, nil
}
