package models

// Unit is the measurement unit of an ingredient quantity. The set is
// fixed; quantities never convert between units.
type Unit string

const (
	UnitGrams      Unit = "gr"   // mass in grams
	UnitMillilitre Unit = "ml"   // volume in millilitres
	UnitCount      Unit = "#"    // pieces
	UnitTablespoon Unit = "tbsp" // tablespoons
	UnitTeaspoon   Unit = "tsp"  // teaspoons
)

// ValidUnit reports whether u is one of the known units.
func ValidUnit(u Unit) bool {
	switch u {
	case UnitGrams, UnitMillilitre, UnitCount, UnitTablespoon, UnitTeaspoon:
		return true
	}
	return false
}
