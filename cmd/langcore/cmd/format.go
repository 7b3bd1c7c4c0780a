package cmd

import (
	"fmt"

	"github.com/freedmand/langcore/internal/fraction"
	"github.com/freedmand/langcore/internal/typetable"
)

// formatValue renders a typetable.Value the way its source literal
// would have looked where it has one: a Fraction as num/den and a String
// in single quotes, without the Go double quoting a %#v dump would add
// for its Data field. Every other value (arrays and tuples included)
// prints with %v.
func formatValue(v typetable.Value) string {
	switch data := v.Data.(type) {
	case fraction.Fraction:
		return data.String()
	case string:
		return "'" + data + "'"
	default:
		return fmt.Sprintf("%v", data)
	}
}
