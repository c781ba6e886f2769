package frontend

import "fmt"

// Visibility says which assignment vector a variable lives in.
type Visibility uint8

const (
	// Input marks a public-input variable. Input 0 carries the constant one.
	Input Visibility = iota
	// Aux marks a private auxiliary variable.
	Aux
)

func (v Visibility) String() string {
	switch v {
	case Input:
		return "Input"
	case Aux:
		return "Aux"
	default:
		return "unknown"
	}
}

// Variable identifies one witness slot in a constraint system. It is a plain
// value; constraint systems hand them out at allocation and gadgets carry
// them around to reference the slot in linear combinations.
type Variable struct {
	Visibility Visibility `cbor:"v"`
	Index      int        `cbor:"i"`
}

func (v Variable) String() string {
	return fmt.Sprintf("%s(%d)", v.Visibility, v.Index)
}

// compare orders variables with public inputs first, then by index.
func (v Variable) compare(o Variable) int {
	if v.Visibility != o.Visibility {
		if v.Visibility < o.Visibility {
			return -1
		}
		return 1
	}
	switch {
	case v.Index < o.Index:
		return -1
	case v.Index > o.Index:
		return 1
	default:
		return 0
	}
}
