package frontend

import (
	"sort"
	"strings"

	"github.com/varunthakore/bellpepper/field"
)

// Term is one weighted variable inside a linear combination.
type Term[F field.Element[F]] struct {
	Variable Variable
	Coeff    F
}

// LinearCombination is a finite weighted sum of witness variables, kept as a
// sparse list of terms ordered by variable, one term per variable. The zero
// value is the empty combination, which evaluates to 0.
//
// Combinations are immutable: every method returns a new value. Adding a term
// for a variable already present merges by coefficient addition.
type LinearCombination[F field.Element[F]] struct {
	terms []Term[F]
}

// FromVariable returns the combination 1·v.
func FromVariable[F field.Element[F]](v Variable) LinearCombination[F] {
	return LinearCombination[F]{terms: []Term[F]{{Variable: v, Coeff: field.One[F]()}}}
}

// AddTerm returns lc + coeff·v.
func (lc LinearCombination[F]) AddTerm(v Variable, coeff F) LinearCombination[F] {
	i := sort.Search(len(lc.terms), func(i int) bool {
		return lc.terms[i].Variable.compare(v) >= 0
	})
	//
	out := make([]Term[F], 0, len(lc.terms)+1)
	out = append(out, lc.terms[:i]...)
	if i < len(lc.terms) && lc.terms[i].Variable == v {
		out = append(out, Term[F]{Variable: v, Coeff: lc.terms[i].Coeff.Add(coeff)})
		out = append(out, lc.terms[i+1:]...)
	} else {
		out = append(out, Term[F]{Variable: v, Coeff: coeff})
		out = append(out, lc.terms[i:]...)
	}
	//
	return LinearCombination[F]{terms: out}
}

// AddVariable returns lc + v.
func (lc LinearCombination[F]) AddVariable(v Variable) LinearCombination[F] {
	return lc.AddTerm(v, field.One[F]())
}

// SubVariable returns lc - v.
func (lc LinearCombination[F]) SubVariable(v Variable) LinearCombination[F] {
	return lc.AddTerm(v, field.One[F]().Neg())
}

// Add returns the term-wise sum of lc and other.
func (lc LinearCombination[F]) Add(other LinearCombination[F]) LinearCombination[F] {
	out := make([]Term[F], 0, len(lc.terms)+len(other.terms))
	//
	i, j := 0, 0
	for i < len(lc.terms) && j < len(other.terms) {
		switch lc.terms[i].Variable.compare(other.terms[j].Variable) {
		case -1:
			out = append(out, lc.terms[i])
			i++
		case 1:
			out = append(out, other.terms[j])
			j++
		default:
			out = append(out, Term[F]{
				Variable: lc.terms[i].Variable,
				Coeff:    lc.terms[i].Coeff.Add(other.terms[j].Coeff),
			})
			i++
			j++
		}
	}
	out = append(out, lc.terms[i:]...)
	out = append(out, other.terms[j:]...)
	//
	return LinearCombination[F]{terms: out}
}

// Sub returns lc - other.
func (lc LinearCombination[F]) Sub(other LinearCombination[F]) LinearCombination[F] {
	return lc.Add(other.Scale(field.One[F]().Neg()))
}

// Scale returns lc with every coefficient multiplied by coeff.
func (lc LinearCombination[F]) Scale(coeff F) LinearCombination[F] {
	out := make([]Term[F], len(lc.terms))
	for i, t := range lc.terms {
		out[i] = Term[F]{Variable: t.Variable, Coeff: t.Coeff.Mul(coeff)}
	}
	//
	return LinearCombination[F]{terms: out}
}

// Terms exposes the combination's terms, public inputs first. The returned
// slice must not be modified.
func (lc LinearCombination[F]) Terms() []Term[F] {
	return lc.terms
}

// Len returns the number of distinct variables in the combination.
func (lc LinearCombination[F]) Len() int {
	return len(lc.terms)
}

func (lc LinearCombination[F]) String() string {
	if len(lc.terms) == 0 {
		return "0"
	}
	//
	var sb strings.Builder
	for i, t := range lc.terms {
		if i > 0 {
			sb.WriteString(" + ")
		}
		sb.WriteString(t.Coeff.String())
		sb.WriteString("·")
		sb.WriteString(t.Variable.String())
	}
	//
	return sb.String()
}
