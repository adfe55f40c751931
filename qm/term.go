package qm

import (
	"sort"
	"strings"
)

// A Literal is a named boolean variable, possibly negated.
// "A" is the literal {Name: 'A'}, "A'" is {Name: 'A', Negated: true}.
type Literal struct {
	Name    byte
	Negated bool
}

func (l Literal) String() string {
	if l.Negated {
		return string(l.Name) + "'"
	}
	return string(l.Name)
}

// A Minterm is one row of the target function: an ordered tuple of
// literals, one per variable, each positive or negated. All minterms of a
// problem must range over the same set of variable names.
// DontCare marks a row whose output is unconstrained: it participates in
// combination but is never required to be covered.
type Minterm struct {
	Literals []Literal
	DontCare bool
}

// Final is the role of a term in the minimized result.
type Final byte

const (
	// None means the term is not part of the result.
	None = Final(iota)
	// Added means the term was selected to complete the cover.
	Added
	// Required means the term is an essential prime implicant.
	Required
)

func (f Final) String() string {
	switch f {
	case None:
		return "NONE"
	case Added:
		return "ADDED"
	case Required:
		return "REQUIRED"
	default:
		panic("invalid final tag")
	}
}

// A Term is one implicant in the reduction table: a conjunction of
// literals together with its derivation bookkeeping.
type Term struct {
	// Literals is the term's literal set, sorted by variable name.
	Literals []Literal
	// Used is true once the term has been subsumed by a wider term.
	// Used terms are never candidates for the final cover.
	Used bool
	// Ones is the number of positive literals. Two terms can only
	// combine when their Ones differ by exactly one.
	Ones int
	// Source lists the generation-1 rows the term covers, in increasing
	// order. For a generation-1 term it is the term's own row.
	Source []int
	// Generation is 1 for original minterms and grows by one with each
	// combination round.
	Generation int
	// Final tags the term's role in the result.
	Final Final
	// Binary is the positional 0/1 pattern of a generation-1 term, high
	// order variable first. Empty for later generations, where a dropped
	// literal makes the pattern meaningless.
	Binary string
	// Row is the term's stable index in the full term list.
	Row int
	// DontCare is true when every minterm the term covers is a don't
	// care. Such terms are never selected into the cover.
	DontCare bool
}

func (t Term) String() string { return termString(t.Literals) }

// termString renders a sorted literal set, e.g. "A'BD".
func termString(lits []Literal) string {
	var sb strings.Builder
	for _, l := range lits {
		sb.WriteByte(l.Name)
		if l.Negated {
			sb.WriteByte('\'')
		}
	}
	return sb.String()
}

func sortLiterals(lits []Literal) {
	sort.Slice(lits, func(i, j int) bool { return lits[i].Name < lits[j].Name })
}

// binaryPattern renders the 0/1 pattern of a full minterm, already sorted
// by name: A'BC' gives "010".
func binaryPattern(lits []Literal) string {
	buf := make([]byte, len(lits))
	for i, l := range lits {
		if l.Negated {
			buf[i] = '0'
		} else {
			buf[i] = '1'
		}
	}
	return string(buf)
}

func countOnes(lits []Literal) int {
	n := 0
	for _, l := range lits {
		if !l.Negated {
			n++
		}
	}
	return n
}

// dropLiteral returns a copy of lits without the literal at index i.
func dropLiteral(lits []Literal, i int) []Literal {
	res := make([]Literal, 0, len(lits)-1)
	res = append(res, lits[:i]...)
	res = append(res, lits[i+1:]...)
	return res
}

// mergeSources returns the sorted union of two increasing row lists.
func mergeSources(a, b []int) []int {
	res := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			res = append(res, a[i])
			i++
		case a[i] > b[j]:
			res = append(res, b[j])
			j++
		default:
			res = append(res, a[i])
			i++
			j++
		}
	}
	res = append(res, a[i:]...)
	res = append(res, b[j:]...)
	return res
}
