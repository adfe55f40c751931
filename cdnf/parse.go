package cdnf

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jmbriody/bookofnumbers/qm"
)

// Parse converts a canonical expression such as "ABC' + A'BC" into the
// minterm list package qm consumes. Terms are separated by "+"; shape
// checking (every term ranging over the same variables) is left to qm.
func Parse(expr string) ([]qm.Minterm, error) {
	terms := splitTerms(expr)
	if len(terms) == 0 {
		return nil, fmt.Errorf("%w: empty expression", qm.ErrMalformedInput)
	}
	return ParseTerms(terms)
}

// ParseTerms converts a list of term strings such as ["ABC'", "A'BC"]
// into minterms.
func ParseTerms(terms []string) ([]qm.Minterm, error) {
	res := make([]qm.Minterm, len(terms))
	for i, s := range terms {
		lits, err := parseTerm(s)
		if err != nil {
			return nil, err
		}
		res[i] = qm.Minterm{Literals: lits}
	}
	return res, nil
}

// parseTerm reads a conjunction of literals: letters, each optionally
// followed by a prime.
func parseTerm(s string) ([]qm.Literal, error) {
	var lits []qm.Literal
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z') {
			return nil, fmt.Errorf("%w: unexpected %q in term %q", qm.ErrMalformedInput, string(c), s)
		}
		lit := qm.Literal{Name: c}
		if i+1 < len(s) && s[i+1] == '\'' {
			lit.Negated = true
			i++
		}
		lits = append(lits, lit)
	}
	if len(lits) == 0 {
		return nil, fmt.Errorf("%w: empty term", qm.ErrMalformedInput)
	}
	return lits, nil
}

// splitTerms splits an expression on "+" and whitespace.
func splitTerms(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '+' || unicode.IsSpace(r)
	})
}
