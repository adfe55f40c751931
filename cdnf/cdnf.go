package cdnf

import (
	"fmt"
	"math/big"
	"math/bits"
	"sort"
	"strings"

	"github.com/jmbriody/bookofnumbers/qm"
)

// letterAt names the variable for bit position i: upper case letters
// first, then lower case.
func letterAt(i int) byte {
	if i < 26 {
		return byte('A' + i)
	}
	return byte('a' + i - 26)
}

// width returns the number of variables needed to express n: enough bits
// to index n's highest set bit, and never fewer than two.
func width(n *big.Int) int {
	w := bits.Len(uint(n.BitLen() - 1))
	if w < 2 {
		w = 2
	}
	return w
}

// Canonical returns the canonical disjunctive normal form denoted by n,
// with A as the high order bit. Bit i of n set means the minterm for
// pattern i is part of the sum. Canonical(0) is "0", the empty sum.
func Canonical(n *big.Int) (string, error) {
	return CanonicalOpts(n, true, false)
}

// CanonicalOpts is Canonical with the bit order and output prefix made
// explicit. When highOrderA is false A is the low order bit. When includeF
// is true the result is prefixed with "f(n) = ".
func CanonicalOpts(n *big.Int, highOrderA, includeF bool) (string, error) {
	if n == nil || n.Sign() < 0 {
		return "", fmt.Errorf("%w: canonical requires a non-negative integer", qm.ErrMalformedInput)
	}
	var result string
	if n.Sign() == 0 {
		result = "0"
	} else {
		w := width(n)
		if w > qm.MaxLiterals {
			return "", fmt.Errorf("%w: %d needs %d variables (max %d)", qm.ErrResourceLimit, n, w, qm.MaxLiterals)
		}
		var terms []string
		for i := 0; i < n.BitLen(); i++ {
			if n.Bit(i) == 1 {
				terms = append(terms, patternTerm(i, w, highOrderA))
			}
		}
		sort.Sort(sort.Reverse(sort.StringSlice(terms)))
		result = strings.Join(terms, " + ")
	}
	if includeF {
		result = fmt.Sprintf("f(%d) = %s", n, result)
	}
	return result, nil
}

// patternTerm renders the minterm for pattern over w variables: pattern 2
// over 3 variables is "A'BC'" when A is the high order bit.
func patternTerm(pattern, w int, highOrderA bool) string {
	var sb strings.Builder
	for i := 0; i < w; i++ {
		bit := pattern >> uint(w-1-i) & 1
		if !highOrderA {
			bit = pattern >> uint(i) & 1
		}
		sb.WriteByte(letterAt(i))
		if bit == 0 {
			sb.WriteByte('\'')
		}
	}
	return sb.String()
}

// FromIndexes builds minterms from minterm indexes, over just enough
// variables to express the largest one. Indexes listed in dontCares are
// flagged as don't care rows.
func FromIndexes(indexes, dontCares []int, highOrderA bool) ([]qm.Minterm, error) {
	max := 0
	for _, i := range append(append([]int{}, indexes...), dontCares...) {
		if i < 0 {
			return nil, fmt.Errorf("%w: negative minterm index %d", qm.ErrMalformedInput, i)
		}
		if i > max {
			max = i
		}
	}
	w := bits.Len(uint(max))
	if w < 2 {
		w = 2
	}
	if w > qm.MaxLiterals {
		return nil, fmt.Errorf("%w: index %d needs %d variables (max %d)", qm.ErrResourceLimit, max, w, qm.MaxLiterals)
	}
	dc := make(map[int]bool, len(dontCares))
	for _, i := range dontCares {
		dc[i] = true
	}
	var res []qm.Minterm
	for _, i := range indexes {
		res = append(res, indexMinterm(i, w, highOrderA, dc[i]))
	}
	for _, i := range dontCares {
		res = append(res, indexMinterm(i, w, highOrderA, true))
	}
	return res, nil
}

func indexMinterm(pattern, w int, highOrderA, dontCare bool) qm.Minterm {
	lits := make([]qm.Literal, w)
	for i := 0; i < w; i++ {
		bit := pattern >> uint(w-1-i) & 1
		if !highOrderA {
			bit = pattern >> uint(i) & 1
		}
		lits[i] = qm.Literal{Name: letterAt(i), Negated: bit == 0}
	}
	return qm.Minterm{Literals: lits, DontCare: dontCare}
}

// ToCDNF re-expands a minimized expression such as "A + BD'" to a
// canonical form over the variables the expression mentions. With ranged
// set, variables missing from the whole expression but lying between its
// smallest and largest letter are filled in too, which grows the result by
// a factor of two per missing letter; absurd gaps ("A + Z") are rejected
// with ErrResourceLimit rather than computed.
func ToCDNF(minForm string, ranged bool) (string, error) {
	rawTerms := splitTerms(minForm)
	if len(rawTerms) == 0 {
		return "", fmt.Errorf("%w: empty expression", qm.ErrMalformedInput)
	}
	terms := make([][]qm.Literal, len(rawTerms))
	present := make(map[byte]bool)
	for i, raw := range rawTerms {
		lits, err := parseTerm(raw)
		if err != nil {
			return "", err
		}
		terms[i] = lits
		for _, l := range lits {
			present[l.Name] = true
		}
	}
	letters := letterRange(present, ranged)

	// Each term expands to one minterm per assignment of its missing
	// letters; bail out before materializing anything huge.
	total := 0
	for _, lits := range terms {
		missing := len(letters) - len(lits)
		if missing >= 63 || total+1<<uint(missing) > qm.DefaultMaxTerms {
			return "", fmt.Errorf("%w: expansion past %d minterms", qm.ErrResourceLimit, qm.DefaultMaxTerms)
		}
		total += 1 << uint(missing)
	}

	seen := make(map[string]bool, total)
	var minterms []string
	for _, lits := range terms {
		has := make(map[byte]bool, len(lits))
		for _, l := range lits {
			has[l.Name] = true
		}
		var missing []byte
		for _, c := range letters {
			if !has[c] {
				missing = append(missing, c)
			}
		}
		for combo := 0; combo < 1<<uint(len(missing)); combo++ {
			full := make([]qm.Literal, 0, len(letters))
			full = append(full, lits...)
			for j, c := range missing {
				full = append(full, qm.Literal{Name: c, Negated: combo>>uint(j)&1 == 0})
			}
			s := renderTerm(full)
			if !seen[s] {
				seen[s] = true
				minterms = append(minterms, s)
			}
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(minterms)))
	return strings.Join(minterms, " + "), nil
}

// letterRange lists the variables of an expansion in order: the letters
// present, or with ranged set every letter between the smallest and the
// largest one.
func letterRange(present map[byte]bool, ranged bool) []byte {
	var letters []byte
	for c := range present {
		letters = append(letters, c)
	}
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	if !ranged || len(letters) == 0 {
		return letters
	}
	var res []byte
	for c := letters[0]; c <= letters[len(letters)-1]; c++ {
		if c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' {
			res = append(res, c)
		}
	}
	return res
}

func renderTerm(lits []qm.Literal) string {
	sort.Slice(lits, func(i, j int) bool { return lits[i].Name < lits[j].Name })
	var sb strings.Builder
	for _, l := range lits {
		sb.WriteString(l.String())
	}
	return sb.String()
}
