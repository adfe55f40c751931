package cdnf

import (
	"math/big"
	"sort"

	"github.com/jmbriody/bookofnumbers/qm"
)

// QuineMC minimizes a canonical expression string, e.g
// QuineMC("ABC' + ABC + AB'C' + AB'C + A'BC") gives "BC + A".
func QuineMC(expr string) (string, error) {
	res, err := QuineMCFull(expr)
	if err != nil {
		return "", err
	}
	return res.Cover.String(), nil
}

// QuineMCFull is QuineMC returning the full reduction results: the cover,
// the complete term list and the tied alternative completions.
func QuineMCFull(expr string) (*qm.Results, error) {
	minterms, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	return qm.New(minterms).MinimizeFull()
}

// QuineMCInt expands n to its canonical form and minimizes it, e.g
// QuineMCInt(248, true) gives "BC + A".
func QuineMCInt(n *big.Int, highOrderA bool) (string, error) {
	if n != nil && n.Sign() == 0 {
		return "0", nil
	}
	expr, err := CanonicalOpts(n, highOrderA, false)
	if err != nil {
		return "", err
	}
	return QuineMC(expr)
}

// QuineMCIndexes minimizes the function given as minterm indexes plus
// optional don't care indexes.
func QuineMCIndexes(indexes, dontCares []int, highOrderA bool) (string, error) {
	minterms, err := FromIndexes(indexes, dontCares, highOrderA)
	if err != nil {
		return "", err
	}
	cover, err := qm.Minimize(minterms)
	if err != nil {
		return "", err
	}
	return cover.String(), nil
}

// ResultToInt rebuilds the integer whose canonical form produced the given
// term list: one bit per generation-1 term, at the position its binary
// pattern denotes.
func ResultToInt(terms []qm.Term) *big.Int {
	n := new(big.Int)
	for _, t := range terms {
		if t.Generation != 1 {
			continue
		}
		pos := 0
		for _, c := range t.Binary {
			pos <<= 1
			if c == '1' {
				pos++
			}
		}
		n.SetBit(n, pos, 1)
	}
	return n
}

// Alternatives renders every tied alternative cover of a reduction, the
// essential terms first, e.g for 743:
//
//	B'C'D + A'CD' + A'BD + A'B'D'
//	B'C'D + A'B'D' + A'BC + A'BD
//	...
//
// Most functions reduce unambiguously and get an empty list.
func Alternatives(res *qm.Results) []string {
	covers := res.Alternatives()
	out := make([]string, len(covers))
	for i, c := range covers {
		out[i] = c.String()
	}
	sort.Strings(out)
	return out
}
