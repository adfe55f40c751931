package qm

import (
	"fmt"
	"sort"
	"strings"
)

// maxCoverChecks bounds the number of candidate subsets examined while
// searching for a residual cover. The search is exhaustive by increasing
// subset size, so hitting the bound means a combinatorial blow-up and the
// whole minimization gives up with ErrResourceLimit.
const maxCoverChecks = 1 << 22

// selectCover marks the terms making up a minimal cover. Essential prime
// implicants (the only cover of some minterm) get Final Required; if they
// do not cover everything, a smallest set of remaining primes covering the
// leftover rows gets Final Added. All equally small completions are
// returned, keyed by choice index; choice 0 is the one selected into the
// primary result. The map is nil unless there was a tie.
func selectCover(terms []*Term, dcRows map[int]bool) (map[int][]*Term, error) {
	counts := make(map[int]int)
	var primes []*Term
	for _, t := range terms {
		if t.Used || t.DontCare {
			continue
		}
		primes = append(primes, t)
		for _, s := range t.Source {
			if !dcRows[s] {
				counts[s]++
			}
		}
	}

	// Step 1: rows covered by exactly one prime make that prime essential.
	required := make(map[int]bool)
	for row, n := range counts {
		if n == 1 {
			required[row] = true
		}
	}
	covered := make(map[int]bool)
	for _, t := range primes {
		if !intersects(t.Source, required) {
			continue
		}
		t.Final = Required
		for _, s := range t.Source {
			covered[s] = true
		}
	}
	var keep []int
	for row := range counts {
		if !covered[row] {
			keep = append(keep, row)
		}
	}
	if len(keep) == 0 {
		return nil, nil
	}
	sort.Ints(keep)

	// Step 2: exhaustive search, by increasing subset size, for sets of
	// remaining primes covering the leftover rows.
	keepIdx := make(map[int]int, len(keep)) // row -> bit position
	for i, row := range keep {
		keepIdx[row] = i
	}
	var cands []*Term
	var covs []bitset
	for _, t := range primes {
		if t.Final != None {
			continue
		}
		cov := newBitset(len(keep))
		hit := false
		for _, s := range t.Source {
			if i, ok := keepIdx[s]; ok {
				cov.set(i)
				hit = true
			}
		}
		if hit {
			cands = append(cands, t)
			covs = append(covs, cov)
		}
	}
	full := newBitset(len(keep))
	for i := range keep {
		full.set(i)
	}
	matches, err := searchCovers(cands, covs, full)
	if err != nil {
		return nil, err
	}

	// Step 3: deterministic tie-break. The primary completion is the one
	// whose full cover (essentials included) sorts lexicographically
	// smallest by literal-set string.
	var reqStrings []string
	for _, t := range primes {
		if t.Final == Required {
			reqStrings = append(reqStrings, t.String())
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return coverKey(reqStrings, matches[i]) < coverKey(reqStrings, matches[j])
	})
	for _, t := range matches[0] {
		t.Final = Added
	}
	if len(matches) == 1 {
		return nil, nil
	}
	possibles := make(map[int][]*Term, len(matches))
	for i, m := range matches {
		possibles[i] = m
	}
	return possibles, nil
}

// searchCovers enumerates subsets of cands by increasing size and returns
// every subset of the first size at which the leftover rows are fully
// covered. At least one subset always matches since the candidates jointly
// cover every leftover row.
func searchCovers(cands []*Term, covs []bitset, full bitset) ([][]*Term, error) {
	budget := maxCoverChecks
	acc := newBitset(full.size())
	pick := make([]int, 0, len(cands))
	var matches [][]*Term
	var rec func(start, remaining int) error
	rec = func(start, remaining int) error {
		if budget--; budget < 0 {
			return fmt.Errorf("%w: more than %d cover candidates examined", ErrResourceLimit, maxCoverChecks)
		}
		if remaining == 0 {
			if acc.equal(full) {
				m := make([]*Term, len(pick))
				for i, idx := range pick {
					m[i] = cands[idx]
				}
				matches = append(matches, m)
			}
			return nil
		}
		for i := start; i <= len(cands)-remaining; i++ {
			saved := acc.clone()
			acc.union(covs[i])
			pick = append(pick, i)
			if err := rec(i+1, remaining-1); err != nil {
				return err
			}
			pick = pick[:len(pick)-1]
			acc = saved
		}
		return nil
	}
	for k := 1; k <= len(cands); k++ {
		if err := rec(0, k); err != nil {
			return nil, err
		}
		if len(matches) > 0 {
			return matches, nil
		}
	}
	return nil, fmt.Errorf("%w: leftover minterms cannot be covered", ErrMalformedInput)
}

// coverKey is the comparison key of a full cover: its term strings, the
// common essential ones included, sorted and joined.
func coverKey(reqStrings []string, completion []*Term) string {
	all := make([]string, 0, len(reqStrings)+len(completion))
	all = append(all, reqStrings...)
	for _, t := range completion {
		all = append(all, t.String())
	}
	sort.Strings(all)
	return strings.Join(all, "+")
}

func intersects(source []int, rows map[int]bool) bool {
	for _, s := range source {
		if rows[s] {
			return true
		}
	}
	return false
}

// bitset is a fixed-size bit vector used to accumulate row coverage
// during the residual search.
type bitset struct {
	words []uint64
	n     int
}

func newBitset(n int) bitset {
	return bitset{words: make([]uint64, (n+63)/64), n: n}
}

func (b bitset) size() int   { return b.n }
func (b bitset) set(i int)   { b.words[i/64] |= 1 << uint(i%64) }
func (b bitset) union(o bitset) {
	for i, w := range o.words {
		b.words[i] |= w
	}
}

func (b bitset) equal(o bitset) bool {
	for i, w := range o.words {
		if b.words[i] != w {
			return false
		}
	}
	return true
}

func (b bitset) clone() bitset {
	c := bitset{words: make([]uint64, len(b.words)), n: b.n}
	copy(c.words, b.words)
	return c
}
