package qm

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// MaxLiterals is the maximum number of distinct variables a problem may
// range over. Past that point term counts explode far beyond anything the
// engine can chew through.
const MaxLiterals = 32

// DefaultMaxTerms is the default ceiling on the total number of terms
// generated during combination.
const DefaultMaxTerms = 1 << 21

var (
	// ErrMalformedInput is returned when minterms do not all range over
	// the same variables, or contain a repeated or invalid literal.
	ErrMalformedInput = errors.New("qm: malformed input")
	// ErrResourceLimit is returned when the computation would exceed the
	// configured ceilings. The failure is deterministic: the same input
	// fails the same way on every run.
	ErrResourceLimit = errors.New("qm: resource limit exceeded")
)

// A Cover is a minimized sum-of-products expression: an ordered list of
// literal sets, each denoting the conjunction of its literals.
// The zero Cover denotes the constant false ("0"); a cover made of one
// empty term denotes the constant true ("1").
type Cover struct {
	Terms [][]Literal
}

// IsZero is true for the cover of an empty minterm list, i.e the
// constant false.
func (c Cover) IsZero() bool { return len(c.Terms) == 0 }

// IsTautology is true when all literals reduced away, i.e the constant
// true.
func (c Cover) IsTautology() bool { return len(c.Terms) == 1 && len(c.Terms[0]) == 0 }

func (c Cover) String() string {
	if c.IsZero() {
		return "0"
	}
	if c.IsTautology() {
		return "1"
	}
	parts := make([]string, len(c.Terms))
	for i, t := range c.Terms {
		parts[i] = termString(t)
	}
	return strings.Join(parts, " + ")
}

// Results holds everything the reduction produced.
type Results struct {
	// Cover is the primary minimized expression.
	Cover Cover
	// Terms is the full term list, in row order, with Used and Final
	// flags as they stood when the cover was selected.
	Terms []Term
	// Possibles maps a choice index to an alternative set of terms that
	// completes the cover at the same size. Choice 0 is the completion
	// selected into Cover. Empty when the minimal cover is unambiguous.
	Possibles map[int][]Term
	// Coverage maps each minterm row to the rows of the prime implicants
	// covering it.
	Coverage map[int][]int

	careRows []int
	dcRows   map[int]bool
}

// A Problem is a single minimization request. A Problem is not safe for
// concurrent use, but distinct Problems are fully independent.
type Problem struct {
	// MaxTerms caps the number of terms generated during combination.
	// DefaultMaxTerms when zero or negative.
	MaxTerms int
	// Log, when set, receives debug traces of the combination rounds.
	Log logrus.FieldLogger

	minterms []Minterm
}

// New returns a Problem minimizing the given minterms.
func New(minterms []Minterm) *Problem {
	return &Problem{minterms: minterms}
}

// Minimize returns the primary minimal cover for the minterms.
func Minimize(minterms []Minterm) (Cover, error) {
	return New(minterms).Minimize()
}

// Minimize returns the primary minimal cover.
func (p *Problem) Minimize() (Cover, error) {
	res, err := p.MinimizeFull()
	if err != nil {
		return Cover{}, err
	}
	return res.Cover, nil
}

// MinimizeFull runs the reduction and returns the cover together with the
// full term list and the tied alternatives, if any.
func (p *Problem) MinimizeFull() (*Results, error) {
	maxTerms := p.MaxTerms
	if maxTerms <= 0 {
		maxTerms = DefaultMaxTerms
	}
	if len(p.minterms) == 0 {
		// No minterms: the function is false everywhere.
		return &Results{Possibles: map[int][]Term{}}, nil
	}
	minterms, nbVars, err := normalize(p.minterms)
	if err != nil {
		return nil, err
	}
	if nbVars == 0 {
		return tautology(nil), nil
	}
	if nbVars > MaxLiterals {
		return nil, fmt.Errorf("%w: %d variables (max %d)", ErrResourceLimit, nbVars, MaxLiterals)
	}

	terms := firstGeneration(minterms)
	dcRows := make(map[int]bool)
	var careRows []int
	for _, t := range terms {
		if t.DontCare {
			dcRows[t.Row] = true
		} else {
			careRows = append(careRows, t.Row)
		}
	}

	for gen := 1; ; gen++ {
		var produced bool
		terms, produced = combine(terms, gen, nbVars)
		if p.Log != nil {
			p.Log.WithFields(logrus.Fields{"generation": gen + 1, "terms": len(terms)}).
				Debug("combination round done")
		}
		if !produced {
			break
		}
		if len(terms) > maxTerms {
			return nil, fmt.Errorf("%w: %d terms generated (max %d)", ErrResourceLimit, len(terms), maxTerms)
		}
	}
	markDontCares(terms, dcRows)

	// A fully reduced term means the input covered every pattern: the
	// function is the constant true.
	for _, t := range terms {
		if !t.Used && len(t.Literals) == 0 {
			t.Final = Required
			return tautology(terms), nil
		}
	}

	possibles, err := selectCover(terms, dcRows)
	if err != nil {
		return nil, err
	}
	return assemble(terms, possibles, careRows, dcRows), nil
}

// normalize validates the minterm shapes and returns sorted copies.
// Every minterm must range over the same variables, each appearing once.
func normalize(minterms []Minterm) ([]Minterm, int, error) {
	res := make([]Minterm, len(minterms))
	var names string
	for i, m := range minterms {
		lits := make([]Literal, len(m.Literals))
		copy(lits, m.Literals)
		sortLiterals(lits)
		buf := make([]byte, len(lits))
		for j, l := range lits {
			if !isLetter(l.Name) {
				return nil, 0, fmt.Errorf("%w: invalid variable name %q", ErrMalformedInput, string(l.Name))
			}
			if j > 0 && lits[j-1].Name == l.Name {
				return nil, 0, fmt.Errorf("%w: variable %s repeated in term %s", ErrMalformedInput, string(l.Name), termString(lits))
			}
			buf[j] = l.Name
		}
		if i == 0 {
			names = string(buf)
		} else if string(buf) != names {
			return nil, 0, fmt.Errorf("%w: term %s does not range over %q", ErrMalformedInput, termString(lits), names)
		}
		res[i] = Minterm{Literals: lits, DontCare: m.DontCare}
	}
	return res, len(names), nil
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func tautology(terms []*Term) *Results {
	return &Results{
		Cover:     Cover{Terms: [][]Literal{{}}},
		Terms:     snapshot(terms),
		Possibles: map[int][]Term{},
	}
}

// assemble builds the Results from the flagged term list: the primary
// cover in deterministic order, the possibles map and the coverage table.
func assemble(terms []*Term, possibles map[int][]*Term, careRows []int, dcRows map[int]bool) *Results {
	res := &Results{
		Terms:     snapshot(terms),
		Possibles: make(map[int][]Term, len(possibles)),
		Coverage:  make(map[int][]int, len(careRows)),
		careRows:  careRows,
		dcRows:    dcRows,
	}
	var cover [][]Literal
	for _, t := range terms {
		if t.Final != None {
			cover = append(cover, t.Literals)
		}
	}
	sortCover(cover)
	res.Cover = Cover{Terms: cover}
	for choice, ts := range possibles {
		vals := make([]Term, len(ts))
		for i, t := range ts {
			vals[i] = *t
		}
		res.Possibles[choice] = vals
	}
	for _, t := range terms {
		if t.Used || t.DontCare {
			continue
		}
		for _, s := range t.Source {
			if !dcRows[s] {
				res.Coverage[s] = append(res.Coverage[s], t.Row)
			}
		}
	}
	for _, rows := range res.Coverage {
		sort.Ints(rows)
	}
	return res
}

// sortCover orders the terms of a rendered cover the way results are
// reported: reverse lexicographically by literal-set string.
func sortCover(terms [][]Literal) {
	sort.Slice(terms, func(i, j int) bool {
		return termString(terms[i]) > termString(terms[j])
	})
}

func snapshot(terms []*Term) []Term {
	if terms == nil {
		return nil
	}
	res := make([]Term, len(terms))
	for i, t := range terms {
		res[i] = *t
	}
	return res
}

// Alternatives materializes every tied alternative cover: the essential
// terms plus each non-primary completion from Possibles. A substitution is
// only surfaced if it still covers every minterm at the primary cover's
// size. Each returned cover lists the essential terms first.
func (r *Results) Alternatives() []Cover {
	if len(r.Possibles) < 2 {
		return nil
	}
	var reqTerms [][]Literal
	for _, t := range r.Terms {
		if t.Final == Required {
			reqTerms = append(reqTerms, t.Literals)
		}
	}
	sortCover(reqTerms)
	choices := make([]int, 0, len(r.Possibles))
	for choice := range r.Possibles {
		if choice != 0 {
			choices = append(choices, choice)
		}
	}
	sort.Ints(choices)
	var covers []Cover
	for _, choice := range choices {
		alt := r.Possibles[choice]
		if !r.validCover(reqTerms, alt) {
			continue
		}
		terms := make([][]Literal, 0, len(reqTerms)+len(alt))
		terms = append(terms, reqTerms...)
		added := make([][]Literal, len(alt))
		for i, t := range alt {
			added[i] = t.Literals
		}
		sortCover(added)
		terms = append(terms, added...)
		covers = append(covers, Cover{Terms: terms})
	}
	return covers
}

// validCover checks that the essential terms plus the completion cover
// every non don't-care minterm, at the same size as the primary cover.
func (r *Results) validCover(reqTerms [][]Literal, completion []Term) bool {
	if len(reqTerms)+len(completion) != len(r.Cover.Terms) {
		return false
	}
	covered := make(map[int]bool)
	for _, t := range r.Terms {
		if t.Final == Required {
			for _, s := range t.Source {
				covered[s] = true
			}
		}
	}
	for _, t := range completion {
		for _, s := range t.Source {
			covered[s] = true
		}
	}
	for _, row := range r.careRows {
		if !covered[row] {
			return false
		}
	}
	return true
}
