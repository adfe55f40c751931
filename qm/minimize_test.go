package qm

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyInput(t *testing.T) {
	cover, err := Minimize(nil)
	require.NoError(t, err)
	assert.True(t, cover.IsZero())
	assert.Equal(t, "0", cover.String())
}

func TestSingleMinterm(t *testing.T) {
	res, err := New(patterns(4, 0)).MinimizeFull()
	require.NoError(t, err)
	assert.Equal(t, "A'B'C'D'", res.Cover.String())
	assert.Empty(t, res.Possibles)
	assert.Nil(t, res.Alternatives())
}

func TestTautology(t *testing.T) {
	cover, err := Minimize(patterns(3, 0, 1, 2, 3, 4, 5, 6, 7))
	require.NoError(t, err)
	assert.True(t, cover.IsTautology())
	assert.Equal(t, "1", cover.String())
}

func TestMalformedShapes(t *testing.T) {
	_, err := Minimize(mts("A'BC", "AB"))
	assert.ErrorIs(t, err, ErrMalformedInput)

	_, err = Minimize(mts("A'BC", "ABD"))
	assert.ErrorIs(t, err, ErrMalformedInput)

	_, err = Minimize([]Minterm{{Literals: []Literal{{Name: 'A'}, {Name: 'A', Negated: true}}}})
	assert.ErrorIs(t, err, ErrMalformedInput)

	_, err = Minimize([]Minterm{{Literals: []Literal{{Name: '3'}}}})
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestTermCeiling(t *testing.T) {
	pb := New(patterns(4, 0, 1, 2, 5, 6, 7, 9))
	pb.MaxTerms = 4
	_, err := pb.MinimizeFull()
	assert.ErrorIs(t, err, ErrResourceLimit)
}

func TestLiteralCeiling(t *testing.T) {
	lits := make([]Literal, MaxLiterals+1)
	for i := range lits {
		lits[i] = Literal{Name: letterFor(i)}
	}
	_, err := Minimize([]Minterm{{Literals: lits}})
	assert.ErrorIs(t, err, ErrResourceLimit)
}

func letterFor(i int) byte {
	if i < 26 {
		return byte('A' + i)
	}
	return byte('a' + i - 26)
}

func TestDeterminism(t *testing.T) {
	first, err := New(patterns(4, 0, 1, 2, 5, 6, 7, 9)).MinimizeFull()
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		res, err := New(patterns(4, 0, 1, 2, 5, 6, 7, 9)).MinimizeFull()
		require.NoError(t, err)
		assert.Equal(t, first.Cover.String(), res.Cover.String())
		if diff := cmp.Diff(first.Possibles, res.Possibles); diff != "" {
			t.Fatalf("possibles differ between runs (-first +rerun):\n%s", diff)
		}
	}
}

// covers reports whether the conjunction of lits is true for pattern i
// over the given number of variables, A as the high order bit.
func covers(lits []Literal, i, vars int) bool {
	for _, l := range lits {
		bit := i >> uint(vars-1-int(l.Name-'A')) & 1
		if l.Negated == (bit == 1) {
			return false
		}
	}
	return true
}

// coveredSet expands a cover back to the set of patterns it accepts.
func coveredSet(cover Cover, vars int) map[int]bool {
	res := make(map[int]bool)
	for i := 0; i < 1<<uint(vars); i++ {
		for _, term := range cover.Terms {
			if covers(term, i, vars) {
				res[i] = true
				break
			}
		}
	}
	return res
}

var truthTables = []struct {
	vars int
	idx  []int
}{
	{3, []int{3, 4, 5, 6, 7}},       // 248
	{4, []int{0, 1, 2, 5, 6, 7, 9}}, // 743, has tied covers
	{4, []int{0, 1, 4, 6, 7, 8, 9}},
	{4, []int{1, 2, 3, 4, 10, 11}},
	{4, []int{0, 2, 5, 9, 12, 13, 14}},
	{2, []int{2}},
	{3, []int{0, 7}}, // two opposite corners, nothing combines
}

func TestRoundTrip(t *testing.T) {
	for _, tt := range truthTables {
		cover, err := Minimize(patterns(tt.vars, tt.idx...))
		require.NoError(t, err)
		want := make(map[int]bool, len(tt.idx))
		for _, i := range tt.idx {
			want[i] = true
		}
		got := coveredSet(cover, tt.vars)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("cover %s accepts the wrong patterns (-want +got):\n%s", cover, diff)
		}
	}
}

func TestMinimality(t *testing.T) {
	for _, tt := range truthTables {
		cover, err := Minimize(patterns(tt.vars, tt.idx...))
		require.NoError(t, err)
		for drop := range cover.Terms {
			reduced := Cover{}
			for i, term := range cover.Terms {
				if i != drop {
					reduced.Terms = append(reduced.Terms, term)
				}
			}
			got := coveredSet(reduced, tt.vars)
			missing := false
			for _, i := range tt.idx {
				if !got[i] {
					missing = true
					break
				}
			}
			assert.True(t, missing, "term %s of cover %s is redundant",
				termString(cover.Terms[drop]), cover)
		}
	}
}

func TestIdempotence(t *testing.T) {
	for _, tt := range truthTables {
		cover, err := Minimize(patterns(tt.vars, tt.idx...))
		require.NoError(t, err)
		var expanded []int
		for i := 0; i < 1<<uint(tt.vars); i++ {
			for _, term := range cover.Terms {
				if covers(term, i, tt.vars) {
					expanded = append(expanded, i)
					break
				}
			}
		}
		again, err := Minimize(patterns(tt.vars, expanded...))
		require.NoError(t, err)
		assert.LessOrEqual(t, len(again.Terms), len(cover.Terms))
		if diff := cmp.Diff(coveredSet(cover, tt.vars), coveredSet(again, tt.vars)); diff != "" {
			t.Errorf("re-minimizing %s changed the function (-first +again):\n%s", cover, diff)
		}
	}
}

func TestAlternativesValidity(t *testing.T) {
	res, err := New(patterns(4, 0, 1, 2, 5, 6, 7, 9)).MinimizeFull()
	require.NoError(t, err)
	primarySet := coveredSet(res.Cover, 4)
	alts := res.Alternatives()
	require.NotEmpty(t, alts)
	seen := map[string]bool{res.Cover.String(): true}
	for _, alt := range alts {
		assert.Equal(t, len(res.Cover.Terms), len(alt.Terms))
		assert.False(t, seen[alt.String()], "alternative %s repeated", alt)
		seen[alt.String()] = true
		if diff := cmp.Diff(primarySet, coveredSet(alt, 4)); diff != "" {
			t.Errorf("alternative %s covers the wrong patterns (-primary +alt):\n%s", alt, diff)
		}
	}
}
