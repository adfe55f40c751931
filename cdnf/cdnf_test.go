package cdnf

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmbriody/bookofnumbers/qm"
)

func TestCanonical(t *testing.T) {
	res, err := Canonical(big.NewInt(248))
	require.NoError(t, err)
	assert.Equal(t, "ABC' + ABC + AB'C' + AB'C + A'BC", res)

	res, err = CanonicalOpts(big.NewInt(248), false, false)
	require.NoError(t, err)
	assert.Equal(t, "ABC' + ABC + AB'C + A'BC + A'B'C", res)

	res, err = CanonicalOpts(big.NewInt(248), true, true)
	require.NoError(t, err)
	assert.Equal(t, "f(248) = ABC' + ABC + AB'C' + AB'C + A'BC", res)
}

func TestCanonicalSmall(t *testing.T) {
	// At least two variables, even when one bit would do.
	res, err := Canonical(big.NewInt(2))
	require.NoError(t, err)
	assert.Equal(t, "A'B", res)

	res, err = Canonical(big.NewInt(0))
	require.NoError(t, err)
	assert.Equal(t, "0", res)

	_, err = Canonical(big.NewInt(-1))
	assert.ErrorIs(t, err, qm.ErrMalformedInput)
}

func TestCanonicalBig(t *testing.T) {
	// Bit 70 set: seven variables, one minterm for pattern 1000110.
	n := new(big.Int).Lsh(big.NewInt(1), 70)
	res, err := Canonical(n)
	require.NoError(t, err)
	assert.Equal(t, "AB'C'D'EFG'", res)
}

func TestToCDNF(t *testing.T) {
	res, err := ToCDNF("A + BD'", false)
	require.NoError(t, err)
	assert.Equal(t, "ABD' + ABD + AB'D' + AB'D + A'BD'", res)

	res, err = ToCDNF("r + su'", false)
	require.NoError(t, err)
	assert.Equal(t, "rsu' + rsu + rs'u' + rs'u + r'su'", res)
}

func TestToCDNFRanged(t *testing.T) {
	res, err := ToCDNF("A + BD'", true)
	require.NoError(t, err)
	assert.Equal(t, "ABCD' + ABCD + ABC'D' + ABC'D + AB'CD' + AB'CD + AB'C'D' + AB'C'D + A'BCD' + A'BC'D'", res)
}

func TestToCDNFRangedBlowsUp(t *testing.T) {
	_, err := ToCDNF("A + Z", true)
	assert.ErrorIs(t, err, qm.ErrResourceLimit)
}

func TestToCDNFRoundTrip(t *testing.T) {
	// Expanding a minimized form and reducing it again is the identity.
	expr, err := ToCDNF("BC + A", false)
	require.NoError(t, err)
	res, err := QuineMC(expr)
	require.NoError(t, err)
	assert.Equal(t, "BC + A", res)
}

func TestParse(t *testing.T) {
	minterms, err := Parse("ABC' + A'BC")
	require.NoError(t, err)
	require.Len(t, minterms, 2)
	assert.Equal(t, []qm.Literal{{Name: 'A'}, {Name: 'B'}, {Name: 'C', Negated: true}},
		minterms[0].Literals)
	assert.False(t, minterms[0].DontCare)

	_, err = Parse("AB + 1C")
	assert.ErrorIs(t, err, qm.ErrMalformedInput)

	_, err = Parse("   ")
	assert.ErrorIs(t, err, qm.ErrMalformedInput)
}

func TestFromIndexes(t *testing.T) {
	minterms, err := FromIndexes([]int{1, 2, 5}, []int{3, 7}, true)
	require.NoError(t, err)
	require.Len(t, minterms, 5)
	assert.Equal(t, "A'B'C", termStr(minterms[0]))
	assert.Equal(t, "AB'C", termStr(minterms[2]))
	assert.False(t, minterms[2].DontCare)
	assert.True(t, minterms[3].DontCare)

	_, err = FromIndexes([]int{-1}, nil, true)
	assert.ErrorIs(t, err, qm.ErrMalformedInput)
}

func termStr(m qm.Minterm) string {
	var s string
	for _, l := range m.Literals {
		s += l.String()
	}
	return s
}
