package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/nlpvocab/types"
)

var sampleTokens = []string{"1", " ", "2", " ", "1", "\n", "2", "\t", "3", "."}

func TestNew_Empty(t *testing.T) {
	t.Parallel()

	v := New()
	assert.Equal(t, []string{}, v.Tokens())
	assert.Equal(t, 0, v.Len())
	assert.Equal(t, int64(0), v.Total())
}

func TestZeroValue_IsUsable(t *testing.T) {
	t.Parallel()

	var v Vocabulary
	assert.Empty(t, v.Tokens())
	v.Update([]string{"a", "a"})
	assert.Equal(t, int64(2), v.Count("a"))
}

func TestUpdate_CountsEveryOccurrence(t *testing.T) {
	t.Parallel()

	v := New()
	v.Update(sampleTokens)

	assert.Equal(t, int64(2), v.Count(" "))
	assert.Equal(t, int64(2), v.Count("1"))
	assert.Equal(t, int64(2), v.Count("2"))
	assert.Equal(t, int64(1), v.Count("\t"))
	assert.Equal(t, int64(0), v.Count("missing"))
	assert.Equal(t, 7, v.Len())
	assert.Equal(t, int64(10), v.Total())
	assert.True(t, v.Contains("."))
	assert.False(t, v.Contains("missing"))
}

func TestTokens_CanonicalOrder(t *testing.T) {
	t.Parallel()

	v := New()
	v.Update(sampleTokens)

	assert.Equal(t, []string{" ", "1", "2", "\t", "\n", ".", "3"}, v.Tokens())
}

func TestTokens_TiesBrokenByCodePoint(t *testing.T) {
	t.Parallel()

	v := New("я", "a", "Z", "ä", "~", "中")
	assert.Equal(t, []string{"Z", "a", "~", "ä", "я", "中"}, v.Tokens())
}

func TestTokens_InsertionOrderIndependent(t *testing.T) {
	t.Parallel()

	reversed := make([]string, len(sampleTokens))
	for i, tok := range sampleTokens {
		reversed[len(sampleTokens)-1-i] = tok
	}

	assert.Equal(t, New(sampleTokens...).Tokens(), New(reversed...).Tokens())
}

func TestNew_SeedsCounts(t *testing.T) {
	t.Parallel()

	v := New("1", " ", "2", " ", "1")
	assert.Equal(t, []string{" ", "1", "2"}, v.Tokens())
}

func TestFromCounts(t *testing.T) {
	t.Parallel()

	v, err := FromCounts(map[string]int64{"a": 3, "b": 0, "c": 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, v.Tokens())

	_, err = FromCounts(map[string]int64{"a": -1})
	assert.True(t, types.IsValidation(err))
}

func TestUpdateCounts_RejectsNegativeWithoutMutation(t *testing.T) {
	t.Parallel()

	v := New("a")
	err := v.UpdateCounts(map[string]int64{"a": 5, "b": -2})
	assert.True(t, types.IsValidation(err))
	assert.Equal(t, int64(1), v.Count("a"))
	assert.False(t, v.Contains("b"))
}

func TestEntriesAndMostCommon(t *testing.T) {
	t.Parallel()

	v := New(sampleTokens...)
	assert.Equal(t, []Entry{{" ", 2}, {"1", 2}}, v.MostCommon(2))
	assert.Len(t, v.MostCommon(0), 7)
	assert.Len(t, v.MostCommon(100), 7)
	assert.Equal(t, Entry{"3", 1}, v.Entries()[6])
}

func TestClone_IsIndependent(t *testing.T) {
	t.Parallel()

	v := New("a", "b")
	c := v.Clone()
	c.Update([]string{"a"})

	assert.Equal(t, int64(1), v.Count("a"))
	assert.Equal(t, int64(2), c.Count("a"))
	assert.False(t, v.Equal(c))
}

func TestAdd(t *testing.T) {
	t.Parallel()

	v1 := New("1", " ", "2", " ", "1")
	v2 := New("\n", "2", "\t", "3", ".")
	sum := v1.Add(v2)

	assert.Equal(t, []string{" ", "1", "2", "\t", "\n", ".", "3"}, sum.Tokens())
	assert.Equal(t, int64(2), sum.Count("2"))

	assert.Equal(t, []string{" ", "1", "2"}, v1.Tokens())
	assert.Equal(t, []string{"\t", "\n", ".", "2", "3"}, v2.Tokens())
}

func TestMerge_InPlace(t *testing.T) {
	t.Parallel()

	acc := New()
	acc.Merge(New("1", " ", "2", " ", "1"))
	acc.Merge(New("\n", "2", "\t", "3", "."))
	acc.Merge(nil)

	assert.True(t, acc.Equal(New(sampleTokens...)))

	self := New("a", "b", "a")
	self.Merge(self)
	assert.Equal(t, int64(4), self.Count("a"))
	assert.Equal(t, int64(2), self.Count("b"))
}

func TestSubtract(t *testing.T) {
	t.Parallel()

	left := New("a", "a", "a", "b", "c")
	right := New("a", "b", "b", "d")
	diff := left.Subtract(right)

	assert.Equal(t, int64(2), diff.Count("a"))
	assert.False(t, diff.Contains("b"))
	assert.Equal(t, int64(1), diff.Count("c"))
	assert.False(t, diff.Contains("d"))
	assert.Equal(t, 2, diff.Len())

	assert.Equal(t, int64(3), left.Count("a"))
	assert.Equal(t, int64(2), right.Count("b"))
}

func TestUnion(t *testing.T) {
	t.Parallel()

	left := New("a", "a", "b")
	right := New("a", "b", "b", "b", "c")
	union := left.Union(right)

	assert.Equal(t, int64(2), union.Count("a"))
	assert.Equal(t, int64(3), union.Count("b"))
	assert.Equal(t, int64(1), union.Count("c"))
	assert.Equal(t, int64(1), left.Count("b"))
}

func TestIntersect(t *testing.T) {
	t.Parallel()

	left := New("a", "a", "b", "x")
	right := New("a", "b", "b", "b", "c")
	inter := left.Intersect(right)

	assert.Equal(t, []string{"a", "b"}, inter.Tokens())
	assert.Equal(t, int64(1), inter.Count("a"))
	assert.Equal(t, int64(1), inter.Count("b"))
	assert.Equal(t, 3, left.Len())
}

func TestArithmetic_NilOperand(t *testing.T) {
	t.Parallel()

	v := New("a")
	assert.True(t, v.Add(nil).Equal(v))
	assert.True(t, v.Subtract(nil).Equal(v))
	assert.True(t, v.Union(nil).Equal(v))
	assert.Equal(t, 0, v.Intersect(nil).Len())
}

func TestUnaryOperations_Unsupported(t *testing.T) {
	t.Parallel()

	v := New("a")

	neg, err := v.Negate()
	assert.Nil(t, neg)
	assert.True(t, types.IsUnsupported(err))

	pos, err := v.Plus()
	assert.Nil(t, pos)
	assert.True(t, types.IsUnsupported(err))
}
