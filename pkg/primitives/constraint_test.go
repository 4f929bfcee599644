package primitives

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var smallWords = []string{
	"crane", "trace", "slate", "least", "geese", "fleet", "spelt", "eerie",
	"abbey", "robot", "llama", "steel", "stale", "tales", "teals", "zesty",
}

// feedbackRows returns the rows produced by guessing every small word against answer.
func feedbackRows(t *testing.T, answer string) []Constraint {
	t.Helper()
	a := MustWord(answer)
	var rows []Constraint
	for _, g := range smallWords {
		rows = append(rows, Feedback(MustWord(g), a))
	}
	return rows
}

func TestConstraint_MergeIsAssociative(t *testing.T) {
	rows := append(feedbackRows(t, "steel"), feedbackRows(t, "llama")...)

	for i := 0; i+2 < len(rows); i++ {
		a, b, c := rows[i], rows[i+1], rows[i+2]

		left := a.Clone()
		left.Merge(&b)
		left.Merge(&c)

		bc := b.Clone()
		bc.Merge(&c)
		right := a.Clone()
		right.Merge(&bc)

		assert.Truef(t, left.Equal(&right), "merge not associative at %d:\n%s\nvs\n%s", i, left.String(), right.String())
	}
}

func TestConstraint_MergeIsIdempotent(t *testing.T) {
	for _, row := range feedbackRows(t, "eerie") {
		once := NewConstraint(5)
		once.Merge(&row)

		twice := once.Clone()
		twice.Merge(&row)

		assert.True(t, once.Equal(&twice))
	}
}

func TestConstraint_MergeRatchetsBounds(t *testing.T) {
	acc := NewConstraint(5)
	acc.raiseMin('e'-minLetter, 2)
	acc.lowerMax('e'-minLetter, 2)
	acc.lowerMax('s'-minLetter, 1)

	weaker := NewConstraint(5)
	weaker.raiseMin('e'-minLetter, 1)
	weaker.lowerMax('e'-minLetter, 3)
	weaker.lowerMax('s'-minLetter, 4)
	acc.Merge(&weaker)

	minE, ok := acc.MinOccurrence('e')
	require.True(t, ok)
	assert.Equal(t, 2, minE)
	maxE, ok := acc.MaxOccurrence('e')
	require.True(t, ok)
	assert.Equal(t, 2, maxE)
	maxS, _ := acc.MaxOccurrence('s')
	assert.Equal(t, 1, maxS)

	stronger := NewConstraint(5)
	stronger.raiseMin('e'-minLetter, 3)
	stronger.lowerMax('s'-minLetter, 0)
	acc.Merge(&stronger)

	minE, _ = acc.MinOccurrence('e')
	assert.Equal(t, 3, minE)
	maxS, _ = acc.MaxOccurrence('s')
	assert.Equal(t, 0, maxS)
}

func TestConstraint_MergeKeepsExact(t *testing.T) {
	acc := NewConstraint(5)
	green, err := ParseRow("-x a -y -z -w", 5)
	require.NoError(t, err)
	acc.Merge(&green)

	gray, err := ParseRow("-q -r -s -t -u", 5)
	require.NoError(t, err)
	acc.Merge(&gray)

	assert.Equal(t, byte('a'), acc.Position(1).Exact)
	assert.True(t, acc.Position(0).Excluded.Contains('x'))
	assert.True(t, acc.Position(0).Excluded.Contains('q'))
}

func TestConstraint_MergeUnionsExcludedWithExact(t *testing.T) {
	row, err := ParseRow("a~a -x -x -x -x", 5)
	require.NoError(t, err)
	assert.Equal(t, byte('a'), row.Position(0).Exact)
	assert.True(t, row.Position(0).Excluded.Contains('a'))

	acc := NewConstraint(5)
	acc.Merge(&row)
	assert.Equal(t, byte('a'), acc.Position(0).Exact)
	assert.True(t, acc.Position(0).Excluded.Contains('a'), "excluded letters are kept next to an exact one")
	assert.False(t, acc.Allows(MustWord("abbey")))
	assert.False(t, acc.Allows(MustWord("ample")))
}

func TestConstraint_MergePanicsOnLengthMismatch(t *testing.T) {
	a := NewConstraint(5)
	b := NewConstraint(4)
	assert.Panics(t, func() { a.Merge(&b) })
}

func TestConstraint_AllowsMaxOccurrence(t *testing.T) {
	c := NewConstraint(5)
	c.lowerMax('e'-minLetter, 1)

	tests := []struct {
		word string
		want bool
	}{
		{"geese", false},
		{"fleet", false},
		{"eerie", false},
		{"spelt", true},
		{"crane", true},
		{"robot", true},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Allows(MustWord(tt.word)))
		})
	}
}

func TestConstraint_EmptyAllowsEverything(t *testing.T) {
	c := NewConstraint(5)
	assert.True(t, c.IsEmpty())
	for _, w := range smallWords {
		assert.True(t, c.Allows(MustWord(w)), w)
	}
	assert.False(t, c.Allows(MustWord("four")), "wrong length is never allowed")
}

func TestConstraint_Reset(t *testing.T) {
	c := Feedback(MustWord("crane"), MustWord("trace"))
	require.False(t, c.IsEmpty())
	c.Reset()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 5, c.Len())
}
