package cardinality

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNearExact_CountsDistinctLines(t *testing.T) {
	t.Parallel()

	n := NewNearExact(NewDeterministicHasher(), 0)

	for i := 0; i < 100000; i++ {
		n.CountLine([]byte(strconv.Itoa(i)))
	}

	require.Equal(t, uint64(100000), n.Count())
}

func TestNearExact_NeverExceedsExact(t *testing.T) {
	t.Parallel()

	lines := []string{"a", "b", "a", "c", "b", "d", "a"}

	hasher := NewDeterministicHasher()

	exact := NewExact(NewCount64, 0)
	near := NewNearExact(hasher, 0)

	for _, l := range lines {
		exact.CountLine([]byte(l))
		near.CountLine([]byte(l))
	}

	require.LessOrEqual(t, near.Count(), exact.Count())
}

func TestNearExact_ResetClearsState(t *testing.T) {
	t.Parallel()

	n := NewNearExact(NewDeterministicHasher(), 0)
	n.CountLine([]byte("a"))
	n.CountLine([]byte("b"))

	n.Reset()

	require.Equal(t, uint64(0), n.Count(), "Count() after Reset")
}
