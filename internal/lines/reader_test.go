package lines

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalk_SplitsOnNewline(t *testing.T) {
	t.Parallel()

	var got []string

	err := Walk(strings.NewReader("a\nb\nc"), func(line []byte) error {
		got = append(got, string(line))

		return nil
	})
	require.NoError(t, err)

	diff := cmp.Diff([]string{"a", "b", "c"}, got)
	assert.Empty(t, diff, "line split mismatch")
}

func TestWalk_TrailingNewlineNoEmptyLine(t *testing.T) {
	t.Parallel()

	var got []string

	err := Walk(strings.NewReader("a\nb\n"), func(line []byte) error {
		got = append(got, string(line))

		return nil
	})
	require.NoError(t, err)

	require.Len(t, got, 2, "no trailing empty line")
}

func TestWalk_EmptyInput(t *testing.T) {
	t.Parallel()

	var got []string

	err := Walk(strings.NewReader(""), func(line []byte) error {
		got = append(got, string(line))

		return nil
	})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestWalk_PropagatesCallbackError(t *testing.T) {
	t.Parallel()

	sentinel := errStop{}

	err := Walk(strings.NewReader("a\nb\n"), func(line []byte) error {
		return sentinel
	})

	require.ErrorIs(t, err, sentinel)
}

type errStop struct{}

func (errStop) Error() string { return "stop" }
