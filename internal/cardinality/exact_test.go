package cardinality

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExact_CountsDistinctLines(t *testing.T) {
	t.Parallel()

	e := NewExact(NewCount64, 0)

	for _, l := range []string{"three", "two", "three", "two", "three", "one"} {
		e.CountLine([]byte(l))
	}

	require.Equal(t, uint64(3), e.Count())
}

func TestExact_Report_Counts(t *testing.T) {
	t.Parallel()

	e := NewExact(NewCount64, 0)

	for _, l := range []string{"b", "a", "b", "c", "a"} {
		e.CountLine([]byte(l))
	}

	entries := e.SortedReport()

	want := []ReportEntry{
		{Line: []byte("a"), Count: 2},
		{Line: []byte("b"), Count: 2},
		{Line: []byte("c"), Count: 1},
	}

	diff := cmp.Diff(want, entries)
	assert.Empty(t, diff, "sorted report mismatch")
}

func TestExact_ResetClearsState(t *testing.T) {
	t.Parallel()

	e := NewExact(NewCount64, 0)
	e.CountLine([]byte("a"))
	e.CountLine([]byte("b"))

	e.Reset()

	require.Equal(t, uint64(0), e.Count(), "Count() after Reset")
	require.Empty(t, e.Report(), "Report() after Reset")
}

func TestExact_LeakOnExit_ResetStillObservablyClears(t *testing.T) {
	t.Parallel()

	e := NewExact(NewCount64, 0)
	e.SetLeakOnExit(true)

	e.CountLine([]byte("a"))
	e.CountLine([]byte("b"))

	e.Reset()

	require.Equal(t, uint64(0), e.Count(), "Count() after leak-on-exit Reset")
	require.Empty(t, e.Report(), "Report() after leak-on-exit Reset")

	e.CountLine([]byte("c"))
	require.Equal(t, uint64(1), e.Count(), "estimator usable after a leak-on-exit Reset")
}

func TestExact_LeakOnExit_ResetPreservesCapacityHint(t *testing.T) {
	t.Parallel()

	e := NewExact(NewCount64, 1000)
	e.SetLeakOnExit(true)

	e.CountLine([]byte("a"))
	e.Reset()

	require.Equal(t, uint64(1000), e.capacityHint, "Reset must not discard the constructor's capacity hint")
}

func TestExact_Idempotent(t *testing.T) {
	t.Parallel()

	input := []string{"x", "y", "x", "z", "x", "y"}

	e := NewExact(NewCount64, 0)
	for _, l := range input {
		e.CountLine([]byte(l))
	}

	first := e.Count()
	firstReport := e.SortedReport()

	e.Reset()

	for _, l := range input {
		e.CountLine([]byte(l))
	}

	second := e.Count()
	secondReport := e.SortedReport()

	require.Equal(t, first, second, "count differs across reset+reprocess")

	diff := cmp.Diff(firstReport, secondReport)
	assert.Empty(t, diff, "report differs across reset+reprocess")
}

func TestExact_OrderIndependence(t *testing.T) {
	t.Parallel()

	lines := make([]string, 0, 200)
	for i := 0; i < 200; i++ {
		lines = append(lines, strconv.Itoa(i%50))
	}

	forward := NewExact(NewCount64, 0)
	for _, l := range lines {
		forward.CountLine([]byte(l))
	}

	reversed := NewExact(NewCount64, 0)
	for i := len(lines) - 1; i >= 0; i-- {
		reversed.CountLine([]byte(lines[i]))
	}

	require.Equal(t, forward.Count(), reversed.Count(), "order dependence")
}

func TestCount128_CarriesOnOverflow(t *testing.T) {
	t.Parallel()

	c := Count128{Hi: 0, Lo: ^uint64(0)}
	c = c.Inc()

	require.Equal(t, Count128{Hi: 1, Lo: 0}, c)
	require.Equal(t, "18446744073709551616", c.String())
}

func TestPreviousPowerOfTwo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		n    uint64
		want uint64
	}{
		{"zero", 0, 0},
		{"one", 1, 1},
		{"two", 2, 2},
		{"three", 3, 2},
		{"fifteen", 15, 8},
		{"sixteen", 16, 16},
		{"seventeen", 17, 16},
		{"justBelow64Ki", 65535, 32768},
		{"exactly64Ki", 65536, 65536},
		{"justAbove64Ki", 65537, 65536},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.want, PreviousPowerOfTwo(tc.n))
		})
	}
}
