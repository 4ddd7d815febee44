package cardinality

import "sort"

// Exact counts every distinct line verbatim, keeping a per-line occurrence
// counter of width T. It is the only estimator that supports reporting.
//
// Go's builtin map already hashes its keys at a pluggable point (the
// runtime's hash function for strings); there is no need for the keyed
// [Hasher] here the way NearExact and the HyperLogLog sketch need it,
// since the map itself is never iterated by hash bucket in a way that
// would expose it to adversarial input the way a fixed-seed open-addressed
// table would.
type Exact[T Counter[T]] struct {
	table        map[string]T
	newCounter   func() T
	count        uint64
	leakOnExit   bool
	capacityHint uint64
}

// NewExact constructs an Exact estimator. newCounter returns a
// freshly-initialized counter value (typically "1") for a line's first
// occurrence. capacityHint pre-sizes the table; pass 0 for no hint.
func NewExact[T Counter[T]](newCounter func() T, capacityHint uint64) *Exact[T] {
	return &Exact[T]{
		table:        make(map[string]T, capacityHint),
		newCounter:   newCounter,
		capacityHint: capacityHint,
	}
}

// SetLeakOnExit enables the "leak-on-exit" teardown-avoidance policy: see
// [Exact.Reset]. Off by default, matching library-safe behavior.
func (e *Exact[T]) SetLeakOnExit(leak bool) {
	e.leakOnExit = leak
}

// CountLine implements [Estimator].
func (e *Exact[T]) CountLine(line []byte) {
	// Converting line to a string for the lookup does not allocate: the
	// Go compiler recognizes `m[string(b)]` as a read-only map access and
	// avoids copying b. Both stores below do allocate a key copy: the
	// insert path, and also the hit path, which writes the incremented
	// counter back under string(line), so a repeated line costs one
	// allocation per occurrence.
	if v, ok := e.table[string(line)]; ok {
		e.table[string(line)] = v.Inc()

		return
	}

	e.table[string(line)] = e.newCounter()
	e.count++
}

// Count implements [Estimator].
func (e *Exact[T]) Count() uint64 {
	return e.count
}

// Reset implements [Estimator].
func (e *Exact[T]) Reset() {
	if e.leakOnExit {
		// Dropping the reference and starting a fresh map is cheaper
		// than forcing the runtime to walk and free every bucket of a
		// large map; the old map is left for the garbage collector,
		// which is the Go analogue of the original's std::mem::forget.
		// The fresh map keeps the constructor's capacityHint so a
		// Reset-and-refill cycle doesn't reintroduce the growth/rehash
		// cost the hint was meant to avoid in the first place.
		e.table = make(map[string]T, e.capacityHint)
	} else {
		clear(e.table)
	}

	e.count = 0
}

// Report implements [Reporter]. Order is unspecified; see [Exact.SortedReport].
func (e *Exact[T]) Report() []ReportEntry {
	entries := make([]ReportEntry, 0, len(e.table))

	for line, count := range e.table {
		entries = append(entries, ReportEntry{
			Line:  []byte(line),
			Count: count.Uint64(),
		})
	}

	return entries
}

// SortedReport returns the same entries as [Exact.Report], ordered by line
// bytes lexicographically ascending.
func (e *Exact[T]) SortedReport() []ReportEntry {
	entries := e.Report()

	sort.Slice(entries, func(i, j int) bool {
		return string(entries[i].Line) < string(entries[j].Line)
	})

	return entries
}

var (
	_ Estimator      = (*Exact[Count64])(nil)
	_ Reporter       = (*Exact[Count64])(nil)
	_ SortedReporter = (*Exact[Count64])(nil)
)
