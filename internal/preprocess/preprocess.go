// Package preprocess implements the optional per-line transforms (trim,
// lowercase) applied before a line reaches a cardinality estimator.
package preprocess

// Transform maps an input line plus a reusable scratch buffer to the
// bytes that should actually be counted. Implementations must not
// allocate per call in steady state; the only permitted allocation is
// scratch's occasional growth, amortized across calls.
type Transform func(line []byte, scratch *[]byte) []byte

// identity returns line unchanged; scratch is untouched.
func identity(line []byte, _ *[]byte) []byte {
	return line
}

// trim returns the subrange of line with leading/trailing ASCII
// whitespace stripped; scratch is untouched since no bytes are rewritten.
func trim(line []byte, _ *[]byte) []byte {
	start := 0
	for start < len(line) && isASCIISpace(line[start]) {
		start++
	}

	end := len(line)
	for end > start && isASCIISpace(line[end-1]) {
		end--
	}

	return line[start:end]
}

// lower writes line with ASCII uppercase mapped to lowercase into
// scratch and returns a view of it. Non-ASCII bytes pass through
// unchanged. scratch is cleared immediately before writing, never
// unconditionally, so repeated calls do not grow it quadratically.
func lower(line []byte, scratch *[]byte) []byte {
	buf := (*scratch)[:0]

	for _, b := range line {
		if b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
		}

		buf = append(buf, b)
	}

	*scratch = buf

	return buf
}

// trimLower composes trim then lower: trim the original bytes first
// (no allocation), then lowercase the trimmed view into scratch.
func trimLower(line []byte, scratch *[]byte) []byte {
	return lower(trim(line, scratch), scratch)
}

// New returns the Transform matching the requested combination of trim
// and lower, selected once up front so CountLine's hot path never
// branches on these flags.
func New(doTrim, doLower bool) Transform {
	switch {
	case doTrim && doLower:
		return trimLower
	case doTrim:
		return trim
	case doLower:
		return lower
	default:
		return identity
	}
}

func isASCIISpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}
