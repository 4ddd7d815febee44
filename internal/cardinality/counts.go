package cardinality

import (
	"math/big"
	"strconv"
)

// Counter is an incrementable occurrence counter of some fixed integer
// width. Each concrete width below implements it, mirroring the original
// engine's ability to pick an 8-, 16-, 32-, 64-, word-, or 128-bit report
// counter depending on how large per-line occurrence counts are expected
// to get.
type Counter[T any] interface {
	// Inc returns the counter incremented by one.
	Inc() T
	// Uint64 returns the counter's value, saturating at the maximum
	// representable value for narrower widths.
	Uint64() uint64
	String() string
}

// Count8 is an 8-bit occurrence counter. Intended only for inputs known
// to have low per-line repeat counts. Inc saturates at the type's max
// value rather than wrapping, so Uint64 never reports a count lower than
// one that has already been observed.
type Count8 uint8

func NewCount8() Count8 { return 1 }

func (c Count8) Inc() Count8 {
	if c == ^Count8(0) {
		return c
	}

	return c + 1
}

func (c Count8) Uint64() uint64 { return uint64(c) }
func (c Count8) String() string { return strconv.FormatUint(uint64(c), 10) }

// Count16 is a 16-bit occurrence counter. Inc saturates; see [Count8].
type Count16 uint16

func NewCount16() Count16 { return 1 }

func (c Count16) Inc() Count16 {
	if c == ^Count16(0) {
		return c
	}

	return c + 1
}

func (c Count16) Uint64() uint64 { return uint64(c) }
func (c Count16) String() string { return strconv.FormatUint(uint64(c), 10) }

// Count32 is a 32-bit occurrence counter. Inc saturates; see [Count8].
type Count32 uint32

func NewCount32() Count32 { return 1 }

func (c Count32) Inc() Count32 {
	if c == ^Count32(0) {
		return c
	}

	return c + 1
}

func (c Count32) Uint64() uint64 { return uint64(c) }
func (c Count32) String() string { return strconv.FormatUint(uint64(c), 10) }

// Count64 is a 64-bit occurrence counter: the default width used by the
// CLI driver. Its own range equals Uint64's return type, so no distinct
// counter value can actually overflow it in practice; Inc still saturates
// for consistency with the narrower widths.
type Count64 uint64

func NewCount64() Count64 { return 1 }

func (c Count64) Inc() Count64 {
	if c == ^Count64(0) {
		return c
	}

	return c + 1
}

func (c Count64) Uint64() uint64 { return uint64(c) }
func (c Count64) String() string { return strconv.FormatUint(uint64(c), 10) }

// CountWord is a platform-word-sized occurrence counter (uint). Inc
// saturates; see [Count8].
type CountWord uint

func NewCountWord() CountWord { return 1 }

func (c CountWord) Inc() CountWord {
	if c == ^CountWord(0) {
		return c
	}

	return c + 1
}

func (c CountWord) Uint64() uint64 { return uint64(c) }
func (c CountWord) String() string { return strconv.FormatUint(uint64(c), 10) }

// Count128 is a 128-bit occurrence counter, for inputs where a single
// line may repeat more than 2^64 times.
type Count128 struct {
	Hi, Lo uint64
}

func NewCount128() Count128 {
	return Count128{Lo: 1}
}

// Inc returns the counter incremented by one, carrying into Hi on Lo
// overflow.
func (c Count128) Inc() Count128 {
	lo := c.Lo + 1
	hi := c.Hi

	if lo == 0 {
		hi++
	}

	return Count128{Hi: hi, Lo: lo}
}

// Uint64 saturates at math.MaxUint64 if Hi is non-zero.
func (c Count128) Uint64() uint64 {
	if c.Hi != 0 {
		return ^uint64(0)
	}

	return c.Lo
}

func (c Count128) String() string {
	v := new(big.Int).Lsh(new(big.Int).SetUint64(c.Hi), 64)
	v.Or(v, new(big.Int).SetUint64(c.Lo))

	return v.String()
}
