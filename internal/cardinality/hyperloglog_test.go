package cardinality

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckHLLSize_Bits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		size uint64
		bits uint
	}{
		{16, 4},
		{32, 5},
		{64, 6},
		{128, 7},
		{256, 8},
	}

	for _, tc := range tests {
		t.Run(strconv.FormatUint(tc.size, 10), func(t *testing.T) {
			t.Parallel()

			info, err := checkHLLSize(tc.size)
			require.NoError(t, err)
			require.Equal(t, tc.bits, info.bits)
		})
	}
}

func TestCheckHLLSize_Mask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		size uint64
		mask uint64
	}{
		{16, 0x0FFFFFFFFFFFFFFF},
		{32, 0x07FFFFFFFFFFFFFF},
		{64, 0x03FFFFFFFFFFFFFF},
		{128, 0x01FFFFFFFFFFFFFF},
		{256, 0x00FFFFFFFFFFFFFF},
	}

	for _, tc := range tests {
		t.Run(strconv.FormatUint(tc.size, 10), func(t *testing.T) {
			t.Parallel()

			info, err := checkHLLSize(tc.size)
			require.NoError(t, err)
			require.Equal(t, tc.mask, info.mask)
		})
	}
}

func TestCheckHLLSize_RejectsNonPowerOfTwo(t *testing.T) {
	t.Parallel()

	_, err := checkHLLSize(100)
	require.Error(t, err, "expected error for non-power-of-two size")
}

func TestCheckHLLSize_RejectsTooSmall(t *testing.T) {
	t.Parallel()

	_, err := checkHLLSize(8)
	require.Error(t, err, "expected error for size < 16")
}

func TestHyperLogLog_LeftBits(t *testing.T) {
	t.Parallel()

	h16, err := NewHyperLogLog(NewDeterministicHasher(), 16)
	require.NoError(t, err)
	require.Equal(t, uint64(0x05), h16.leftBits(0x5FFFFFFFFFFFFFFF))

	h256, err := NewHyperLogLog(NewDeterministicHasher(), 256)
	require.NoError(t, err)
	require.Equal(t, uint64(0x05), h256.leftBits(0x05FFFFFFFFFFFFFF))
}

func TestHyperLogLog_RightBits(t *testing.T) {
	t.Parallel()

	h16, err := NewHyperLogLog(NewDeterministicHasher(), 16)
	require.NoError(t, err)
	require.Equal(t, uint64(0x0876543210EDCBA9), h16.rightBits(0xF876543210EDCBA9))

	h256, err := NewHyperLogLog(NewDeterministicHasher(), 256)
	require.NoError(t, err)
	require.Equal(t, uint64(0x0076543210EDCBA9), h256.rightBits(0xFF76543210EDCBA9))
}

// TestHyperLogLog_EstimateWithinBound exercises spec scenario 5: one
// million distinct 16-byte tokens should estimate within +-30% with a
// default-sized HLL sketch.
func TestHyperLogLog_EstimateWithinBound(t *testing.T) {
	h, err := NewHyperLogLog(NewDeterministicHasher(), DefaultHLLSize)
	require.NoError(t, err)

	const n = 1_000_000

	rng := rand.New(rand.NewSource(42))
	buf := make([]byte, 16)

	for i := 0; i < n; i++ {
		rng.Read(buf)
		h.CountLine(buf)
	}

	est := h.Count()

	low := uint64(float64(n) * 0.70)
	high := uint64(float64(n) * 1.30)

	require.GreaterOrEqual(t, est, low)
	require.LessOrEqual(t, est, high)
}

func TestHyperLogLog_ResetZeroesRegisters(t *testing.T) {
	t.Parallel()

	h, err := NewHyperLogLog(NewDeterministicHasher(), 64)
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		h.CountLine([]byte(strconv.Itoa(i)))
	}

	h.Reset()

	require.Equal(t, make([]uint8, 64), h.counters)
}

func TestHyperLogLog_OrderIndependence(t *testing.T) {
	t.Parallel()

	lines := make([][]byte, 0, 500)
	for i := 0; i < 500; i++ {
		lines = append(lines, []byte(strconv.Itoa(i)))
	}

	hasher := NewDeterministicHasher()

	h1, err := NewHyperLogLog(hasher, 64)
	require.NoError(t, err)

	for _, l := range lines {
		h1.CountLine(l)
	}

	h2, err := NewHyperLogLog(hasher, 64)
	require.NoError(t, err)

	for i := len(lines) - 1; i >= 0; i-- {
		h2.CountLine(lines[i])
	}

	require.Equal(t, h1.Count(), h2.Count(), "order dependence")
}
