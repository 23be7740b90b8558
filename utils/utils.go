// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: utils.go: zero-alloc helpers for cold-path output & payloads
//
// Purpose:
//   - Integer formatting without fmt/strconv for the debug and bench output.
//   - Raw stderr writes backing the debug package.
//   - A 64-bit mixer used to derive benchmark payloads from a counter.
//
// ⚠️ None of these are called from the channel hot path.
// ─────────────────────────────────────────────────────────────────────────────

package utils

import (
	"syscall"
	"unsafe"
)

///////////////////////////////////////////////////////////////////////////////
// Conversion Utilities: Zero-Alloc Casts
///////////////////////////////////////////////////////////////////////////////

// B2s converts a []byte to a string **without** allocation.
// ⚠️ Caller must ensure the input slice remains valid and unchanged.
//
//go:nosplit
//go:inline
func B2s(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

///////////////////////////////////////////////////////////////////////////////
// Integer Formatting
///////////////////////////////////////////////////////////////////////////////

// Itoa formats n in base 10.  Only the returned string is allocated.
func Itoa(n int) string {
	if n < 0 {
		return "-" + Utoa(uint64(-n))
	}
	return Utoa(uint64(n))
}

// Utoa formats an unsigned 64-bit value in base 10.
func Utoa(u uint64) string {
	var buf [20]byte
	i := len(buf)
	for u >= 10 {
		i--
		buf[i] = byte('0' + u%10)
		u /= 10
	}
	i--
	buf[i] = byte('0' + u)
	return string(buf[i:])
}

// Ftoa2 formats f with exactly two decimals (ns/op style output).
func Ftoa2(f float64) string {
	neg := f < 0
	if neg {
		f = -f
	}
	cents := uint64(f*100 + 0.5)
	frac := cents % 100
	s := Utoa(cents/100) + "." + string([]byte{byte('0' + frac/10), byte('0' + frac%10)})
	if neg && cents != 0 {
		return "-" + s
	}
	return s
}

///////////////////////////////////////////////////////////////////////////////
// Output
///////////////////////////////////////////////////////////////////////////////

// PrintWarning writes msg straight to stderr (fd 2), bypassing os.File and
// fmt.  Write errors are ignored; there is nowhere left to report them.
func PrintWarning(msg string) {
	if len(msg) == 0 {
		return
	}
	_, _ = syscall.Write(2, unsafe.Slice(unsafe.StringData(msg), len(msg)))
}

///////////////////////////////////////////////////////////////////////////////
// Hash & Mixers
///////////////////////////////////////////////////////////////////////////////

// Mix64 applies a Murmur3-style avalanche to a 64-bit value.
//
//go:nosplit
//go:inline
func Mix64(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}
