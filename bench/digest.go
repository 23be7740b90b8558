// digest.go
//
// Keccak-256 running digest over a stream of uint64 payloads.  The
// producer and the consumer of a scenario each keep one; equal sums prove
// the consumer saw every value exactly once and in order.  Values are
// staged in a block so the sponge absorbs large writes instead of 8-byte
// ones.

package bench

import (
	"encoding/binary"
	"hash"

	"golang.org/x/crypto/sha3"
)

const digestBlock = 512 // values per absorb

// Digest accumulates values in order.  The zero value is not usable; call
// NewDigest.
type Digest struct {
	h     hash.Hash
	buf   [digestBlock * 8]byte
	n     int
	count uint64
}

// NewDigest returns an empty digest.
func NewDigest() *Digest {
	return &Digest{h: sha3.NewLegacyKeccak256()}
}

// Add absorbs v.
func (d *Digest) Add(v uint64) {
	binary.LittleEndian.PutUint64(d.buf[d.n:], v)
	d.n += 8
	d.count++
	if d.n == len(d.buf) {
		d.h.Write(d.buf[:])
		d.n = 0
	}
}

// Count returns how many values were absorbed.
func (d *Digest) Count() uint64 { return d.count }

// Sum flushes staged values and returns the Keccak-256 of the stream.
// Further Adds continue the same stream.
func (d *Digest) Sum() [32]byte {
	if d.n > 0 {
		d.h.Write(d.buf[:d.n])
		d.n = 0
	}
	var out [32]byte
	d.h.Sum(out[:0])
	return out
}

// Equal reports whether two digests absorbed the same stream.
func (d *Digest) Equal(o *Digest) bool {
	return d.count == o.count && d.Sum() == o.Sum()
}
