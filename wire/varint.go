// Package wire provides the low-level byte packing used by the schema codecs:
// a 7-bit-per-byte varint, big-endian fixed-width integers, and IEEE-754
// float packing. All decode functions report how many bytes they consumed so
// callers can thread the remaining slice forward.
package wire

import (
	"errors"
	"math/big"
)

// Maximum number of bytes for a varint-encoded uint64: ceil(64/7) = 10.
const MaxVarintLen64 = 10

var (
	// ErrTruncated indicates the input ended before the value was complete.
	ErrTruncated = errors.New("wire: truncated input")

	// ErrVarintOverflow indicates a varint does not fit in a uint64.
	ErrVarintOverflow = errors.New("wire: varint overflows uint64")
)

// AppendUvarint appends the varint encoding of v to buf and returns the
// extended buffer.
//
// The encoding uses 7 bits per byte, with the MSB as a continuation flag.
// Bytes are ordered from least significant to most significant:
//
//   - 0 → [0x00]
//   - 127 → [0x7f]
//   - 128 → [0x80, 0x01]
//   - 300 → [0xac, 0x02]
func AppendUvarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

// DecodeUvarint decodes a varint from data and returns the value and the
// number of bytes consumed. Input that ends while the continuation bit is
// still set is a hard failure (ErrTruncated), never a silent partial read.
func DecodeUvarint(data []byte) (uint64, int, error) {
	if len(data) == 0 {
		return 0, 0, ErrTruncated
	}
	// fast path for single-byte varints
	if data[0] < 0x80 {
		return uint64(data[0]), 1, nil
	}
	var v uint64
	var shift uint
	for i := 0; i < len(data); i++ {
		b := data[i]
		if i == MaxVarintLen64-1 {
			// the 10th byte may only contribute bit 63
			if b > 1 {
				return 0, 0, ErrVarintOverflow
			}
		} else if i >= MaxVarintLen64 {
			return 0, 0, ErrVarintOverflow
		}
		v |= uint64(b&0x7f) << shift
		if b < 0x80 {
			return v, i + 1, nil
		}
		shift += 7
	}
	return 0, 0, ErrTruncated
}

// AppendUvarintBig appends the varint encoding of the non-negative big
// integer v. The zero value encodes as a single zero byte.
func AppendUvarintBig(buf []byte, v *big.Int) []byte {
	if v.Sign() == 0 {
		return append(buf, 0x00)
	}
	t := new(big.Int).Set(v)
	low := new(big.Int)
	for t.BitLen() > 7 {
		low.And(t, sevenBitMask)
		buf = append(buf, byte(low.Uint64())|0x80)
		t.Rsh(t, 7)
	}
	return append(buf, byte(t.Uint64()))
}

// DecodeUvarintBig decodes an arbitrary-precision varint from data and
// returns the value and the number of bytes consumed.
func DecodeUvarintBig(data []byte) (*big.Int, int, error) {
	if len(data) == 0 {
		return nil, 0, ErrTruncated
	}
	v := new(big.Int)
	chunk := new(big.Int)
	shift := uint(0)
	for i := 0; i < len(data); i++ {
		b := data[i]
		chunk.SetUint64(uint64(b & 0x7f))
		chunk.Lsh(chunk, shift)
		v.Or(v, chunk)
		if b < 0x80 {
			return v, i + 1, nil
		}
		shift += 7
	}
	return nil, 0, ErrTruncated
}

var sevenBitMask = big.NewInt(0x7f)
