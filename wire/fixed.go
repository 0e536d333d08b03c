package wire

import "math"

// AppendUint appends the low width bytes of v in big-endian order.
func AppendUint(buf []byte, v uint64, width int) []byte {
	for i := width - 1; i >= 0; i-- {
		buf = append(buf, byte(v>>(8*i)))
	}
	return buf
}

// DecodeUint reads width big-endian bytes from data.
func DecodeUint(data []byte, width int) (uint64, int, error) {
	if len(data) < width {
		return 0, 0, ErrTruncated
	}
	var v uint64
	for i := 0; i < width; i++ {
		v = v<<8 | uint64(data[i])
	}
	return v, width, nil
}

// AppendInt appends the two's-complement encoding of v in width big-endian
// bytes. The value must fit the width; range checking is the schema's job.
func AppendInt(buf []byte, v int64, width int) []byte {
	return AppendUint(buf, uint64(v), width)
}

// DecodeInt reads a width-byte big-endian two's-complement integer,
// sign-extending to int64.
func DecodeInt(data []byte, width int) (int64, int, error) {
	u, n, err := DecodeUint(data, width)
	if err != nil {
		return 0, 0, err
	}
	shift := uint(64 - 8*width)
	return int64(u<<shift) >> shift, n, nil
}

// AppendFloat32 appends the IEEE-754 single-precision encoding of v,
// big-endian.
func AppendFloat32(buf []byte, v float32) []byte {
	return AppendUint(buf, uint64(math.Float32bits(v)), 4)
}

// DecodeFloat32 reads a big-endian IEEE-754 single-precision value.
func DecodeFloat32(data []byte) (float32, int, error) {
	u, n, err := DecodeUint(data, 4)
	if err != nil {
		return 0, 0, err
	}
	return math.Float32frombits(uint32(u)), n, nil
}

// AppendFloat64 appends the IEEE-754 double-precision encoding of v,
// big-endian.
func AppendFloat64(buf []byte, v float64) []byte {
	return AppendUint(buf, math.Float64bits(v), 8)
}

// DecodeFloat64 reads a big-endian IEEE-754 double-precision value.
func DecodeFloat64(data []byte) (float64, int, error) {
	u, n, err := DecodeUint(data, 8)
	if err != nil {
		return 0, 0, err
	}
	return math.Float64frombits(u), n, nil
}
