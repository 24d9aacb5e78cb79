package rcode

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Ext is a decoded ext-tagged value.
type Ext struct {
	Type int8
	Data []byte
}

// Pair is one decoded map entry.  Map entries keep their wire order.
type Pair struct {
	Key   any
	Value any
}

// Unpacker decodes a buffer produced by a Packer.  Decoded byte slices
// alias the input buffer.
type Unpacker struct {
	buf []byte
	off int
}

func NewUnpacker(b []byte) *Unpacker {
	return &Unpacker{buf: b}
}

// Done returns true when the buffer is exhausted.
func (u *Unpacker) Done() bool { return u.off >= len(u.buf) }

func (u *Unpacker) next() (byte, error) {
	if u.off >= len(u.buf) {
		return 0, ErrTruncated
	}
	c := u.buf[u.off]
	u.off++
	return c, nil
}

func (u *Unpacker) take(n int) ([]byte, error) {
	if n < 0 || u.off+n > len(u.buf) {
		return nil, ErrTruncated
	}
	b := u.buf[u.off : u.off+n]
	u.off += n
	return b, nil
}

func (u *Unpacker) takeUint(width int) (uint64, error) {
	b, err := u.take(width)
	if err != nil {
		return 0, err
	}
	switch width {
	case 1:
		return uint64(b[0]), nil
	case 2:
		return uint64(binary.BigEndian.Uint16(b)), nil
	case 4:
		return uint64(binary.BigEndian.Uint32(b)), nil
	default:
		return binary.BigEndian.Uint64(b), nil
	}
}

// ArrayHeader decodes an array header and returns its element count.
func (u *Unpacker) ArrayHeader() (int, error) {
	c, err := u.next()
	if err != nil {
		return 0, err
	}
	switch {
	case c&0xf0 == fmtFixArray:
		return int(c & 0x0f), nil
	case c == fmtArray16:
		n, err := u.takeUint(2)
		return int(n), err
	case c == fmtArray32:
		n, err := u.takeUint(4)
		return int(n), err
	}
	return 0, fmt.Errorf("%w: expected array, found format byte %#02x", ErrBadFormat, c)
}

// MapHeader decodes a map header and returns its pair count.
func (u *Unpacker) MapHeader() (int, error) {
	c, err := u.next()
	if err != nil {
		return 0, err
	}
	switch {
	case c&0xf0 == fmtFixMap:
		return int(c & 0x0f), nil
	case c == fmtMap16:
		n, err := u.takeUint(2)
		return int(n), err
	case c == fmtMap32:
		n, err := u.takeUint(4)
		return int(n), err
	}
	return 0, fmt.Errorf("%w: expected map, found format byte %#02x", ErrBadFormat, c)
}

// Int decodes an integer of any packed width as int64.
func (u *Unpacker) Int() (int64, error) {
	c, err := u.next()
	if err != nil {
		return 0, err
	}
	return u.intBody(c)
}

func (u *Unpacker) intBody(c byte) (int64, error) {
	switch {
	case c <= fmtFixIntMax:
		return int64(c), nil
	case c >= fmtNegFixIntMin:
		return int64(int8(c)), nil
	}
	switch c {
	case fmtUint8, fmtUint16, fmtUint32, fmtUint64:
		n, err := u.takeUint(1 << (c - fmtUint8))
		if err != nil {
			return 0, err
		}
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("%w: integer %d overflows int64", ErrBadFormat, n)
		}
		return int64(n), nil
	case fmtInt8:
		n, err := u.takeUint(1)
		return int64(int8(n)), err
	case fmtInt16:
		n, err := u.takeUint(2)
		return int64(int16(n)), err
	case fmtInt32:
		n, err := u.takeUint(4)
		return int64(int32(n)), err
	case fmtInt64:
		n, err := u.takeUint(8)
		return int64(n), err
	}
	return 0, fmt.Errorf("%w: expected integer, found format byte %#02x", ErrBadFormat, c)
}

// String decodes a length-prefixed string.
func (u *Unpacker) String() (string, error) {
	c, err := u.next()
	if err != nil {
		return "", err
	}
	n, err := u.strLen(c)
	if err != nil {
		return "", err
	}
	b, err := u.take(n)
	return string(b), err
}

func (u *Unpacker) strLen(c byte) (int, error) {
	switch {
	case c&0xe0 == fmtFixStr:
		return int(c & 0x1f), nil
	case c == fmtStr8:
		n, err := u.takeUint(1)
		return int(n), err
	case c == fmtStr16:
		n, err := u.takeUint(2)
		return int(n), err
	case c == fmtStr32:
		n, err := u.takeUint(4)
		return int(n), err
	}
	return 0, fmt.Errorf("%w: expected string, found format byte %#02x", ErrBadFormat, c)
}

// Bytes decodes a length-prefixed byte string.
func (u *Unpacker) Bytes() ([]byte, error) {
	c, err := u.next()
	if err != nil {
		return nil, err
	}
	switch c {
	case fmtBin8, fmtBin16, fmtBin32:
		n, err := u.takeUint(1 << (c - fmtBin8))
		if err != nil {
			return nil, err
		}
		return u.take(int(n))
	}
	return nil, fmt.Errorf("%w: expected byte string, found format byte %#02x", ErrBadFormat, c)
}

// Bool decodes a boolean.
func (u *Unpacker) Bool() (bool, error) {
	c, err := u.next()
	if err != nil {
		return false, err
	}
	switch c {
	case fmtTrue:
		return true, nil
	case fmtFalse:
		return false, nil
	}
	return false, fmt.Errorf("%w: expected bool, found format byte %#02x", ErrBadFormat, c)
}

// Any decodes the next value of whatever kind follows.  It returns one
// of nil, bool, int64, float64, string, []byte, []any (array), []Pair
// (map), or Ext.
func (u *Unpacker) Any() (any, error) {
	c, err := u.next()
	if err != nil {
		return nil, err
	}
	switch {
	case c <= fmtFixIntMax, c >= fmtNegFixIntMin:
		return u.intBody(c)
	case c&0xf0 == fmtFixArray:
		return u.anyArray(int(c & 0x0f))
	case c&0xf0 == fmtFixMap:
		return u.anyMap(int(c & 0x0f))
	case c&0xe0 == fmtFixStr:
		b, err := u.take(int(c & 0x1f))
		return string(b), err
	}
	switch c {
	case fmtNil:
		return nil, nil
	case fmtTrue:
		return true, nil
	case fmtFalse:
		return false, nil
	case fmtUint8, fmtUint16, fmtUint32, fmtUint64, fmtInt8, fmtInt16, fmtInt32, fmtInt64:
		return u.intBody(c)
	case fmtFloat32:
		n, err := u.takeUint(4)
		return float64(math.Float32frombits(uint32(n))), err
	case fmtFloat64:
		n, err := u.takeUint(8)
		return math.Float64frombits(n), err
	case fmtStr8, fmtStr16, fmtStr32:
		n, err := u.takeUint(1 << (c - fmtStr8))
		if err != nil {
			return nil, err
		}
		b, err := u.take(int(n))
		return string(b), err
	case fmtBin8, fmtBin16, fmtBin32:
		n, err := u.takeUint(1 << (c - fmtBin8))
		if err != nil {
			return nil, err
		}
		return u.take(int(n))
	case fmtArray16, fmtArray32:
		n, err := u.takeUint(2 << (c - fmtArray16))
		if err != nil {
			return nil, err
		}
		return u.anyArray(int(n))
	case fmtMap16, fmtMap32:
		n, err := u.takeUint(2 << (c - fmtMap16))
		if err != nil {
			return nil, err
		}
		return u.anyMap(int(n))
	case fmtFixExt1:
		return u.ext(1)
	case fmtFixExt2:
		return u.ext(2)
	case fmtFixExt4:
		return u.ext(4)
	case fmtFixExt8:
		return u.ext(8)
	case fmtFixExt16:
		return u.ext(16)
	case fmtExt8, fmtExt16, fmtExt32:
		n, err := u.takeUint(1 << (c - fmtExt8))
		if err != nil {
			return nil, err
		}
		return u.ext(int(n))
	}
	return nil, fmt.Errorf("%w: unexpected format byte %#02x", ErrBadFormat, c)
}

func (u *Unpacker) anyArray(n int) ([]any, error) {
	elems := make([]any, 0, n)
	for i := 0; i < n; i++ {
		v, err := u.Any()
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	return elems, nil
}

func (u *Unpacker) anyMap(n int) ([]Pair, error) {
	pairs := make([]Pair, 0, n)
	for i := 0; i < n; i++ {
		k, err := u.Any()
		if err != nil {
			return nil, err
		}
		v, err := u.Any()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, Pair{k, v})
	}
	return pairs, nil
}

func (u *Unpacker) ext(n int) (Ext, error) {
	t, err := u.next()
	if err != nil {
		return Ext{}, err
	}
	data, err := u.take(n)
	if err != nil {
		return Ext{}, err
	}
	return Ext{Type: int8(t), Data: data}, nil
}
