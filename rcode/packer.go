package rcode

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Packer serializes values in the wire encoding.  The zero value is a
// measuring Packer, which computes the encoded size of a call sequence
// without writing anything.  NewWriter returns an emitting Packer that
// writes the same call sequence into a fixed buffer.  A Packer is
// single-use and must not be shared across concurrent compilations;
// its two-pass protocol depends on sequential, non-interleaved calls.
type Packer struct {
	buf []byte // nil while measuring
	off int
}

// NewWriter returns a Packer that emits into a buffer of exactly size
// bytes.  Writing past the end is an encoding invariant violation and
// panics via the slice bounds check.
func NewWriter(size int) *Packer {
	return &Packer{buf: make([]byte, size)}
}

// Size returns the number of bytes measured or written so far.
func (p *Packer) Size() int { return p.off }

// Bytes returns the emitted buffer.  It panics on a measuring Packer.
func (p *Packer) Bytes() []byte {
	if p.buf == nil {
		panic("rcode: Bytes called on measuring Packer")
	}
	return p.buf
}

// Pack runs fn twice, first against a measuring Packer and then
// against an emitting one sized to the measurement, and returns the
// emitted buffer.  The two passes must issue a token-identical call
// sequence; if the emitted size diverges from the measured size, Pack
// panics, since a divergence means a corrupt buffer rather than a
// recoverable condition.
func Pack(fn func(*Packer)) []byte {
	var m Packer
	fn(&m)
	w := NewWriter(m.off)
	fn(w)
	if w.off != len(w.buf) {
		panic(fmt.Sprintf("rcode: emit pass wrote %d bytes of %d measured", w.off, len(w.buf)))
	}
	return w.buf
}

func (p *Packer) putByte(c byte) {
	if p.buf != nil {
		p.buf[p.off] = c
	}
	p.off++
}

func (p *Packer) putBytes(b []byte) {
	if p.buf != nil {
		copy(p.buf[p.off:p.off+len(b)], b)
	}
	p.off += len(b)
}

func (p *Packer) putString(s string) {
	if p.buf != nil {
		copy(p.buf[p.off:p.off+len(s)], s)
	}
	p.off += len(s)
}

func (p *Packer) putUint16(v uint16) {
	if p.buf != nil {
		binary.BigEndian.PutUint16(p.buf[p.off:], v)
	}
	p.off += 2
}

func (p *Packer) putUint32(v uint32) {
	if p.buf != nil {
		binary.BigEndian.PutUint32(p.buf[p.off:], v)
	}
	p.off += 4
}

func (p *Packer) putUint64(v uint64) {
	if p.buf != nil {
		binary.BigEndian.PutUint64(p.buf[p.off:], v)
	}
	p.off += 8
}

// PackArrayHeader begins an array of count elements.  The elements
// themselves are packed by the following count calls.
func (p *Packer) PackArrayHeader(count int) {
	switch {
	case count < 0:
		panic("rcode: negative array count")
	case count < 16:
		p.putByte(fmtFixArray | byte(count))
	case count <= math.MaxUint16:
		p.putByte(fmtArray16)
		p.putUint16(uint16(count))
	default:
		p.putByte(fmtArray32)
		p.putUint32(uint32(count))
	}
}

// PackMapHeader begins a map of count key-value pairs.
func (p *Packer) PackMapHeader(count int) {
	switch {
	case count < 0:
		panic("rcode: negative map count")
	case count < 16:
		p.putByte(fmtFixMap | byte(count))
	case count <= math.MaxUint16:
		p.putByte(fmtMap16)
		p.putUint16(uint16(count))
	default:
		p.putByte(fmtMap32)
		p.putUint32(uint32(count))
	}
}

// PackInt packs i in the smallest encoding that holds it.
func (p *Packer) PackInt(i int64) {
	switch {
	case i >= 0:
		switch {
		case i <= fmtFixIntMax:
			p.putByte(byte(i))
		case i <= math.MaxUint8:
			p.putByte(fmtUint8)
			p.putByte(byte(i))
		case i <= math.MaxUint16:
			p.putByte(fmtUint16)
			p.putUint16(uint16(i))
		case i <= math.MaxUint32:
			p.putByte(fmtUint32)
			p.putUint32(uint32(i))
		default:
			p.putByte(fmtUint64)
			p.putUint64(uint64(i))
		}
	case i >= -32:
		p.putByte(byte(i))
	case i >= math.MinInt8:
		p.putByte(fmtInt8)
		p.putByte(byte(i))
	case i >= math.MinInt16:
		p.putByte(fmtInt16)
		p.putUint16(uint16(i))
	case i >= math.MinInt32:
		p.putByte(fmtInt32)
		p.putUint32(uint32(i))
	default:
		p.putByte(fmtInt64)
		p.putUint64(uint64(i))
	}
}

// PackFloat64 packs f as an 8-byte big-endian float.
func (p *Packer) PackFloat64(f float64) {
	p.putByte(fmtFloat64)
	p.putUint64(math.Float64bits(f))
}

// PackBool packs a boolean.
func (p *Packer) PackBool(b bool) {
	if b {
		p.putByte(fmtTrue)
	} else {
		p.putByte(fmtFalse)
	}
}

// PackNil packs the null value.
func (p *Packer) PackNil() {
	p.putByte(fmtNil)
}

// PackString packs s length-prefixed.
func (p *Packer) PackString(s string) {
	switch n := len(s); {
	case n < 32:
		p.putByte(fmtFixStr | byte(n))
	case n <= math.MaxUint8:
		p.putByte(fmtStr8)
		p.putByte(byte(n))
	case n <= math.MaxUint16:
		p.putByte(fmtStr16)
		p.putUint16(uint16(n))
	default:
		p.putByte(fmtStr32)
		p.putUint32(uint32(n))
	}
	p.putString(s)
}

// PackBytes packs b as an opaque length-prefixed byte string.
func (p *Packer) PackBytes(b []byte) {
	switch n := len(b); {
	case n <= math.MaxUint8:
		p.putByte(fmtBin8)
		p.putByte(byte(n))
	case n <= math.MaxUint16:
		p.putByte(fmtBin16)
		p.putUint16(uint16(n))
	default:
		p.putByte(fmtBin32)
		p.putUint32(uint32(n))
	}
	p.putBytes(b)
}

// PackExt packs data under the one-byte ext tag typ.
func (p *Packer) PackExt(typ int8, data []byte) {
	switch n := len(data); n {
	case 1:
		p.putByte(fmtFixExt1)
	case 2:
		p.putByte(fmtFixExt2)
	case 4:
		p.putByte(fmtFixExt4)
	case 8:
		p.putByte(fmtFixExt8)
	case 16:
		p.putByte(fmtFixExt16)
	default:
		switch {
		case n <= math.MaxUint8:
			p.putByte(fmtExt8)
			p.putByte(byte(n))
		case n <= math.MaxUint16:
			p.putByte(fmtExt16)
			p.putUint16(uint16(n))
		default:
			p.putByte(fmtExt32)
			p.putUint32(uint32(n))
		}
	}
	p.putByte(byte(typ))
	p.putBytes(data)
}
