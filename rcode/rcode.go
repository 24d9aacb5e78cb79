// Package rcode implements the compact binary encoding carried inside
// CoralDB wire operations.
//
// The encoding is a fixed msgpack-family format: integers are written
// big-endian in the smallest width that holds the value, strings and
// byte strings are length-prefixed, arrays and maps are prefixed by
// element count rather than byte length, and a one-byte ext tag marks
// domain scalars that ride on top of the base format.  Nesting is
// unrestricted.
//
// Serialization is strictly two-pass.  A zero-value Packer measures: it
// accumulates the exact encoded size without a buffer.  A Packer made
// by NewWriter emits: it writes the identical call sequence into a
// buffer allocated to the measured size.  Pack runs both passes and
// checks that they agree; disagreement is an implementation defect and
// panics rather than truncating or growing the buffer.
package rcode

import "errors"

// Format bytes.  The table is a frozen server contract; changing any
// entry breaks compatibility with persisted tokens and live servers.
const (
	fmtFixIntMax    = 0x7f // 0x00..0x7f positive fixint
	fmtFixMap       = 0x80 // 0x80..0x8f map, count in low nibble
	fmtFixArray     = 0x90 // 0x90..0x9f array, count in low nibble
	fmtFixStr       = 0xa0 // 0xa0..0xbf string, length in low 5 bits
	fmtNil          = 0xc0
	fmtFalse        = 0xc2
	fmtTrue         = 0xc3
	fmtBin8         = 0xc4
	fmtBin16        = 0xc5
	fmtBin32        = 0xc6
	fmtExt8         = 0xc7
	fmtExt16        = 0xc8
	fmtExt32        = 0xc9
	fmtFloat32      = 0xca
	fmtFloat64      = 0xcb
	fmtUint8        = 0xcc
	fmtUint16       = 0xcd
	fmtUint32       = 0xce
	fmtUint64       = 0xcf
	fmtInt8         = 0xd0
	fmtInt16        = 0xd1
	fmtInt32        = 0xd2
	fmtInt64        = 0xd3
	fmtFixExt1      = 0xd4
	fmtFixExt2      = 0xd5
	fmtFixExt4      = 0xd6
	fmtFixExt8      = 0xd7
	fmtFixExt16     = 0xd8
	fmtStr8         = 0xd9
	fmtStr16        = 0xda
	fmtStr32        = 0xdb
	fmtArray16      = 0xdc
	fmtArray32      = 0xdd
	fmtMap16        = 0xde
	fmtMap32        = 0xdf
	fmtNegFixIntMin = 0xe0 // 0xe0..0xff negative fixint, -32..-1
)

var (
	ErrTruncated = errors.New("truncated input")
	ErrBadFormat = errors.New("malformed encoding")
)
