// Package ber implements the byte-cursor and TLV (Tag-Length-Value)
// primitives that every MMS decoder in this module is built on top of.
//
// Only the subset of BER actually used on the wire by MMS/ISO 9506 is
// implemented: short-form definite lengths (1..3 octets), single-octet
// tags, and fixed-width big-endian integers. There is no encoder here;
// this module only ever decodes.
package ber

import "errors"

// Errors returned by the cursor primitives. Callers that need an
// offset for diagnostics should capture Cursor.Pos() at the call site;
// these sentinels carry no position themselves.
var (
	ErrBufferOverflow = errors.New("ber: buffer overflow")
	ErrInvalidLength  = errors.New("ber: invalid length octet")
	ErrUnexpectedTag  = errors.New("ber: unexpected tag byte")
	ErrIntegerWidth   = errors.New("ber: integer wider than destination")
)

// Cursor walks an immutable byte slice, tracking a read position.
// It never mutates the underlying slice and never allocates on the
// read path except where a decoded value itself requires a copy.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor wraps buf for reading starting at offset 0.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the current read offset.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the total length of the underlying buffer.
func (c *Cursor) Len() int { return len(c.buf) }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// Seek repositions the cursor to an absolute offset. Used by container
// decoders to re-validate the length invariant after decoding children.
func (c *Cursor) Seek(pos int) { c.pos = pos }

// PeekByte returns the byte at the cursor without consuming it.
func (c *Cursor) PeekByte() (byte, error) {
	if c.pos >= len(c.buf) {
		return 0, ErrBufferOverflow
	}
	return c.buf[c.pos], nil
}

// ReadByte consumes and returns one byte.
func (c *Cursor) ReadByte() (byte, error) {
	b, err := c.PeekByte()
	if err != nil {
		return 0, err
	}
	c.pos++
	return b, nil
}

// Expect consumes one byte and fails with ErrUnexpectedTag unless it
// equals tag. Used throughout the element and service decoders for the
// many fixed tag bytes the MMS grammar pins down exactly.
func (c *Cursor) Expect(tag byte) error {
	b, err := c.ReadByte()
	if err != nil {
		return err
	}
	if b != tag {
		return ErrUnexpectedTag
	}
	return nil
}

// ReadN consumes and returns the next n bytes as a fresh slice.
func (c *Cursor) ReadN(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.buf) {
		return nil, ErrBufferOverflow
	}
	out := make([]byte, n)
	copy(out, c.buf[c.pos:c.pos+n])
	c.pos += n
	return out, nil
}

// ParseLength decodes a BER short-form definite length field:
//
//	first byte < 0x81: the length itself, 1 octet consumed
//	first byte = 0x81: next octet is the length, 2 octets consumed
//	first byte = 0x82: next two octets are the length big-endian, 3 consumed
//	anything else: ErrInvalidLength
//
// A first byte of 0x80 is taken as the length 128, not as the
// indefinite form; the long (>2 octet) forms are rejected.
func (c *Cursor) ParseLength() (int, error) {
	b0, err := c.ReadByte()
	if err != nil {
		return 0, err
	}
	switch {
	case b0 < 0x81:
		return int(b0), nil
	case b0 == 0x81:
		b1, err := c.ReadByte()
		if err != nil {
			return 0, err
		}
		return int(b1), nil
	case b0 == 0x82:
		hi, err := c.ReadByte()
		if err != nil {
			return 0, err
		}
		lo, err := c.ReadByte()
		if err != nil {
			return 0, err
		}
		return int(hi)<<8 | int(lo), nil
	default:
		return 0, ErrInvalidLength
	}
}

// ExpectLength reads a length field and checks that at least that many
// bytes remain in the underlying buffer, returning the absolute end
// offset (pos + length) for the caller to cross-check against after
// decoding the contained elements.
func (c *Cursor) ExpectLength() (end int, length int, err error) {
	length, err = c.ParseLength()
	if err != nil {
		return 0, 0, err
	}
	if c.pos+length > len(c.buf) {
		return 0, 0, ErrBufferOverflow
	}
	return c.pos + length, length, nil
}

// ExpectLengthAfterTag consumes one tag byte (already inspected by
// the caller, e.g. via PeekByte for service-id dispatch) and then
// reads the length field that follows it, returning the absolute end
// offset and the length.
func (c *Cursor) ExpectLengthAfterTag() (end int, length int, err error) {
	if _, err := c.ReadByte(); err != nil {
		return 0, 0, err
	}
	return c.ExpectLength()
}

// AtEnd reports whether the cursor sits exactly at end. Container
// decoders call this after consuming their declared children; a false
// result means the child/parent length invariant was violated.
func (c *Cursor) AtEnd(end int) bool { return c.pos == end }

// FixedUint32 reads n big-endian bytes (0 <= n <= 4) as an unsigned
// 32-bit integer.
func FixedUint32(b []byte) (uint32, error) {
	if len(b) > 4 {
		return 0, ErrIntegerWidth
	}
	var v uint32
	for _, x := range b {
		v = v<<8 | uint32(x)
	}
	return v, nil
}

// FixedInt32 reads n big-endian bytes (1 <= n <= 4) as a two's
// complement signed 32-bit integer, sign-extending from the width of
// the input. An empty input fails with ErrIntegerWidth.
func FixedInt32(b []byte) (int32, error) {
	if len(b) > 4 || len(b) == 0 {
		return 0, ErrIntegerWidth
	}
	v := uint32(b[0])
	negative := b[0]&0x80 != 0
	if negative {
		v = 0xffffffff
	} else {
		v = 0
	}
	for _, x := range b {
		v = v<<8 | uint32(x)
	}
	return int32(v), nil
}

// ReadUint32 consumes n bytes (0..4) and decodes them big-endian.
func (c *Cursor) ReadUint32(n int) (uint32, error) {
	b, err := c.ReadN(n)
	if err != nil {
		return 0, err
	}
	return FixedUint32(b)
}

// ReadInt32 consumes n bytes (1..4) and decodes them big-endian, sign
// extended.
func (c *Cursor) ReadInt32(n int) (int32, error) {
	b, err := c.ReadN(n)
	if err != nil {
		return 0, err
	}
	return FixedInt32(b)
}
