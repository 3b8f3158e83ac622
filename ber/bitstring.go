package ber

import "errors"

// ErrBitStringPadding is returned when the unused-bits count octet of
// a BIT STRING payload is outside the valid 0..7 range.
var ErrBitStringPadding = errors.New("ber: bit-string padding count out of range")

// BitString is a decoded BER BIT STRING: Bits is the number of
// meaningful bits (trailing padding already excluded) and Data holds
// the raw payload octets the bits were packed into, MSB first.
type BitString struct {
	Bits int
	Data []byte
}

// DecodeBitString decodes a BIT STRING payload whose first octet is
// the count of unused bits in the final data octet (0..7), as used
// both for the Data CHOICE bit-string alternative and for the
// parameter-CBB / services-supported bitmaps carried by the Initiate
// PDU.
func DecodeBitString(payload []byte) (BitString, error) {
	if len(payload) == 0 {
		return BitString{}, ErrInvalidLength
	}
	unused := payload[0]
	if unused > 7 {
		return BitString{}, ErrBitStringPadding
	}
	data := payload[1:]
	bits := 8*len(data) - int(unused)
	if bits < 0 {
		bits = 0
	}
	return BitString{Bits: bits, Data: data}, nil
}

// Get reports whether bit i (0-indexed, MSB of Data[0] is bit 0) is
// set. i outside [0, Bits) always reports false.
func (bs BitString) Get(i int) bool {
	if i < 0 || i >= bs.Bits {
		return false
	}
	byteIdx := i / 8
	bitIdx := 7 - (i % 8)
	return bs.Data[byteIdx]&(1<<uint(bitIdx)) != 0
}
