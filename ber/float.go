package ber

import "unsafe"

// DecodeFloat32 decodes the 4 payload bytes following the
// exponent-width marker of an MMS FloatingPoint value.
//
// The wire format is big-endian IEEE-754 single precision. On a
// little-endian host this decoder reproduces the source
// implementation's byte handling: wire byte 0 lands in host buffer
// index 3, wire byte 1 in index 2, and so on, before the buffer is
// reinterpreted in place. On a big-endian host the bytes are copied in
// wire order instead. On both kinds of host the net effect is a
// standard big-endian-to-float32 conversion - see the float byte order
// note in the design ledger.
func DecodeFloat32(b [4]byte) float32 {
	var value float32
	valueBuf := (*[4]byte)(unsafe.Pointer(&value))

	if isLittleEndian() {
		for i := 3; i >= 0; i-- {
			valueBuf[i] = b[3-i]
		}
	} else {
		for i := 0; i < 4; i++ {
			valueBuf[i] = b[i]
		}
	}

	return value
}

func isLittleEndian() bool {
	var i int32 = 1
	b := (*[4]byte)(unsafe.Pointer(&i))
	return b[0] == 1
}
