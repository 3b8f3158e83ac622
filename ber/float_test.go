package ber

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// On a little-endian host (the only kind these tests run on) the
// decoder's byte-reversal quirk nets out to a standard big-endian
// wire to float32 conversion.
func TestDecodeFloat32(t *testing.T) {
	tests := []struct {
		name string
		wire [4]byte
		want float32
	}{
		{"one", [4]byte{0x3F, 0x80, 0x00, 0x00}, 1.0},
		{"negative one", [4]byte{0xBF, 0x80, 0x00, 0x00}, -1.0},
		{"zero", [4]byte{0x00, 0x00, 0x00, 0x00}, 0.0},
		{"pi approx", [4]byte{0x40, 0x49, 0x0F, 0xDB}, 3.1415927},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DecodeFloat32(tc.wire)
			assert.InDelta(t, float64(tc.want), float64(got), 1e-5)
		})
	}
}
