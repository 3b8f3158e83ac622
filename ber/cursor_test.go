package ber

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLength(t *testing.T) {
	tests := []struct {
		name    string
		buf     []byte
		wantLen int
		wantErr bool
	}{
		{"short form", []byte{0x05, 0, 0, 0, 0, 0}, 5, false},
		{"one-octet long form", []byte{0x81, 0xFF}, 0xFF, false},
		{"two-octet long form", []byte{0x82, 0x01, 0x00}, 0x0100, false},
		{"0x80 is a short-form length", []byte{0x80}, 0x80, false},
		{"three-octet long form rejected", []byte{0x83, 0x01, 0x00, 0x00}, 0, true},
		{"empty buffer", []byte{}, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCursor(tc.buf)
			got, err := c.ParseLength()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantLen, got)
		})
	}
}

func TestExpectLengthCrossChecksBuffer(t *testing.T) {
	c := NewCursor([]byte{0x05, 1, 2})
	_, _, err := c.ExpectLength()
	assert.ErrorIs(t, err, ErrBufferOverflow)
}

func TestExpect(t *testing.T) {
	c := NewCursor([]byte{0x30, 0x01})
	require.NoError(t, c.Expect(0x30))
	assert.ErrorIs(t, c.Expect(0x30), ErrUnexpectedTag)
}

func TestFixedInt32SignExtends(t *testing.T) {
	v, err := FixedInt32([]byte{0xFF})
	require.NoError(t, err)
	assert.Equal(t, int32(-1), v)

	v, err = FixedInt32([]byte{0x7F})
	require.NoError(t, err)
	assert.Equal(t, int32(0x7F), v)
}

func TestFixedUint32(t *testing.T) {
	v, err := FixedUint32([]byte{0x01, 0x02})
	require.NoError(t, err)
	assert.Equal(t, uint32(0x0102), v)
}

func TestAtEndDetectsLengthMismatch(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x02, 0x03})
	c.ReadByte()
	assert.False(t, c.AtEnd(3))
	c.ReadN(2)
	assert.True(t, c.AtEnd(3))
}
