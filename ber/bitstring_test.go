package ber

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBitStringMSBFirst(t *testing.T) {
	// 2 unused bits in the last octet, data 0b10110000 -> 6 meaningful
	// bits "101100".
	bs, err := DecodeBitString([]byte{0x02, 0xB0})
	require.NoError(t, err)
	assert.Equal(t, 6, bs.Bits)
	want := []bool{true, false, true, true, false, false}
	for i, w := range want {
		assert.Equal(t, w, bs.Get(i), "bit %d", i)
	}
	assert.False(t, bs.Get(6))
	assert.False(t, bs.Get(-1))
}

func TestDecodeBitStringRejectsBadPadding(t *testing.T) {
	_, err := DecodeBitString([]byte{0x08, 0x00})
	assert.ErrorIs(t, err, ErrBitStringPadding)
}

func TestDecodeBitStringRejectsEmptyPayload(t *testing.T) {
	_, err := DecodeBitString(nil)
	assert.Error(t, err)
}
