package mms

import (
	"testing"

	"github.com/slonegd/mmsdump/ber"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeOneValue(t *testing.T, hex string) Value {
	t.Helper()
	c := ber.NewCursor(parseHex(hex))
	v, err := DecodeValue(c, MaxValueDepth)
	require.Nil(t, err, "unexpected decode error: %v", err)
	assert.True(t, c.AtEnd(c.Len()))
	return v
}

func TestDecodeValueBoolean(t *testing.T) {
	v := decodeOneValue(t, "83 01 01")
	assert.Equal(t, Boolean, v.Kind)
	assert.True(t, v.Bool)

	v = decodeOneValue(t, "83 01 00")
	assert.False(t, v.Bool)
}

func TestDecodeValueInteger(t *testing.T) {
	v := decodeOneValue(t, "85 01 FF")
	assert.Equal(t, Integer, v.Kind)
	assert.Equal(t, int32(-1), v.Int)
}

func TestDecodeValueUnsigned(t *testing.T) {
	v := decodeOneValue(t, "86 02 01 00")
	assert.Equal(t, Unsigned, v.Kind)
	assert.Equal(t, uint32(256), v.Uint)
}

func TestDecodeValueFloat(t *testing.T) {
	v := decodeOneValue(t, "87 05 08 3F 80 00 00")
	assert.Equal(t, Float, v.Kind)
	assert.InDelta(t, 1.0, float64(v.Flt), 1e-5)
}

func TestDecodeValueFloatRejectsBadMarker(t *testing.T) {
	c := ber.NewCursor(parseHex("87 05 00 3F 80 00 00"))
	_, err := DecodeValue(c, MaxValueDepth)
	require.NotNil(t, err)
	assert.Equal(t, KindDataType, err.Kind)
}

func TestDecodeValueBitString(t *testing.T) {
	v := decodeOneValue(t, "84 02 02 B0")
	assert.Equal(t, BitString, v.Kind)
	assert.Equal(t, 6, v.Bits.Bits)
}

func TestDecodeValueOctetString(t *testing.T) {
	v := decodeOneValue(t, "89 02 AB CD")
	assert.Equal(t, OctetString, v.Kind)
	assert.Equal(t, []byte{0xAB, 0xCD}, v.Octets.Bytes())
}

func TestDecodeValueVisibleString(t *testing.T) {
	v := decodeOneValue(t, "8A 03 61 62 63")
	assert.Equal(t, VisibleString, v.Kind)
	assert.Equal(t, "abc", v.Text.String())
}

func TestDecodeValueBinaryTime(t *testing.T) {
	v := decodeOneValue(t, "8C 06 00 00 00 01 00 0A")
	assert.Equal(t, BinaryTime, v.Kind)
	assert.Equal(t, uint32(1), v.BinTime.MsOfDay)
	assert.Equal(t, uint16(10), v.BinTime.DaysSince1984)
}

func TestDecodeValueUtcTime(t *testing.T) {
	v := decodeOneValue(t, "91 08 00 00 00 01 80 00")
	assert.Equal(t, UtcTime, v.Kind)
	assert.Equal(t, uint32(1), v.UtcTm.Seconds)
	assert.Equal(t, uint16(0x8000), v.UtcTm.FractionQ16)
}

func TestDecodeValueStructureNested(t *testing.T) {
	v := decodeOneValue(t, "A2 06 83 01 01 85 01 02")
	assert.Equal(t, Structure, v.Kind)
	require.Len(t, v.Children, 2)
	assert.Equal(t, Boolean, v.Children[0].Kind)
	assert.Equal(t, Integer, v.Children[1].Kind)
}

func TestDecodeValueUnknownTag(t *testing.T) {
	c := ber.NewCursor(parseHex("99 01 00"))
	_, err := DecodeValue(c, MaxValueDepth)
	require.NotNil(t, err)
	assert.Equal(t, KindDataType, err.Kind)
}

func TestDecodeValueDepthExceeded(t *testing.T) {
	c := ber.NewCursor(parseHex("83 01 01"))
	_, err := DecodeValue(c, 0)
	require.NotNil(t, err)
	assert.Equal(t, KindDepth, err.Kind)
}

func TestDecodeValueStructureRecursesWithDepthBudget(t *testing.T) {
	// One level of nesting consumes one unit of depth budget; a depth
	// of 1 is enough for the outer structure wrapper but not for the
	// nested structure inside it.
	c := ber.NewCursor(parseHex("A2 04 A2 02 83 01"))
	_, err := DecodeValue(c, 1)
	require.NotNil(t, err)
	assert.Equal(t, KindDepth, err.Kind)
}

func TestDecodeAccessResultFailureCode(t *testing.T) {
	c := ber.NewCursor(parseHex("80 01 04"))
	v, err := DecodeAccessResult(c)
	require.Nil(t, err)
	assert.Equal(t, ErrorValue, v.Kind)
	assert.Equal(t, ObjectUndefined, v.ErrCode)
}

func TestDecodeAccessResultValue(t *testing.T) {
	c := ber.NewCursor(parseHex("83 01 01"))
	v, err := DecodeAccessResult(c)
	require.Nil(t, err)
	assert.Equal(t, Boolean, v.Kind)
	assert.True(t, v.Bool)
}
