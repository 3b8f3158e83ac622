package mms

import (
	"testing"

	"github.com/slonegd/mmsdump/ber"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDigitsStrict(t *testing.T) {
	v, ok := decodeDigits([]byte("1234"))
	require.True(t, ok)
	assert.Equal(t, 1234, v)

	_, ok = decodeDigits([]byte("12x4"))
	assert.False(t, ok, "a non-digit byte anywhere in the field must fail, not just at the terminator")
}

func TestDecodeTimestampValid(t *testing.T) {
	raw := []byte("20240315093045\x00")
	ts, ok := decodeTimestamp(raw)
	require.True(t, ok)
	assert.Equal(t, Timestamp{Year: 2024, Month: 3, Day: 15, Hour: 9, Minute: 30, Second: 45}, ts)
}

func TestDecodeTimestampRejectsEmbeddedNonDigit(t *testing.T) {
	raw := []byte("2024031X093045\x00")
	_, ok := decodeTimestamp(raw)
	assert.False(t, ok)
}

func TestDecodeTimestampRejectsWrongLength(t *testing.T) {
	_, ok := decodeTimestamp([]byte("2024"))
	assert.False(t, ok)
}

func TestDecodeVarSpec(t *testing.T) {
	// 30 13 - SEQUENCE
	//   a0 11 - name
	//     a1 0f - domain reference
	//       1a 03 "LD0"
	//       1a 08 "itemNam1"
	hex := "30 13 A0 11 A1 0F 1A 03 4C 44 30 1A 08 69 74 65 6D 4E 61 6D 31"
	c := ber.NewCursor(parseHex(hex))
	vs, err := decodeVarSpec(c)
	require.Nil(t, err)
	assert.Equal(t, "LD0", vs.Domain.String())
	assert.Equal(t, "itemNam1", vs.Item.String())
	assert.True(t, c.AtEnd(c.Len()))
}

func TestDecodeTypeDescComplexRecurses(t *testing.T) {
	// 30 0e - SEQUENCE { name, constraint }
	//   80 01 "x"              - name
	//   a1 09                  - constraint wrapper
	//     a2 07                - complex, one child TypeDesc
	//       30 05 80 00 a1 01 83 - child: name "", typeCode boolean
	hex := "30 0E 80 01 78 A1 09 A2 07 30 05 80 00 A1 01 83"
	c := ber.NewCursor(parseHex(hex))
	td, err := decodeTypeDesc(c, MaxTypeDescDepth)
	require.Nil(t, err)
	assert.Equal(t, "x", td.Name.String())
	assert.True(t, td.IsComplex)
	require.Len(t, td.Children, 1)
	assert.Equal(t, byte(typeCodeBoolean), td.Children[0].TypeCode)
}

func TestDecodeTypeDescDepthExceeded(t *testing.T) {
	hex := "30 0C 80 01 78 A1 07 A2 05 30 03 80 00 83"
	c := ber.NewCursor(parseHex(hex))
	_, err := decodeTypeDesc(c, 1)
	require.NotNil(t, err)
	assert.Equal(t, KindDepth, err.Kind)
}
