package mms

import "github.com/slonegd/mmsdump/ber"

// MaxValueDepth is the hard recursion cap for the Data CHOICE
// decoder. A Structure nested deeper than this aborts with KindDepth
// rather than growing the Go call stack without bound.
const MaxValueDepth = 15

// ValueKind discriminates the MMS Data CHOICE.
type ValueKind int

const (
	Invalid ValueKind = iota
	Boolean
	Integer
	Unsigned
	Float
	BitString
	OctetString
	VisibleString
	BinaryTime
	UtcTime
	Structure
	ErrorValue
)

// BinaryTimeValue is MMS BinaryTime: days elapsed since 1984-01-01
// plus milliseconds into that day.
type BinaryTimeValue struct {
	DaysSince1984 uint16
	MsOfDay       uint32
}

// UtcTimeValue is MMS UtcTime: whole seconds since the Unix epoch plus
// a Q.16 fixed-point fractional-second remainder.
type UtcTimeValue struct {
	Seconds      uint32
	FractionQ16  uint16
}

// Value is a tagged sum over the MMS Data CHOICE. Only the field(s)
// matching Kind are meaningful; the zero Value is Invalid. A Value of
// kind Structure owns its Children recursively - dropping it drops
// the whole subtree, which in Go simply means letting the slice go
// out of scope.
type Value struct {
	Kind ValueKind

	Bool   bool
	Int    int32
	Uint   uint32
	Flt    float32
	Bits   ber.BitString
	Octets CompactString
	Text   CompactString
	BinTime BinaryTimeValue
	UtcTm   UtcTimeValue
	Children []Value
	ErrCode  DataAccessError
}

// DecodeValue recursively decodes one MMS Data CHOICE element at the
// cursor's current position, per the tag dispatch table:
//
//	0x83 boolean, 0x84 bit-string, 0x85 integer, 0x86 unsigned,
//	0x87 floating-point, 0x89 octet-string, 0x8a visible-string,
//	0x8c binary-time, 0x91 utc-time, 0xa2 structure (sequence, recurse)
//
// depth is the remaining recursion budget; it must start at
// MaxValueDepth and is decremented on every Structure recursion.
func DecodeValue(c *ber.Cursor, depth int) (Value, *Error) {
	if depth <= 0 {
		return Value{}, newErr(KindDepth, c.Pos())
	}

	start := c.Pos()
	tagByte, err := c.ReadByte()
	if err != nil {
		return Value{}, newErr(KindLength, start)
	}
	end, length, err := c.ExpectLength()
	if err != nil {
		return Value{}, newErr(KindLength, start)
	}

	switch ber.Tag(tagByte) {
	case ber.DataBoolean:
		if length != 1 {
			return Value{}, newErr(KindLength, start)
		}
		b, err := c.ReadByte()
		if err != nil {
			return Value{}, newErr(KindLength, start)
		}
		return Value{Kind: Boolean, Bool: b != 0}, nil

	case ber.DataBitString:
		payload, err := c.ReadN(length)
		if err != nil {
			return Value{}, newErr(KindLength, start)
		}
		bits, berr := ber.DecodeBitString(payload)
		if berr != nil {
			return Value{}, newErr(KindLength, start)
		}
		return Value{Kind: BitString, Bits: bits}, nil

	case ber.DataInteger:
		if length == 0 || length > 4 {
			return Value{}, newErr(KindLength, start)
		}
		v, ierr := c.ReadInt32(length)
		if ierr != nil {
			return Value{}, newErr(KindLength, start)
		}
		return Value{Kind: Integer, Int: v}, nil

	case ber.DataUnsigned:
		if length == 0 || length > 4 {
			return Value{}, newErr(KindLength, start)
		}
		v, ierr := c.ReadUint32(length)
		if ierr != nil {
			return Value{}, newErr(KindLength, start)
		}
		return Value{Kind: Unsigned, Uint: v}, nil

	case ber.DataFloatingPoint:
		if length != 5 {
			return Value{}, newErr(KindLength, start)
		}
		marker, rerr := c.ReadByte()
		if rerr != nil || marker != 0x08 {
			return Value{}, newErr(KindDataType, start)
		}
		raw, rerr := c.ReadN(4)
		if rerr != nil {
			return Value{}, newErr(KindLength, start)
		}
		var buf [4]byte
		copy(buf[:], raw)
		return Value{Kind: Float, Flt: ber.DecodeFloat32(buf)}, nil

	case ber.DataOctetString:
		payload, rerr := c.ReadN(length)
		if rerr != nil {
			return Value{}, newErr(KindLength, start)
		}
		return Value{Kind: OctetString, Octets: NewCompactString(string(payload))}, nil

	case ber.DataVisibleString:
		payload, rerr := c.ReadN(length)
		if rerr != nil {
			return Value{}, newErr(KindLength, start)
		}
		return Value{Kind: VisibleString, Text: NewCompactString(string(payload))}, nil

	case ber.DataBinaryTime:
		if length != 6 {
			return Value{}, newErr(KindLength, start)
		}
		ms, rerr := c.ReadUint32(4)
		if rerr != nil {
			return Value{}, newErr(KindLength, start)
		}
		days, rerr := c.ReadUint32(2)
		if rerr != nil {
			return Value{}, newErr(KindLength, start)
		}
		return Value{Kind: BinaryTime, BinTime: BinaryTimeValue{DaysSince1984: uint16(days), MsOfDay: ms}}, nil

	case ber.DataUtcTime:
		if length != 8 {
			return Value{}, newErr(KindLength, start)
		}
		secs, rerr := c.ReadUint32(4)
		if rerr != nil {
			return Value{}, newErr(KindLength, start)
		}
		frac, rerr := c.ReadUint32(2)
		if rerr != nil {
			return Value{}, newErr(KindLength, start)
		}
		return Value{Kind: UtcTime, UtcTm: UtcTimeValue{Seconds: secs, FractionQ16: uint16(frac)}}, nil

	case ber.DataStructure:
		children := make([]Value, 0, 4)
		for c.Pos() < end {
			child, cerr := DecodeValue(c, depth-1)
			if cerr != nil {
				return Value{}, cerr
			}
			children = append(children, child)
		}
		if !c.AtEnd(end) {
			return Value{}, newErr(KindLength, start)
		}
		return Value{Kind: Structure, Children: children}, nil

	default:
		return Value{}, newErr(KindDataType, start)
	}
}

// DecodeAccessResult decodes one AccessResult: either a Data CHOICE
// value, or - when the leading tag is 0x80 with length 1 - a single
// DataAccessError code in place of a value.
func DecodeAccessResult(c *ber.Cursor) (Value, *Error) {
	tagByte, err := c.PeekByte()
	if err != nil {
		return Value{}, newErr(KindLength, c.Pos())
	}
	if ber.Tag(tagByte) != ber.AccessResultFailure {
		return DecodeValue(c, MaxValueDepth)
	}

	start := c.Pos()
	c.ReadByte()
	_, length, lerr := c.ExpectLength()
	if lerr != nil || length != 1 {
		return Value{}, newErr(KindLength, start)
	}
	code, rerr := c.ReadByte()
	if rerr != nil {
		return Value{}, newErr(KindLength, start)
	}
	return Value{Kind: ErrorValue, ErrCode: DataAccessError(code)}, nil
}
