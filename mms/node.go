package mms

import "github.com/slonegd/mmsdump/ber"

// MaxTypeDescDepth is the recursion cap for nested TypeDesc complex
// constraints (structures of structures).
const MaxTypeDescDepth = 9

// NodeKind discriminates the polymorphic Node entity. Only the
// fields the decoders listed below populate for a given Kind are
// meaningful on a Node value; the rest are zero.
type NodeKind int

const (
	NodeFileSpec NodeKind = iota
	NodeDirEntry
	NodeVarSpec
	NodeUData
	NodeNameReq
	NodeIdStr
	NodeWriteResp
	NodeWriteReq
	NodeFopenReq
	NodeFopenResp
	NodeFReadReq
	NodeFReadResp
	NodeFCloseReq
	NodeFCloseResp
	NodeInit
	NodeTypeDesc
)

// Timestamp is a broken-down UTC instant decoded from the 14-digit
// yyyyMMddhhmmss ASCII field used by directory entries and fileOpen
// responses.
type Timestamp struct {
	Year, Month, Day     int
	Hour, Minute, Second int
}

// FileAttr is the (size, timestamp) pair reported for a file by
// fileDirectory and fileOpen responses.
type FileAttr struct {
	Size      uint32
	Timestamp Timestamp
}

// VarSpecPayload is a domain/item variable reference.
type VarSpecPayload struct {
	Domain CompactString
	Item   CompactString
}

// NameReqListClass enumerates the getNameList objectClass values.
type NameReqListClass int

const (
	ListClassVariable NameReqListClass = 0
	ListClassVarList  NameReqListClass = 2
	ListClassJournal  NameReqListClass = 8
	ListClassDomain   NameReqListClass = 9
)

// NameReqPayload is a getNameList request.
type NameReqPayload struct {
	Class         NameReqListClass
	Domain        CompactString
	ContinueAfter CompactString
	HasContinue   bool
}

// WriteRespPayload is one element of a write response.
type WriteRespPayload struct {
	Ok        bool
	ErrorCode DataAccessError
}

// WriteReqPayload pairs a VarSpec with the value to be written to it.
type WriteReqPayload struct {
	VarSpec VarSpecPayload
	Value   Value
}

// FopenReqPayload is a fileOpen request.
type FopenReqPayload struct {
	Path     CompactString
	Position uint32
}

// FopenRespPayload is a fileOpen response.
type FopenRespPayload struct {
	FRSM uint32
	Attr FileAttr
}

// FReadRespPayload is a fileRead response. Per the fileRead response
// truncation policy, only the first and last 4 bytes of the payload
// are retained; the interior is discarded at decode time and is not
// recoverable from the Node.
type FReadRespPayload struct {
	Size         uint32
	First4       [4]byte
	Last4        [4]byte
	MoreFollows  bool
}

// InitPayload is the Initiate PDU body, shared by request and
// response.
type InitPayload struct {
	LocalDetailCalling    uint32
	MaxOutstandingCalling uint8
	MaxOutstandingCalled  uint8
	NestingLevel          uint8
	Version               uint8
	ParameterCBB          ParameterCBB
	ServicesSupported     ServicesSupported
}

// TypeDescPayload is one node of the TypeDesc tree produced by
// getVariableAccessAttributes. For a complex (structure) node,
// Children holds the nested component TypeDescs in order; for a
// scalar node, ConstraintLength (or FloatConstraint for
// floating-point) carries the declared size constraint.
type TypeDescPayload struct {
	Name       CompactString
	TypeCode   byte
	IsComplex  bool
	Children   []TypeDescPayload
	// ConstraintLength is the declared max-length constraint for
	// scalar types that carry one (integer, unsigned, bit-string,
	// visible-string, mms-string).
	ConstraintLength uint32
	// FloatConstraint holds the fixed 7-byte floating-point
	// constraint placeholder verbatim; its fields are not otherwise
	// interpreted.
	FloatConstraint [7]byte
}

const (
	typeCodeBoolean       byte = 0x83
	typeCodeBitString     byte = 0x84
	typeCodeInteger       byte = 0x85
	typeCodeUnsigned      byte = 0x86
	typeCodeVisibleString byte = 0x8A
	typeCodeUnicode       byte = 0x90
	typeCodeUtcTime       byte = 0x91
	typeCodeFloatingPoint byte = 0xA7
	typeCodeComplex       byte = 0xA2
)

// Node is the polymorphic entity described by the data model: a kind
// tag plus kind-specific payload. Rendering and ownership are
// resolved by switching on Kind rather than by a function-pointer
// vtable.
type Node struct {
	Kind NodeKind

	FileSpec   CompactString
	DirEntry   struct {
		Name CompactString
		Attr FileAttr
	}
	VarSpec    VarSpecPayload
	UData      Value
	NameReq    NameReqPayload
	IdStr      CompactString
	WriteResp  WriteRespPayload
	WriteReq   WriteReqPayload
	FopenReq   FopenReqPayload
	FopenResp  FopenRespPayload
	FReadReq   uint32
	FReadResp  FReadRespPayload
	FCloseReq  uint32
	FCloseResp bool
	Init       InitPayload
	TypeDesc   TypeDescPayload
}

// decodeIdentifier reads one tag-prefixed VisibleString/GraphicString
// identifier and returns its text. MMS domain, item, and path
// components are all encoded this way.
func decodeIdentifier(c *ber.Cursor, tag ber.Tag) (CompactString, *Error) {
	start := c.Pos()
	if err := c.Expect(byte(tag)); err != nil {
		return CompactString{}, newErr(KindFlag, start)
	}
	_, length, err := c.ExpectLength()
	if err != nil {
		return CompactString{}, newErr(KindLength, start)
	}
	b, err := c.ReadN(length)
	if err != nil {
		return CompactString{}, newErr(KindLength, start)
	}
	return NewCompactString(string(b)), nil
}

// decodeDomainReference decodes the 0xa1-wrapped pair of sibling
// identifiers {domainId, itemId} that identifies a variable, per
// §4.3's domain reference grammar.
func decodeDomainReference(c *ber.Cursor) (VarSpecPayload, *Error) {
	start := c.Pos()
	if err := c.Expect(byte(ber.ContextSpecific1Constructed)); err != nil {
		return VarSpecPayload{}, newErr(KindFlag, start)
	}
	end, _, err := c.ExpectLength()
	if err != nil {
		return VarSpecPayload{}, newErr(KindLength, start)
	}

	domain, derr := decodeIdentifier(c, ber.VisibleString)
	if derr != nil {
		return VarSpecPayload{}, derr
	}
	item, ierr := decodeIdentifier(c, ber.VisibleString)
	if ierr != nil {
		return VarSpecPayload{}, ierr
	}
	if !c.AtEnd(end) {
		return VarSpecPayload{}, newErr(KindDomain, start)
	}
	return VarSpecPayload{Domain: domain, Item: item}, nil
}

// decodeVarSpec decodes one read-request VarSpec: a SEQUENCE
// containing a single name wrapper around a domain reference.
func decodeVarSpec(c *ber.Cursor) (VarSpecPayload, *Error) {
	start := c.Pos()
	if err := c.Expect(byte(ber.SequenceConstructed)); err != nil {
		return VarSpecPayload{}, newErr(KindFlag, start)
	}
	end, _, err := c.ExpectLength()
	if err != nil {
		return VarSpecPayload{}, newErr(KindLength, start)
	}
	if err := c.Expect(byte(ber.ContextSpecific0Constructed)); err != nil {
		return VarSpecPayload{}, newErr(KindFlag, c.Pos())
	}
	nameEnd, _, err := c.ExpectLength()
	if err != nil {
		return VarSpecPayload{}, newErr(KindLength, c.Pos())
	}
	vs, verr := decodeDomainReference(c)
	if verr != nil {
		return VarSpecPayload{}, verr
	}
	if !c.AtEnd(nameEnd) || !c.AtEnd(end) {
		return VarSpecPayload{}, newErr(KindLength, start)
	}
	return vs, nil
}

// decodeDigits parses every byte of b as an ASCII decimal digit,
// rejecting any non-digit byte per the strict timestamp validation
// policy (see the timestamp parsing design note).
func decodeDigits(b []byte) (int, bool) {
	v := 0
	for _, d := range b {
		if d < '0' || d > '9' {
			return 0, false
		}
		v = v*10 + int(d-'0')
	}
	return v, true
}

// decodeTimestamp parses the 15-byte yyyyMMddhhmmss directory-entry
// timestamp: 14 ASCII digit bytes followed by one terminator byte
// that is consumed but not interpreted. Every digit group must be
// all-digits; a single non-digit character anywhere in the 14-digit
// body fails the whole timestamp.
func decodeTimestamp(raw []byte) (Timestamp, bool) {
	if len(raw) != 15 {
		return Timestamp{}, false
	}
	year, ok := decodeDigits(raw[0:4])
	if !ok {
		return Timestamp{}, false
	}
	month, ok := decodeDigits(raw[4:6])
	if !ok {
		return Timestamp{}, false
	}
	day, ok := decodeDigits(raw[6:8])
	if !ok {
		return Timestamp{}, false
	}
	hour, ok := decodeDigits(raw[8:10])
	if !ok {
		return Timestamp{}, false
	}
	minute, ok := decodeDigits(raw[10:12])
	if !ok {
		return Timestamp{}, false
	}
	second, ok := decodeDigits(raw[12:14])
	if !ok {
		return Timestamp{}, false
	}
	return Timestamp{Year: year, Month: month, Day: day, Hour: hour, Minute: minute, Second: second}, true
}

// decodeDirEntry decodes one fileDirectory response entry: a SEQUENCE
// wrapping a filename wrapper and a (size, timestamp) attribute
// wrapper.
func decodeDirEntry(c *ber.Cursor) (Node, *Error) {
	start := c.Pos()
	if err := c.Expect(byte(ber.SequenceConstructed)); err != nil {
		return Node{}, newErr(KindFlag, start)
	}
	end, _, err := c.ExpectLength()
	if err != nil {
		return Node{}, newErr(KindLength, start)
	}

	if err := c.Expect(byte(ber.ContextSpecific0Constructed)); err != nil {
		return Node{}, newErr(KindFlag, c.Pos())
	}
	nameEnd, _, err := c.ExpectLength()
	if err != nil {
		return Node{}, newErr(KindLength, c.Pos())
	}
	name, nerr := decodeIdentifier(c, ber.GraphicString)
	if nerr != nil {
		return Node{}, nerr
	}
	if !c.AtEnd(nameEnd) {
		return Node{}, newErr(KindLength, start)
	}

	if err := c.Expect(byte(ber.ContextSpecific1Constructed)); err != nil {
		return Node{}, newErr(KindFlag, c.Pos())
	}
	attrEnd, _, err := c.ExpectLength()
	if err != nil {
		return Node{}, newErr(KindLength, c.Pos())
	}

	if err := c.Expect(byte(ber.ContextSpecific0Primitive)); err != nil {
		return Node{}, newErr(KindFlag, c.Pos())
	}
	_, sizeLen, err := c.ExpectLength()
	if err != nil {
		return Node{}, newErr(KindLength, c.Pos())
	}
	size, serr := c.ReadUint32(sizeLen)
	if serr != nil {
		return Node{}, newErr(KindLength, c.Pos())
	}

	if err := c.Expect(byte(ber.ContextSpecific1Primitive)); err != nil {
		return Node{}, newErr(KindFlag, c.Pos())
	}
	_, tsLen, err := c.ExpectLength()
	if err != nil || tsLen != 15 {
		return Node{}, newErr(KindLength, c.Pos())
	}
	raw, rerr := c.ReadN(tsLen)
	if rerr != nil {
		return Node{}, newErr(KindLength, c.Pos())
	}
	ts, ok := decodeTimestamp(raw)
	if !ok {
		return Node{}, newErr(KindDataType, start)
	}

	if !c.AtEnd(attrEnd) || !c.AtEnd(end) {
		return Node{}, newErr(KindLength, start)
	}

	n := Node{Kind: NodeDirEntry}
	n.DirEntry.Name = name
	n.DirEntry.Attr = FileAttr{Size: size, Timestamp: ts}
	return n, nil
}

// decodeTypeDesc decodes one TypeDesc tree node: a SEQUENCE of
// {name, constraint} where the constraint's first byte is the type
// code, recursing for the complex (0xa2) code.
func decodeTypeDesc(c *ber.Cursor, depth int) (TypeDescPayload, *Error) {
	if depth <= 0 {
		return TypeDescPayload{}, newErr(KindDepth, c.Pos())
	}
	start := c.Pos()
	if err := c.Expect(byte(ber.SequenceConstructed)); err != nil {
		return TypeDescPayload{}, newErr(KindFlag, start)
	}
	end, _, err := c.ExpectLength()
	if err != nil {
		return TypeDescPayload{}, newErr(KindLength, start)
	}

	name, nerr := decodeIdentifier(c, ber.ContextSpecific0Primitive)
	if nerr != nil {
		return TypeDescPayload{}, nerr
	}

	if err := c.Expect(byte(ber.ContextSpecific1Constructed)); err != nil {
		return TypeDescPayload{}, newErr(KindFlag, c.Pos())
	}
	constraintEnd, _, err := c.ExpectLength()
	if err != nil {
		return TypeDescPayload{}, newErr(KindLength, c.Pos())
	}

	typeCode, terr := c.ReadByte()
	if terr != nil {
		return TypeDescPayload{}, newErr(KindLength, c.Pos())
	}

	td := TypeDescPayload{Name: name, TypeCode: typeCode}

	switch typeCode {
	case typeCodeComplex:
		_, seqLen, serr := c.ExpectLength()
		if serr != nil {
			return TypeDescPayload{}, newErr(KindLength, c.Pos())
		}
		seqEnd := c.Pos() + seqLen
		td.IsComplex = true
		for c.Pos() < seqEnd {
			child, cerr := decodeTypeDesc(c, depth-1)
			if cerr != nil {
				return TypeDescPayload{}, cerr
			}
			td.Children = append(td.Children, child)
		}
		if !c.AtEnd(seqEnd) {
			return TypeDescPayload{}, newErr(KindLength, start)
		}

	case typeCodeBoolean, typeCodeUtcTime:
		// no constraint payload

	case typeCodeFloatingPoint:
		raw, ferr := c.ReadN(7)
		if ferr != nil {
			return TypeDescPayload{}, newErr(KindLength, c.Pos())
		}
		copy(td.FloatConstraint[:], raw)

	case typeCodeBitString, typeCodeInteger, typeCodeUnsigned,
		typeCodeVisibleString, typeCodeUnicode:
		_, ln, lerr := c.ExpectLength()
		if lerr != nil || ln > 4 {
			return TypeDescPayload{}, newErr(KindLength, c.Pos())
		}
		v, verr := c.ReadUint32(ln)
		if verr != nil {
			return TypeDescPayload{}, newErr(KindLength, c.Pos())
		}
		td.ConstraintLength = v

	default:
		return TypeDescPayload{}, newErr(KindDataType, start)
	}

	if !c.AtEnd(constraintEnd) || !c.AtEnd(end) {
		return TypeDescPayload{}, newErr(KindLength, start)
	}
	return td, nil
}
