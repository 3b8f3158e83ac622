package ber

// Tag represents a BER identifier octet value.
type Tag byte

// Universal tags exercised by the MMS grammar (X.690).
const (
	Integer       Tag = 0x02 // INTEGER
	GraphicString Tag = 0x19 // GraphicString
	VisibleString Tag = 0x1A // VisibleString (ISO646String)
)

// SequenceConstructed is the universal SEQUENCE tag in constructed form.
const SequenceConstructed Tag = 0x30

// Context-specific constructed tags used to wrap VarSpec/TypeDesc/
// file-directory elements.
const (
	ContextSpecific0Constructed Tag = 0xA0
	ContextSpecific1Constructed Tag = 0xA1
	ContextSpecific4Constructed Tag = 0xA4

	// HighTagNumberConstructed/Primitive are the context-specific
	// wrappers MMS uses for confirmed-service payloads whose tag
	// number does not fit the 5-bit identifier octet (tag number 31,
	// the "high tag number form" of X.690 8.1.2.4).
	HighTagNumberConstructed Tag = 0xBF
	HighTagNumberPrimitive   Tag = 0x9F
)

// Context-specific primitive tags used for names, sizes, and
// directory-entry fields.
const (
	ContextSpecific0Primitive Tag = 0x80
	ContextSpecific1Primitive Tag = 0x81
	ContextSpecific2Primitive Tag = 0x82
	ContextSpecific3Primitive Tag = 0x83
)

// Data CHOICE tags (MMS ISO 9506-2 Data type), context-specific primitive
// except Structure and AccessResult's own wrapper, which are constructed.
const (
	DataBoolean       Tag = 0x83
	DataBitString     Tag = 0x84
	DataInteger       Tag = 0x85
	DataUnsigned      Tag = 0x86
	DataFloatingPoint Tag = 0x87
	DataOctetString   Tag = 0x89
	DataVisibleString Tag = 0x8A
	DataBinaryTime    Tag = 0x8C
	DataUtcTime       Tag = 0x91
	DataStructure     Tag = 0xA2

	AccessResultFailure Tag = 0x80
)
