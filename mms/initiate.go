package mms

import "github.com/slonegd/mmsdump/ber"

// ParameterCBBBitCount is the width of the parameter-CBB bitmap
// carried by the Initiate PDU.
const ParameterCBBBitCount = 11

// ServicesSupportedBitCount is the width of the services-supported
// bitmap carried by the Initiate PDU.
const ServicesSupportedBitCount = 85

// parameterCBBNames names each bit of the 11-bit parameter
// Conformance Building Block bitmap, MSB first.
var parameterCBBNames = [ParameterCBBBitCount]string{
	"str1", "str2", "vnam", "valt", "vadr", "vsca",
	"tpy", "vlis", "real", "spareBit9", "cei",
}

// servicesSupportedNames names each bit of the 85-bit services
// supported bitmap, MSB first. The order of the names has not been
// checked against the ISO 9506-2 bit assignments.
var servicesSupportedNames = [ServicesSupportedBitCount]string{
	"status", "getNameList", "identify", "rename", "read", "write",
	"getVariableAccessAttributes", "defineNamedVariable", "defineScatteredAccess",
	"getScatteredAccessAttributes", "defineNamedVariableList", "getNamedVariableListAttributes",
	"deleteNamedVariableList", "defineNamedType", "getNamedTypeAttributes", "deleteNamedType",
	"input", "output", "takeControl", "relinquishControl", "defineSemaphore", "deleteSemaphore",
	"reportSemaphoreStatus", "reportPoolSemaphoreStatus", "reportSemaphoreEntryStatus",
	"initiateDownloadSequence", "downloadSegment", "terminateDownloadSequence",
	"initiateUploadSequence", "uploadSegment", "terminateUploadSequence",
	"requestDomainDownload", "requestDomainUpload", "loadDomainContent", "storeDomainContent",
	"deleteDomain", "getDomainAttributes", "createProgramInvocation", "deleteProgramInvocation",
	"start", "stop", "resume", "reset", "kill", "getProgramInvocationAttributes", "obtainFile",
	"defineEventCondition", "deleteEventCondition", "getEventConditionAttributes",
	"reportEventConditionStatus", "alterEventConditionMonitoring", "triggerEvent",
	"defineEventAction", "deleteEventAction", "getEventActionAttributes", "reportActionStatus",
	"defineEventEnrollment", "deleteEventEnrollment", "alterEventEnrollment",
	"reportEventEnrollmentStatus", "getEventEnrollmentAttributes", "acknowledgeEventNotification",
	"getAlarmSummary", "getAlarmEnrollmentSummary", "readJournal", "writeJournal",
	"initializeJournal", "reportJournalStatus", "createJournal", "deleteJournal",
	"getCapabilityList", "fileOpen", "fileRead", "fileClose", "fileRename", "fileDelete",
	"fileDirectory", "unsolicitedStatus", "informationReport", "eventNotification",
	"attachToEventCondition", "attachToSemaphore", "conclude", "cancel", "reserved83",
}

// ParameterCBB is the decoded 11-bit parameter Conformance Building
// Block bitmap.
type ParameterCBB struct{ bits ber.BitString }

// Has reports whether bit i is set. i must be in [0, ParameterCBBBitCount).
func (p ParameterCBB) Has(i int) bool { return p.bits.Get(i) }

// ServicesSupported is the decoded 85-bit services-supported bitmap.
type ServicesSupported struct{ bits ber.BitString }

// Has reports whether bit i is set. i must be in [0, ServicesSupportedBitCount).
func (s ServicesSupported) Has(i int) bool { return s.bits.Get(i) }

// decodeInitiate handles both Initiate-Request and Initiate-Response,
// which share an identical field layout.
func decodeInitiate(c *ber.Cursor, svc *Service) {
	start := c.Pos()
	c.ReadByte()
	end, _, err := c.ExpectLength()
	if err != nil {
		svc.fail(newErr(KindLength, start))
		return
	}

	if ierr := readScalarField(c, byte(ber.ContextSpecific0Primitive), 4, func(v uint32) { svc.Init.LocalDetailCalling = v }); ierr != nil {
		svc.fail(ierr)
		return
	}
	if ierr := readScalarField(c, byte(ber.ContextSpecific1Primitive), 1, func(v uint32) { svc.Init.MaxOutstandingCalling = uint8(v) }); ierr != nil {
		svc.fail(ierr)
		return
	}
	if ierr := readScalarField(c, byte(ber.ContextSpecific2Primitive), 1, func(v uint32) { svc.Init.MaxOutstandingCalled = uint8(v) }); ierr != nil {
		svc.fail(ierr)
		return
	}
	if ierr := readScalarField(c, byte(ber.ContextSpecific3Primitive), 1, func(v uint32) { svc.Init.NestingLevel = uint8(v) }); ierr != nil {
		svc.fail(ierr)
		return
	}

	if err := c.Expect(byte(ber.ContextSpecific4Constructed)); err != nil {
		svc.fail(newErr(KindFlag, c.Pos()))
		return
	}
	detailEnd, _, derr := c.ExpectLength()
	if derr != nil {
		svc.fail(newErr(KindLength, c.Pos()))
		return
	}

	if ierr := readScalarField(c, byte(ber.ContextSpecific0Primitive), 1, func(v uint32) { svc.Init.Version = uint8(v) }); ierr != nil {
		svc.fail(ierr)
		return
	}

	if err := c.Expect(byte(ber.ContextSpecific1Primitive)); err != nil {
		svc.fail(newErr(KindFlag, c.Pos()))
		return
	}
	_, cbbLen, cerr := c.ExpectLength()
	if cerr != nil {
		svc.fail(newErr(KindLength, c.Pos()))
		return
	}
	cbbPayload, rerr := c.ReadN(cbbLen)
	if rerr != nil {
		svc.fail(newErr(KindLength, c.Pos()))
		return
	}
	cbbBits, berr := ber.DecodeBitString(cbbPayload)
	if berr != nil {
		svc.fail(newErr(KindLength, c.Pos()))
		return
	}
	svc.Init.ParameterCBB = ParameterCBB{bits: cbbBits}

	if err := c.Expect(byte(ber.ContextSpecific2Primitive)); err != nil {
		svc.fail(newErr(KindFlag, c.Pos()))
		return
	}
	_, svcLen, serr := c.ExpectLength()
	if serr != nil {
		svc.fail(newErr(KindLength, c.Pos()))
		return
	}
	svcPayload, rerr2 := c.ReadN(svcLen)
	if rerr2 != nil {
		svc.fail(newErr(KindLength, c.Pos()))
		return
	}
	svcBits, berr2 := ber.DecodeBitString(svcPayload)
	if berr2 != nil {
		svc.fail(newErr(KindLength, c.Pos()))
		return
	}
	svc.Init.ServicesSupported = ServicesSupported{bits: svcBits}

	if !c.AtEnd(detailEnd) || !c.AtEnd(end) {
		svc.fail(newErr(KindLength, start))
		return
	}
}

// readScalarField expects tag, a length no wider than maxLen bytes,
// decodes the value big-endian, and hands it to set.
func readScalarField(c *ber.Cursor, tag byte, maxLen int, set func(uint32)) *Error {
	start := c.Pos()
	if err := c.Expect(tag); err != nil {
		return newErr(KindFlag, start)
	}
	_, length, lerr := c.ExpectLength()
	if lerr != nil || length > maxLen {
		return newErr(KindLength, c.Pos())
	}
	v, rerr := c.ReadUint32(length)
	if rerr != nil {
		return newErr(KindLength, c.Pos())
	}
	set(v)
	return nil
}

// decodeReport decodes an unsolicited informationReport: the fixed
// "RPT" variant-name prefix followed by a sequence of Data values.
func decodeReport(c *ber.Cursor, svc *Service) {
	start := c.Pos()
	c.ReadByte()
	end, _, err := c.ExpectLength()
	if err != nil {
		svc.fail(newErr(KindLength, start))
		return
	}

	if err := c.Expect(byte(ber.ContextSpecific0Constructed)); err != nil {
		svc.fail(newErr(KindFlag, c.Pos()))
		return
	}
	outerEnd, _, oerr := c.ExpectLength()
	if oerr != nil {
		svc.fail(newErr(KindLength, c.Pos()))
		return
	}

	if err := c.Expect(byte(ber.ContextSpecific1Constructed)); err != nil {
		svc.fail(newErr(KindFlag, c.Pos()))
		return
	}
	_, nameLen, nerr := c.ExpectLength()
	if nerr != nil || nameLen != 5 {
		svc.fail(newErr(KindLength, c.Pos()))
		return
	}
	if err := c.Expect(byte(ber.ContextSpecific0Primitive)); err != nil {
		svc.fail(newErr(KindFlag, c.Pos()))
		return
	}
	_, variantLen, verr := c.ExpectLength()
	if verr != nil || variantLen != 3 {
		svc.fail(newErr(KindLength, c.Pos()))
		return
	}
	variant, rerr := c.ReadN(3)
	if rerr != nil {
		svc.fail(newErr(KindLength, c.Pos()))
		return
	}
	if string(variant) != "RPT" {
		svc.fail(newErr(KindFlag, c.Pos()))
		return
	}

	if err := c.Expect(byte(ber.ContextSpecific0Constructed)); err != nil {
		svc.fail(newErr(KindFlag, c.Pos()))
		return
	}
	valuesEnd, _, lerr := c.ExpectLength()
	if lerr != nil {
		svc.fail(newErr(KindLength, c.Pos()))
		return
	}
	for c.Pos() < valuesEnd {
		v, derr := DecodeValue(c, MaxValueDepth)
		if derr != nil {
			svc.fail(derr)
			return
		}
		svc.Nodes = append(svc.Nodes, Node{Kind: NodeUData, UData: v})
	}
	if !c.AtEnd(valuesEnd) || !c.AtEnd(outerEnd) || !c.AtEnd(end) {
		svc.fail(newErr(KindLength, start))
		return
	}
}
