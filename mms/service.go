package mms

import "github.com/slonegd/mmsdump/ber"

// MessageClass discriminates the top-level MMS PDU kind.
type MessageClass int

const (
	ClassUnknown MessageClass = iota
	ClassRequest
	ClassResponse
	ClassReport
	ClassInitiateRequest
	ClassInitiateResponse
)

const (
	classByteRequest         = 0xA0
	classByteResponse        = 0xA1
	classByteReport          = 0xA3
	classByteInitiateRequest = 0xA8
	classByteInitiateResponse = 0xA9
)

// ServiceID is one of the nine MMS confirmed services this decoder
// recognises.
type ServiceID byte

const (
	ServiceFileOpen                     ServiceID = 0x48
	ServiceFileRead                     ServiceID = 0x49
	ServiceFileClose                    ServiceID = 0x4A
	ServiceFileDirectory                ServiceID = 0x4D
	ServiceGetNameList                  ServiceID = 0xA1
	ServiceRead                         ServiceID = 0xA4
	ServiceWrite                        ServiceID = 0xA5
	ServiceGetVariableAccessAttributes  ServiceID = 0xA6
	ServiceGetNamedVariableListAttrs    ServiceID = 0xAC
)

// Service is the decoded top-level message: a tagged record
// discriminated by Class. Every Service carries an Err (nil on
// success) and the Offset at which decoding stopped, set by the
// dispatcher the moment a failure is observed; whatever Nodes were
// already decoded up to that point are preserved rather than
// discarded, so a diagnostic renderer can still show partial
// structure.
type Service struct {
	Class     MessageClass
	InvokeID  uint32
	ServiceID ServiceID

	Nodes []Node

	HasMoreFollows bool
	MoreFollows    bool
	HasDeletable   bool
	Deletable      bool

	Init InitPayload

	Err    *Error
	Offset int
}

// Parse decodes one framed MMS PDU. It never returns nil: a
// malformed or truncated input yields a Service with Err set and
// whatever partial structure was recovered before the failure.
func Parse(data []byte) *Service {
	c := ber.NewCursor(data)
	svc := &Service{}

	classByte, err := c.PeekByte()
	if err != nil {
		svc.fail(newErr(KindMsgType, c.Pos()))
		return svc
	}

	switch classByte {
	case classByteRequest:
		svc.Class = ClassRequest
		decodeConfirmed(c, svc, true)
	case classByteResponse:
		svc.Class = ClassResponse
		decodeConfirmed(c, svc, false)
	case classByteReport:
		svc.Class = ClassReport
		decodeReport(c, svc)
	case classByteInitiateRequest:
		svc.Class = ClassInitiateRequest
		decodeInitiate(c, svc)
	case classByteInitiateResponse:
		svc.Class = ClassInitiateResponse
		decodeInitiate(c, svc)
	default:
		svc.fail(newErr(KindMsgType, c.Pos()))
	}

	return svc
}

// fail records the first error seen onto the Service. Subsequent
// calls are no-ops so the offset always reflects the earliest
// failure.
func (s *Service) fail(err *Error) {
	if err == nil || s.Err != nil {
		return
	}
	s.Err = err
	s.Offset = err.Offset
}

// decodeConfirmed handles both Confirmed-Request and Confirmed-Response
// PDUs, which share an outer-length/invoke-id/service-id prefix.
func decodeConfirmed(c *ber.Cursor, svc *Service, isRequest bool) {
	start := c.Pos()
	c.ReadByte() // class byte already inspected by caller
	end, _, err := c.ExpectLength()
	if err != nil {
		svc.fail(newErr(KindLength, start))
		return
	}

	if err := c.Expect(byte(ber.Integer)); err != nil {
		svc.fail(newErr(KindInvoke, c.Pos()))
		return
	}
	_, invokeLen, lerr := c.ExpectLength()
	if lerr != nil || invokeLen == 0 || invokeLen > 4 {
		svc.fail(newErr(KindInvoke, c.Pos()))
		return
	}
	invokeID, ierr := c.ReadUint32(invokeLen)
	if ierr != nil {
		svc.fail(newErr(KindInvoke, c.Pos()))
		return
	}
	svc.InvokeID = invokeID

	// Optional context-specific high-tag-number wrapper.
	if peek, perr := c.PeekByte(); perr == nil &&
		(ber.Tag(peek) == ber.HighTagNumberConstructed || ber.Tag(peek) == ber.HighTagNumberPrimitive) {
		c.ReadByte()
		if _, _, werr := c.ExpectLength(); werr != nil {
			svc.fail(newErr(KindLength, c.Pos()))
			return
		}
	}

	svcIDByte, serr := c.PeekByte()
	if serr != nil {
		svc.fail(newErr(KindReqType, c.Pos()))
		return
	}
	svc.ServiceID = ServiceID(svcIDByte)

	var derr *Error
	if isRequest {
		derr = dispatchRequest(c, svc)
	} else {
		derr = dispatchResponse(c, svc)
	}
	if derr != nil {
		svc.fail(derr)
		return
	}
	if !c.AtEnd(end) {
		svc.fail(newErr(KindLength, start))
	}
}

func dispatchRequest(c *ber.Cursor, svc *Service) *Error {
	switch svc.ServiceID {
	case ServiceFileOpen:
		return decodeFileOpenRequest(c, svc)
	case ServiceFileRead:
		return decodeFileReadRequest(c, svc)
	case ServiceFileClose:
		return decodeFileCloseRequest(c, svc)
	case ServiceFileDirectory:
		return decodeFileDirectoryRequest(c, svc)
	case ServiceGetNameList:
		return decodeGetNameListRequest(c, svc)
	case ServiceRead:
		return decodeReadRequest(c, svc)
	case ServiceWrite:
		return decodeWriteRequest(c, svc)
	case ServiceGetVariableAccessAttributes:
		return decodeGetVariableAccessAttributesRequest(c, svc)
	case ServiceGetNamedVariableListAttrs:
		return decodeGetNamedVariableListAttributesRequest(c, svc)
	default:
		return newErr(KindReqType, c.Pos())
	}
}

func dispatchResponse(c *ber.Cursor, svc *Service) *Error {
	switch svc.ServiceID {
	case ServiceFileOpen:
		return decodeFileOpenResponse(c, svc)
	case ServiceFileRead:
		return decodeFileReadResponse(c, svc)
	case ServiceFileClose:
		return decodeFileCloseResponse(c, svc)
	case ServiceFileDirectory:
		return decodeFileDirectoryResponse(c, svc)
	case ServiceGetNameList:
		return decodeGetNameListResponse(c, svc)
	case ServiceRead:
		return decodeReadResponse(c, svc)
	case ServiceWrite:
		return decodeWriteResponse(c, svc)
	case ServiceGetVariableAccessAttributes:
		return decodeGetVariableAccessAttributesResponse(c, svc)
	case ServiceGetNamedVariableListAttrs:
		return decodeGetNamedVariableListAttributesResponse(c, svc)
	default:
		return newErr(KindRespType, c.Pos())
	}
}
