package mms

// Kind is the closed set of decode failure categories. Every decoder
// in this package reports failures as a Kind plus the cursor offset
// at which the failure was observed rather than as a Go error that
// unwinds the call stack; see Error and the Service.Err field.
type Kind int

const (
	KindNone Kind = iota // 0: success, the reserved zero value
	KindNull             // missing required pointer/slice
	KindFlag             // a fixed tag byte did not match expectation
	KindLength           // length prefix invalid, overruns, or child/parent lengths disagree
	KindDataType         // unknown value tag inside a Data CHOICE
	KindMsgType          // unknown top-level message class
	KindInvoke           // invoke-id field malformed or too wide
	KindReqType          // unknown confirmed-request service-id
	KindRespType         // unknown confirmed-response service-id
	KindMemAlloc         // allocation failure
	KindDataNode         // sub-node construction failed
	KindDomain           // domain reference malformed
	KindDepth            // recursion bound exceeded
)

var kindNames = [...]string{
	KindNone:     "MMS_ERR_NONE",
	KindNull:     "MMS_ERR_NULL",
	KindFlag:     "MMS_ERR_FLAG",
	KindLength:   "MMS_ERR_LENGTH",
	KindDataType: "MMS_ERR_DATATYPE",
	KindMsgType:  "MMS_ERR_MSGTYPE",
	KindInvoke:   "MMS_ERR_INVOKE",
	KindReqType:  "MMS_ERR_REQTYPE",
	KindRespType: "MMS_ERR_RESPTYPE",
	KindMemAlloc: "MMS_ERR_MEMALLOC",
	KindDataNode: "MMS_ERR_DATANODE",
	KindDomain:   "MMS_ERR_DOMAIN",
	KindDepth:    "MMS_ERR_DEPTH",
}

// String renders the stable diagnostic name used in rendered output,
// e.g. "MMS_ERR_FLAG".
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "MMS_ERR_UNKNOWN"
	}
	return kindNames[k]
}

// Error pairs a failure Kind with the byte offset at which it was
// detected. It is never propagated as a panic or returned up through
// an ordinary Go error chain inside the decoder: every internal
// decode function returns a *Error (alongside its decoded payload,
// where it has one) and the service
// dispatcher is the single place that records the first one it sees
// onto the Service being built.
type Error struct {
	Kind   Kind
	Offset int
}

func (e *Error) Error() string {
	if e == nil {
		return KindNone.String()
	}
	return e.Kind.String()
}

// newErr is a small constructor used pervasively by the decoders.
func newErr(kind Kind, offset int) *Error {
	return &Error{Kind: kind, Offset: offset}
}
