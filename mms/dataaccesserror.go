package mms

// DataAccessError is the closed 0..11 code set a server may return in
// place of a value in a write response or a read AccessResult.
type DataAccessError uint8

const (
	ObjectInvalidated           DataAccessError = 0
	HardwareFault                DataAccessError = 1
	TemporarilyUnavailable       DataAccessError = 2
	ObjectAccessDenied           DataAccessError = 3
	ObjectUndefined              DataAccessError = 4
	InvalidAddress               DataAccessError = 5
	TypeUnsupported              DataAccessError = 6
	TypeInconsistent             DataAccessError = 7
	ObjectAttributeInconsistent  DataAccessError = 8
	ObjectAccessUnsupported      DataAccessError = 9
	ObjectNonExistent            DataAccessError = 10
	ObjectValueInvalid           DataAccessError = 11
)

var dataAccessErrorNames = [...]string{
	ObjectInvalidated:          "object-invalidated",
	HardwareFault:              "hardware-fault",
	TemporarilyUnavailable:     "temporarily-unavailable",
	ObjectAccessDenied:         "object-access-denied",
	ObjectUndefined:            "object-undefined",
	InvalidAddress:             "invalid-address",
	TypeUnsupported:            "type-unsupported",
	TypeInconsistent:           "type-inconsistent",
	ObjectAttributeInconsistent: "object-attribute-inconsistent",
	ObjectAccessUnsupported:    "object-access-unsupported",
	ObjectNonExistent:          "object-non-existent",
	ObjectValueInvalid:         "object-value-invalid",
}

// String renders the fixed DataAccessError name, or "unknown" for a
// code outside the closed 0..11 set (which the decoder never
// constructs, but a future caller-built value might carry).
func (e DataAccessError) String() string {
	if int(e) < 0 || int(e) >= len(dataAccessErrorNames) {
		return "unknown"
	}
	return dataAccessErrorNames[e]
}
