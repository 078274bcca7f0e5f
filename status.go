package bufpack

// Status is the closed set of outcomes a Serializer or Deserializer
// operation can report. A non-OK Status is the error value returned by the
// failing call; there is no sticky per-instance error state.
type Status uint8

const (
	StatusOK Status = iota
	StatusOutOfRange           // operation would exceed the buffer capacity
	StatusStringOutOfRange     // string frame would exceed the buffer capacity
	StatusStringSizeOutOfRange // length prefix itself does not fit
	StatusNilOutput            // caller-supplied output buffer is nil or empty
	StatusOutOfMemory          // owned-string allocation failed
	StatusValidatorMissing     // no enum validator supplied
	StatusValidatorRejected    // enum validator returned false
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "operation successful"
	case StatusOutOfRange:
		return "operation out of range"
	case StatusStringOutOfRange:
		return "string operation out of range"
	case StatusStringSizeOutOfRange:
		return "string size out of range"
	case StatusNilOutput:
		return "output buffer is nil"
	case StatusOutOfMemory:
		return "string allocation failed"
	case StatusValidatorMissing:
		return "enum validator is nil"
	case StatusValidatorRejected:
		return "enum validator returned false"
	default:
		return "invalid status"
	}
}

func (s Status) Error() string { return s.String() }
