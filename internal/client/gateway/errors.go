package gateway

// ErrorKind classifies how a call failed.
type ErrorKind int

const (
	// KindTransport means the exchange itself never completed
	// (connectivity, DNS, TLS).
	KindTransport ErrorKind = iota
	// KindProtocol means the server answered with a failure status but no
	// usable JSON error detail.
	KindProtocol
	// KindApplication means the server answered with a failure status and a
	// JSON body carrying an error or message field.
	KindApplication
	// KindDecode means a success status carried a body that failed JSON
	// parsing when JSON was declared.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindProtocol:
		return "protocol"
	case KindApplication:
		return "application"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// RequestError is the failure type surfaced by Gateway.Call. Message is
// human-readable and safe to show directly; Status is zero when no HTTP
// response was received.
type RequestError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}
