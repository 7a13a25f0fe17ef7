package errors

import "fmt"

const (
	// Invalid Parameter
	ErrCLIInvalidParameter = 1501
	ErrCLIMissingKey       = 1502
	ErrCLIEmptyMerkleItems = 1503
	ErrCLITagMismatch      = 1504

	// Decode and read err
	ErrCLIDecodeHexString = 1601
	ErrCLIDigestLength    = 1602
	ErrCLIReadInput       = 1603

	// other err
	ErrCLIWorkerPool = 1701
	ErrCLIUnknownErr = 1702
)

var ErrCode = map[uint32]string{
	ErrCLIInvalidParameter: "Invalid parameter",
	ErrCLIMissingKey:       "HMAC key is required",
	ErrCLIEmptyMerkleItems: "Merkle root needs at least one item",
	ErrCLITagMismatch:      "HMAC tag does not match",
	ErrCLIDecodeHexString:  "Argument must be hexadecimal string",
	ErrCLIDigestLength:     "Merkle item must be a 32-byte hex digest",
	ErrCLIReadInput:        "Failed to read input",
	ErrCLIWorkerPool:       "Failed to run worker pool",
	ErrCLIUnknownErr:       "Unknown error",
}

// CodeError pairs one of the codes above with the error that caused it.
type CodeError struct {
	Code  uint32
	Cause error
}

// New returns a CodeError for code wrapping cause, which may be nil.
func New(code uint32, cause error) *CodeError {
	return &CodeError{Code: code, Cause: cause}
}

// Message returns the registered message of the code.
func (e *CodeError) Message() string {
	if msg, ok := ErrCode[e.Code]; ok {
		return msg
	}
	return ErrCode[ErrCLIUnknownErr]
}

func (e *CodeError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%d: %s", e.Code, e.Message())
	}
	return fmt.Sprintf("%d: %s: %v", e.Code, e.Message(), e.Cause)
}

// Unwrap returns the underlying cause.
func (e *CodeError) Unwrap() error {
	return e.Cause
}

// Code returns the code carried by err, or ErrCLIUnknownErr.
func Code(err error) uint32 {
	if ce, ok := err.(*CodeError); ok {
		return ce.Code
	}
	return ErrCLIUnknownErr
}
