// Package towererr defines the error kinds shared by the protocol, device and
// dispatch layers.
//
// Every failure the core can produce is a *Error carrying a Kind. Callers
// branch on the kind with Is or KindOf rather than on message text:
//
//	if towererr.Is(err, towererr.DeviceNotFound) {
//	    // plug the tower in
//	}
package towererr

import (
	"errors"
	"fmt"
)

// Kind is the category of a failure.
type Kind int

const (
	// Unknown is reported by KindOf for errors that are not *Error.
	Unknown Kind = iota
	// DeviceNotFound means no USB device matched the vendor/product ID.
	DeviceNotFound
	// InterfaceNotFound means the control interface (number 1, alt 0) is missing.
	InterfaceNotFound
	// EndpointNotFound means the interface lacks a bulk OUT or bulk IN endpoint.
	EndpointNotFound
	// TransportTimeout means a bulk transfer did not complete in time.
	TransportTimeout
	// TransportError is any other bulk transfer failure, including short writes.
	TransportError
	// UnknownEnumValue means a name is not a member of a protocol enumeration.
	UnknownEnumValue
	// UnknownColorName means a colour name is not in the colour table.
	UnknownColorName
	// ValueOutOfRange means a numeric argument does not fit its protocol field.
	ValueOutOfRange
	// InvalidArgument means an argument could not be parsed at all.
	InvalidArgument
	// PayloadLengthMismatch is an internal invariant violation in the codec.
	PayloadLengthMismatch
	// MalformedResponse means an inbound frame failed structural validation.
	MalformedResponse
	// BuzzerStuckOn means a timed buzzer could not be switched off after the wait.
	BuzzerStuckOn
)

var kindNames = map[Kind]string{
	Unknown:               "Unknown",
	DeviceNotFound:        "DeviceNotFound",
	InterfaceNotFound:     "InterfaceNotFound",
	EndpointNotFound:      "EndpointNotFound",
	TransportTimeout:      "TransportTimeout",
	TransportError:        "TransportError",
	UnknownEnumValue:      "UnknownEnumValue",
	UnknownColorName:      "UnknownColorName",
	ValueOutOfRange:       "ValueOutOfRange",
	InvalidArgument:       "InvalidArgument",
	PayloadLengthMismatch: "PayloadLengthMismatch",
	MalformedResponse:     "MalformedResponse",
	BuzzerStuckOn:         "BuzzerStuckOn",
}

// String returns the kind name used in CLI output.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is a categorised failure.
type Error struct {
	Kind    Kind   // Category of error
	Message string // Human-readable message
	Err     error  // Underlying error (if any)
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error of the given kind around cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: cause}
}

// KindOf returns the kind of the outermost *Error in err's chain.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return Unknown
}

// Is reports whether any *Error in err's chain has the given kind.
func Is(err error, kind Kind) bool {
	for err != nil {
		var te *Error
		if !errors.As(err, &te) {
			return false
		}
		if te.Kind == kind {
			return true
		}
		err = te.Err
	}
	return false
}
