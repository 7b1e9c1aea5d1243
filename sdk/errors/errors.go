package sdkerrors

import (
	"fmt"
)

// ConfigurationError is returned when a required identity or parameter is missing or invalid.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

func NewConfigurationError(field, reason string) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: reason}
}

// NotFoundError is returned when an expected remote account does not exist.
type NotFoundError struct {
	Kind    string
	Address string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s account not found: %s", e.Kind, e.Address)
}

func NewNotFoundError(kind, address string) *NotFoundError {
	return &NotFoundError{Kind: kind, Address: address}
}

// DecodeError is returned when account bytes don't match the expected layout.
type DecodeError struct {
	Kind    string
	Address string
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Address == "" {
		return fmt.Sprintf("unable to decode %s: %v", e.Kind, e.Err)
	}

	return fmt.Sprintf("unable to decode %s account %s: %v", e.Kind, e.Address, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func NewDecodeError(kind, address string, err error) *DecodeError {
	return &DecodeError{Kind: kind, Address: address, Err: err}
}

// RemoteRejectionError is returned when the cluster refuses or fails a submitted transaction.
type RemoteRejectionError struct {
	Signature string
	Reason    string
	Err       error
}

func (e *RemoteRejectionError) Error() string {
	msg := "transaction rejected"
	if e.Signature != "" {
		msg += " (" + e.Signature + ")"
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *RemoteRejectionError) Unwrap() error {
	return e.Err
}

func NewRemoteRejectionError(signature, reason string, err error) *RemoteRejectionError {
	return &RemoteRejectionError{Signature: signature, Reason: reason, Err: err}
}

// UsageError is returned for invalid parameter combinations or unsupported shapes.
type UsageError struct {
	Reason string
	Err    error
}

func (e *UsageError) Error() string {
	return "usage error: " + e.Reason
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

func NewUsageError(format string, args ...any) *UsageError {
	return &UsageError{Reason: fmt.Sprintf(format, args...)}
}

// WrapUsageError reports a sentinel error as a usage error, keeping it matchable with errors.Is.
func WrapUsageError(err error) *UsageError {
	return &UsageError{Reason: err.Error(), Err: err}
}
