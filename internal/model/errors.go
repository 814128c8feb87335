package model

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can react without inspecting
// source-specific error types.
type Kind string

const (
	// KindInvalidParameter means a caller-supplied value failed validation
	// before any network call was made.
	KindInvalidParameter Kind = "invalid_parameter"

	// KindSourceNotFound means the remote confirmed the named collection
	// does not exist.
	KindSourceNotFound Kind = "source_not_found"

	// KindRecordNotFound means the remote confirmed the identified page or
	// item does not exist.
	KindRecordNotFound Kind = "record_not_found"

	// KindSourceUnavailable covers transport failures and unexpected HTTP
	// statuses from an upstream service.
	KindSourceUnavailable Kind = "source_unavailable"

	// KindMalformedResponse means the payload could not be parsed into the
	// expected structure.
	KindMalformedResponse Kind = "malformed_response"

	// KindNoResults means a search succeeded but returned zero hits.
	KindNoResults Kind = "no_results"

	// KindEmptyResult means a listing succeeded but contained no usable items.
	KindEmptyResult Kind = "empty_result"

	// KindGenerationFailed means the generation service errored or returned
	// no usable text.
	KindGenerationFailed Kind = "generation_failed"
)

// Error is the shared error shape for fetchers, the composer, and the
// generation client: a kind tag, the operation that failed, and the
// underlying cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// E builds an *Error. If err already carries a kind it is returned unchanged
// so the original classification survives intermediate calls.
func E(kind Kind, op string, err error) error {
	var me *Error
	if errors.As(err, &me) {
		return err
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf builds an *Error from a formatted message.
func Errorf(kind Kind, op, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf reports the kind carried by err, or "" when err has none.
func KindOf(err error) Kind {
	var me *Error
	if errors.As(err, &me) {
		return me.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
