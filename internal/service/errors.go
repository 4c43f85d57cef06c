package service

import (
	"errors"
	"fmt"
)

// Kind classifies a business failure so the API boundary can map it
// to a status code without string matching.
type Kind int

const (
	KindUnexpected Kind = iota
	KindNotFound
	KindConflict
	KindInvalidState
	KindInsufficientStock
	KindInvalidRequest
)

// Error is a typed business-rule failure raised by services.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func InvalidStatef(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func InsufficientStockf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInsufficientStock, Message: fmt.Sprintf(format, args...)}
}

func InvalidRequestf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidRequest, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the failure kind, KindUnexpected for anything that is
// not a service error (store failures included).
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnexpected
}

func IsNotFound(err error) bool          { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool          { return KindOf(err) == KindConflict }
func IsInvalidState(err error) bool      { return KindOf(err) == KindInvalidState }
func IsInsufficientStock(err error) bool { return KindOf(err) == KindInsufficientStock }
func IsInvalidRequest(err error) bool    { return KindOf(err) == KindInvalidRequest }
