package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies failures so callers can react without string matching.
type ErrorKind string

const (
	KindNotFound         ErrorKind = "not_found"
	KindConflict         ErrorKind = "conflict"
	KindInvalidOperation ErrorKind = "invalid_operation"
	// KindParseSkip marks a legacy row that could not be normalized. It is
	// tallied by the importer and never returned to HTTP callers.
	KindParseSkip ErrorKind = "parse_skip"
)

type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NotFound(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func InvalidOperation(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindInvalidOperation, Message: fmt.Sprintf(format, args...)}
}

func ParseSkip(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindParseSkip, Message: fmt.Sprintf(format, args...)}
}

// WrapKind attaches a kind to an underlying error, keeping it reachable via errors.Is.
func WrapKind(kind ErrorKind, err error, format string, args ...interface{}) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of the first AppError in err's chain, or "" if none.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps an error kind onto the status code returned by controllers.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindInvalidOperation, KindParseSkip:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
