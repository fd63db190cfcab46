package errors

import "net/http"

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// Constructors for the error kinds this service produces.
// Each kind maps to exactly one status code, so the kind can be
// recovered from the code alone.

func Unauthenticated(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusUnauthorized}
}

func Forbidden(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusForbidden}
}

func NotFound(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusNotFound}
}

func ValueConflict(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusConflict}
}

func InvalidInput(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusBadRequest}
}

// IntegrityFault marks a broken storage invariant (e.g. a counter that
// would go negative). Never user-triggerable.
func IntegrityFault(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusInternalServerError}
}

func IsStatus(err error, statusCode int) bool {
	if e, ok := err.(*ErrorWithStatusCode); ok {
		return e.StatusCode == statusCode
	}
	return false
}

func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

func IsForbidden(err error) bool {
	return IsStatus(err, http.StatusForbidden)
}

func IsUnauthenticated(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

func IsConflict(err error) bool {
	return IsStatus(err, http.StatusConflict)
}
