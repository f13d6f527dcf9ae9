package errors

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindValidation       Kind = "validation"
	KindNotFound         Kind = "not_found"
	KindForbidden        Kind = "forbidden"
	KindAlreadyCompleted Kind = "already_completed"
	KindConflict         Kind = "conflict"
	KindUnauthorized     Kind = "unauthorized"
)

type Exception struct {
	Kind       Kind
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

func newException(kind Kind, status int, message string) *Exception {
	return &Exception{Kind: kind, Message: message, StatusCode: status}
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// KindOf reports the kind of the first Exception in err's chain.
func KindOf(err error) (Kind, bool) {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return "", false
}

func IsValidation(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindValidation
}
