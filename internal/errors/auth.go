package errors

import "net/http"

var (
	ErrUnauthorized       = newException(KindUnauthorized, http.StatusUnauthorized, "authentication failed: invalid token")
	ErrInvalidCredentials = newException(KindUnauthorized, http.StatusUnauthorized, "invalid email or password")
	ErrEmailTaken         = newException(KindConflict, http.StatusConflict, "email already registered")
	ErrUserNotFound       = newException(KindNotFound, http.StatusNotFound, "user not found")
)
