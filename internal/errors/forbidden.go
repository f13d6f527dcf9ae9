package errors

import "net/http"

var ErrForbidden = newException(KindForbidden, http.StatusForbidden, "not authorized to access this task")
