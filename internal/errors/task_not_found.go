package errors

import "net/http"

var ErrTaskNotFound = newException(KindNotFound, http.StatusNotFound, "task not found")
