package errors

import "net/http"

var ErrTaskAlreadyCompleted = newException(KindAlreadyCompleted, http.StatusConflict, "task is already completed")
