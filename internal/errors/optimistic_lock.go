package errors

import "net/http"

var ErrOptimisticLock = newException(KindConflict, http.StatusConflict, "task was modified concurrently, retry the request")
