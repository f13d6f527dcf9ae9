package errors

import "net/http"

var (
	ErrTitleRequired     = validation("title is required")
	ErrInvalidImportance = validation("importance must be one of: less important, important, very important")
	ErrInvalidDueDate    = validation("due date cannot be before the original due date")
	ErrNoDueDate         = validation("task has no due date to extend")
	ErrInvalidDays       = validation("days must be between 1 and 36500 and keep the due date within year 9999")
	ErrInvalidSortField  = validation("unsupported sort field")
	ErrInvalidSortOrder  = validation("sort order must be asc or desc")
	ErrInvalidTimezone   = validation("invalid timezone")
	ErrInvalidDateTime   = validation("invalid date format")
	ErrDateOutOfRange    = validation("date must not be later than 9999-12-31")
	ErrTaskIDRequired    = validation("task id is required")
	ErrInvalidJSON       = validation("invalid JSON payload")
	ErrEmailRequired     = validation("a valid email is required")
	ErrPasswordTooShort  = validation("password must be at least 8 characters")
)

func validation(message string) *Exception {
	return newException(KindValidation, http.StatusBadRequest, message)
}
