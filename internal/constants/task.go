package constants

import "time"

const DefaultDescription = "No Description"

// MaxExtensionDays bounds a single due-date extension.
const MaxExtensionDays = 36500

// LatestDueDate is the last instant that survives the SQLite text
// round trip and JSON encoding.
var LatestDueDate = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

type SortField string

const (
	SortByTitle         SortField = "title"
	SortByDueDate       SortField = "dueDate"
	SortByImportance    SortField = "importance"
	SortByCreatedAt     SortField = "createdAt"
	SortByUpdatedAt     SortField = "updatedAt"
	SortByCompleted     SortField = "completed"
	SortByCompletedDate SortField = "completedDate"
	SortByDescription   SortField = "description"
)
