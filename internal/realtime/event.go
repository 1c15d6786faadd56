package realtime

import "github.com/google/uuid"

const (
	ActionInsert = "insert"
	ActionUpdate = "update"
	ActionDelete = "delete"

	TableTasks    = "tasks"
	TableReports  = "daily_reports"
	TableMessages = "messages"
)

// Event describes a committed change to a watched table. Subscribers treat
// any matching event as "re-fetch the affected collection"; no row payload
// beyond the id is carried.
type Event struct {
	Table      string      `json:"table"`
	Action     string      `json:"action"`
	RowID      uuid.UUID   `json:"row_id"`
	CompanyID  *uuid.UUID  `json:"company_id,omitempty"`
	BranchID   *uuid.UUID  `json:"branch_id,omitempty"`
	ActorID    uuid.UUID   `json:"actor_id"`
	Recipients []uuid.UUID `json:"-"`
}
