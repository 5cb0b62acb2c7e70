package models

// Action is the calendar operation a parsed command asks for.
type Action string

const (
	ActionCreate Action = "create"
	ActionDelete Action = "delete"
	ActionMove   Action = "move"
	ActionList   Action = "list"
)

// ValidAction reports whether a is one of the four supported actions.
func ValidAction(a Action) bool {
	switch a {
	case ActionCreate, ActionDelete, ActionMove, ActionList:
		return true
	}
	return false
}

// Intent is the structured interpretation of one free-text command.
// It lives for a single request and is never persisted, except as part
// of a PendingDisambiguation awaiting the user's follow-up reply.
type Intent struct {
	Action          Action  `json:"action"`
	Title           string  `json:"title,omitempty"`
	Date            string  `json:"date,omitempty"`
	Time            string  `json:"time,omitempty"`
	EndTime         string  `json:"end_time,omitempty"`
	NewDate         string  `json:"new_date,omitempty"`
	NewTime         string  `json:"new_time,omitempty"`
	NewEndTime      string  `json:"new_end_time,omitempty"`
	DurationMinutes int     `json:"duration_minutes,omitempty"`
	Confidence      float64 `json:"confidence"`
}
