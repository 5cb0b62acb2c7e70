package models

import "time"

// PendingDisambiguation holds the candidate set shown to a user after an
// ambiguous delete/move, keyed by user ID in the session store. It only
// exists while it has at least two candidates; resolving to one deletes it.
type PendingDisambiguation struct {
	Action     Action           `json:"action"`
	Intent     Intent           `json:"intent"`
	Candidates []CandidateEvent `json:"candidates"`
	CreatedAt  time.Time        `json:"createdAt"`
}
