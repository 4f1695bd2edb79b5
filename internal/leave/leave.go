package leave

import (
	"errors"
	"time"
)

// Status is a leave request's decision state.
type Status string

// Request states. Pending is the initial state; Accepted and Rejected are
// the terminal decisions.
const (
	StatusPending  Status = "Pending"
	StatusAccepted Status = "Accepted"
	StatusRejected Status = "Rejected"
)

// Terminal reports whether s is a decision state.
func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// ErrNotFound signals a decision on an id with no matching request.
var ErrNotFound = errors.New("leave request not found")

// ErrBadStatus signals a decision value outside the two terminal states.
var ErrBadStatus = errors.New("status must be Accepted or Rejected")

// Request is a leave request.
type Request struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Reason    string    `json:"reason"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
