package promotionschedule

import promotionscheduleerrors "go-hrdash/internal/promotionschedule/errors"

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// OpenStatuses are the statuses still awaiting a decision.
var OpenStatuses = []Status{StatusPending, StatusApproved}

var allowedStatusTransitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusCancelled},
	StatusApproved: {StatusCompleted, StatusCancelled},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition leaves s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func isAllowedStatusTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, next := range allowedStatusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// checkStatusTransition validates a requested move; re-asserting the current
// status is accepted.
func checkStatusTransition(from, to Status) error {
	if !to.Valid() {
		return promotionscheduleerrors.ErrInvalidStatus
	}
	if !isAllowedStatusTransition(from, to) {
		return promotionscheduleerrors.ErrInvalidStatusTransition.WithDetails(map[string]string{
			"from": string(from),
			"to":   string(to),
		})
	}
	return nil
}
