package stores

import (
	"fmt"

	"github.com/storelane/storelane-backend/pkg/enums"
	pkgerrors "github.com/storelane/storelane-backend/pkg/errors"
)

// allowedTransitions is the approval workflow. Closed and rejected are
// terminal; re-opening a closed or rejected store means creating a fresh
// record.
var allowedTransitions = map[enums.ApprovalStatus][]enums.ApprovalStatus{
	enums.ApprovalStatusPending:  {enums.ApprovalStatusApproved, enums.ApprovalStatusRejected},
	enums.ApprovalStatusApproved: {enums.ApprovalStatusClosed, enums.ApprovalStatusPending},
}

// CheckTransition reports whether moving from one approval status to another
// is permitted. Self-transitions are rejected like any other missing edge.
func CheckTransition(from, to enums.ApprovalStatus) error {
	if !from.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid current status %q", from))
	}
	if !to.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid target status %q", to))
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return nil
		}
	}
	return pkgerrors.New(
		pkgerrors.CodeStateConflict,
		fmt.Sprintf("transition %s -> %s is not permitted", from, to),
	).WithDetails(map[string]string{"current": from.String(), "attempted": to.String()})
}
