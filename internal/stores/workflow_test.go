package stores

import (
	"testing"

	"github.com/storelane/storelane-backend/pkg/enums"
	pkgerrors "github.com/storelane/storelane-backend/pkg/errors"
)

func TestCheckTransitionTable(t *testing.T) {
	cases := []struct {
		from    enums.ApprovalStatus
		to      enums.ApprovalStatus
		allowed bool
	}{
		{enums.ApprovalStatusPending, enums.ApprovalStatusApproved, true},
		{enums.ApprovalStatusPending, enums.ApprovalStatusRejected, true},
		{enums.ApprovalStatusApproved, enums.ApprovalStatusClosed, true},
		{enums.ApprovalStatusApproved, enums.ApprovalStatusPending, true},
		{enums.ApprovalStatusPending, enums.ApprovalStatusClosed, false},
		{enums.ApprovalStatusApproved, enums.ApprovalStatusRejected, false},
		{enums.ApprovalStatusClosed, enums.ApprovalStatusApproved, false},
		{enums.ApprovalStatusClosed, enums.ApprovalStatusPending, false},
		{enums.ApprovalStatusRejected, enums.ApprovalStatusApproved, false},
		{enums.ApprovalStatusRejected, enums.ApprovalStatusPending, false},
		{enums.ApprovalStatusPending, enums.ApprovalStatusPending, false},
	}

	for _, tc := range cases {
		err := CheckTransition(tc.from, tc.to)
		if tc.allowed && err != nil {
			t.Errorf("expected %s -> %s allowed, got %v", tc.from, tc.to, err)
		}
		if !tc.allowed {
			if !pkgerrors.HasCode(err, pkgerrors.CodeStateConflict) {
				t.Errorf("expected %s -> %s to fail with state conflict, got %v", tc.from, tc.to, err)
			}
		}
	}
}

func TestCheckTransitionSequence(t *testing.T) {
	if err := CheckTransition(enums.ApprovalStatusPending, enums.ApprovalStatusApproved); err != nil {
		t.Fatalf("pending -> approved: %v", err)
	}
	if err := CheckTransition(enums.ApprovalStatusApproved, enums.ApprovalStatusClosed); err != nil {
		t.Fatalf("approved -> closed: %v", err)
	}
	if err := CheckTransition(enums.ApprovalStatusClosed, enums.ApprovalStatusApproved); err == nil {
		t.Fatal("expected closed -> approved to fail")
	}
}

func TestCheckTransitionRejectsUnknownStatuses(t *testing.T) {
	if err := CheckTransition("bogus", enums.ApprovalStatusApproved); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := CheckTransition(enums.ApprovalStatusPending, "bogus"); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCheckTransitionIncludesStatesInDetails(t *testing.T) {
	err := CheckTransition(enums.ApprovalStatusClosed, enums.ApprovalStatusApproved)
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected details map, got %T", typed.Details())
	}
	if details["current"] != "closed" || details["attempted"] != "approved" {
		t.Fatalf("unexpected details %v", details)
	}
}
