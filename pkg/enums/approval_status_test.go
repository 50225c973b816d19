package enums

import "testing"

func TestApprovalStatusIsValid(t *testing.T) {
	t.Parallel()

	for _, s := range []ApprovalStatus{ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusClosed, ApprovalStatusRejected} {
		if !s.IsValid() {
			t.Fatalf("expected %s to be valid", s)
		}
	}
	if ApprovalStatus("archived").IsValid() {
		t.Fatal("unexpected valid status")
	}
}

func TestApprovalStatusTerminal(t *testing.T) {
	t.Parallel()

	if !ApprovalStatusClosed.IsTerminal() || !ApprovalStatusRejected.IsTerminal() {
		t.Fatal("closed and rejected are terminal")
	}
	if ApprovalStatusPending.IsTerminal() || ApprovalStatusApproved.IsTerminal() {
		t.Fatal("pending and approved are not terminal")
	}
}

func TestParseApprovalStatus(t *testing.T) {
	t.Parallel()

	got, err := ParseApprovalStatus("closed")
	if err != nil {
		t.Fatalf("ParseApprovalStatus: %v", err)
	}
	if got != ApprovalStatusClosed {
		t.Fatalf("unexpected status %s", got)
	}

	if _, err := ParseApprovalStatus("CLOSED"); err == nil {
		t.Fatal("parse is case-sensitive by contract")
	}
}

func TestSubmissionChannelDefaults(t *testing.T) {
	t.Parallel()

	if SubmissionChannelPublic.DefaultStatus() != ApprovalStatusPending {
		t.Fatal("public submissions default to pending")
	}
	if SubmissionChannelStaff.DefaultStatus() != ApprovalStatusApproved {
		t.Fatal("staff entries default to approved")
	}
}

func TestParseGeoKind(t *testing.T) {
	t.Parallel()

	kind, err := ParseGeoKind("colony")
	if err != nil {
		t.Fatalf("ParseGeoKind: %v", err)
	}
	if !kind.RequiresParent() {
		t.Fatal("colonies require a parent area")
	}

	city, err := ParseGeoKind("city")
	if err != nil {
		t.Fatalf("ParseGeoKind: %v", err)
	}
	if city.RequiresParent() {
		t.Fatal("cities have no parent")
	}

	if _, err := ParseGeoKind("district"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
