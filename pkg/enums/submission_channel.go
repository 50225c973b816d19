package enums

import "fmt"

// SubmissionChannel distinguishes public submissions from staff-entered records.
type SubmissionChannel string

const (
	SubmissionChannelPublic SubmissionChannel = "public"
	SubmissionChannelStaff  SubmissionChannel = "staff"
)

var validSubmissionChannels = []SubmissionChannel{
	SubmissionChannelPublic,
	SubmissionChannelStaff,
}

// String implements fmt.Stringer.
func (c SubmissionChannel) String() string {
	return string(c)
}

// IsValid reports whether the value is a known SubmissionChannel.
func (c SubmissionChannel) IsValid() bool {
	for _, candidate := range validSubmissionChannels {
		if candidate == c {
			return true
		}
	}
	return false
}

// DefaultStatus returns the approval status a draft starts in when the
// submission leaves it unspecified: public submissions queue for review,
// staff entries go live immediately.
func (c SubmissionChannel) DefaultStatus() ApprovalStatus {
	if c == SubmissionChannelStaff {
		return ApprovalStatusApproved
	}
	return ApprovalStatusPending
}

// ParseSubmissionChannel converts raw input into a SubmissionChannel.
func ParseSubmissionChannel(value string) (SubmissionChannel, error) {
	for _, candidate := range validSubmissionChannels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid submission channel %q", value)
}
