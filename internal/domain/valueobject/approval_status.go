package valueobject

import "fmt"

// ApprovalStatus is an immutable value object representing the terminal
// outcome of approval routing. There are no transitions between statuses;
// routing is a single-shot decision.
type ApprovalStatus struct {
	value string
}

var (
	StatusAutoApproved     = ApprovalStatus{value: "auto_approved"}
	StatusManagerApproval  = ApprovalStatus{value: "manager_approval"}
	StatusDirectorApproval = ApprovalStatus{value: "director_approval"}
	StatusVPApproval       = ApprovalStatus{value: "vp_approval"}
	StatusCFOApproval      = ApprovalStatus{value: "cfo_approval"}
	StatusRejected         = ApprovalStatus{value: "rejected"}
)

// ApprovalStatusFromString reconstructs an ApprovalStatus from its string representation.
func ApprovalStatusFromString(s string) (ApprovalStatus, error) {
	switch s {
	case "auto_approved":
		return StatusAutoApproved, nil
	case "manager_approval":
		return StatusManagerApproval, nil
	case "director_approval":
		return StatusDirectorApproval, nil
	case "vp_approval":
		return StatusVPApproval, nil
	case "cfo_approval":
		return StatusCFOApproval, nil
	case "rejected":
		return StatusRejected, nil
	default:
		return ApprovalStatus{}, fmt.Errorf("invalid approval status: %s", s)
	}
}

// String returns the string representation.
func (s ApprovalStatus) String() string {
	return s.value
}

// IsZero returns true if the status has not been set.
func (s ApprovalStatus) IsZero() bool {
	return s.value == ""
}

// Equal checks equality with another ApprovalStatus.
func (s ApprovalStatus) Equal(other ApprovalStatus) bool {
	return s.value == other.value
}

// IsRejected returns true if the status is rejected.
func (s ApprovalStatus) IsRejected() bool {
	return s.value == "rejected"
}

// RequiresEscalation returns true when a human approver has to sign off.
func (s ApprovalStatus) RequiresEscalation() bool {
	switch s.value {
	case "manager_approval", "director_approval", "vp_approval", "cfo_approval":
		return true
	default:
		return false
	}
}
