package membership

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusSuspended Status = "SUSPENDED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusSuspended:
		return true
	}
	return false
}

type Type string

// TypeFull is the only membership type for now.
const TypeFull Type = "FULL"

func (t Type) Valid() bool { return t == TypeFull }

// ClubMembership links a user to a club. Times are epoch milliseconds.
type ClubMembership struct {
	ID              string  `firestore:"-" json:"id"`
	UserID          string  `firestore:"userId" json:"userId"`
	ClubID          string  `firestore:"clubId" json:"clubId"`
	Status          Status  `firestore:"status" json:"status"`
	JoinRequestDate int64   `firestore:"joinRequestDate" json:"joinRequestDate"`
	ApprovedDate    *int64  `firestore:"approvedDate" json:"approvedDate,omitempty"`
	ApprovedBy      *string `firestore:"approvedBy" json:"approvedBy,omitempty"`
	MembershipType  Type    `firestore:"membershipType" json:"membershipType"`
}

func (m ClubMembership) Clone() ClubMembership {
	out := m
	if m.ApprovedDate != nil {
		v := *m.ApprovedDate
		out.ApprovedDate = &v
	}
	if m.ApprovedBy != nil {
		v := *m.ApprovedBy
		out.ApprovedBy = &v
	}
	return out
}

// DecideInput moves a membership out of (or back into) review.
type DecideInput struct {
	Status Status `json:"status" validate:"required,oneof=PENDING APPROVED REJECTED SUSPENDED"`
}
