package booking

import "slices"

type Status string

const (
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusBlocked   Status = "BLOCKED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusBlocked:
		return true
	}
	return false
}

type Type string

const (
	TypeRegular     Type = "REGULAR"
	TypeTraining    Type = "TRAINING"
	TypeMaintenance Type = "MAINTENANCE"
	TypeTournament  Type = "TOURNAMENT"
)

func (t Type) Valid() bool {
	switch t {
	case TypeRegular, TypeTraining, TypeMaintenance, TypeTournament:
		return true
	}
	return false
}

// CourtBooking reserves one court for [StartTime, EndTime). All times are
// epoch milliseconds. Bookings are cancelled, never deleted.
type CourtBooking struct {
	ID                 string   `firestore:"-" json:"id"`
	CourtID            string   `firestore:"courtId" json:"courtId"`
	ClubID             string   `firestore:"clubId" json:"clubId"`
	BookedBy           string   `firestore:"bookedBy" json:"bookedBy"`
	Players            []string `firestore:"players" json:"players"`
	StartTime          int64    `firestore:"startTime" json:"startTime"`
	EndTime            int64    `firestore:"endTime" json:"endTime"`
	Status             Status   `firestore:"status" json:"status"`
	BookingType        Type     `firestore:"bookingType" json:"bookingType"`
	CreatedAt          int64    `firestore:"createdAt" json:"createdAt"`
	CreatedBy          string   `firestore:"createdBy" json:"createdBy"`
	Notes              *string  `firestore:"notes" json:"notes,omitempty"`
	CancelledAt        *int64   `firestore:"cancelledAt" json:"cancelledAt,omitempty"`
	CancelledBy        *string  `firestore:"cancelledBy" json:"cancelledBy,omitempty"`
	CancellationReason *string  `firestore:"cancellationReason" json:"cancellationReason,omitempty"`
}

// DurationMillis is the booked span.
func (b CourtBooking) DurationMillis() int64 {
	return b.EndTime - b.StartTime
}

func (b CourtBooking) Clone() CourtBooking {
	out := b
	out.Players = slices.Clone(b.Players)
	out.Notes = cloneString(b.Notes)
	out.CancelledBy = cloneString(b.CancelledBy)
	out.CancellationReason = cloneString(b.CancellationReason)
	if b.CancelledAt != nil {
		v := *b.CancelledAt
		out.CancelledAt = &v
	}
	return out
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// CancelInput is the body of a cancel request.
type CancelInput struct {
	Reason string `json:"reason" validate:"max=500"`
}
