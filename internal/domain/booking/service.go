package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"tennis-space/backend/internal/domain/club"
	"tennis-space/backend/internal/logger"
	"tennis-space/backend/internal/metrics"
)

type ClubFinder interface {
	GetClubByID(ctx context.Context, id string) (*club.TennisClub, error)
}

type Service struct {
	repo   Repository
	clubs  ClubFinder
	policy Policy
	now    func() time.Time
}

func NewService(repo Repository, clubs ClubFinder) *Service {
	return &Service{repo: repo, clubs: clubs, now: time.Now}
}

func (s *Service) SetPolicy(p Policy) {
	s.policy = p
}

func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) GetClubBookings(ctx context.Context, clubID string) ([]CourtBooking, error) {
	return s.repo.ListByClub(ctx, clubID)
}

// GetUserBookings lists the bookings made by userID (bookedBy).
func (s *Service) GetUserBookings(ctx context.Context, userID string) ([]CourtBooking, error) {
	return s.repo.ListByUser(ctx, userID)
}

// CreateBooking stores b and returns it with its new id. Overlapping bookings
// are not detected. Unset status, type, createdAt and players get their
// defaults.
func (s *Service) CreateBooking(ctx context.Context, b CourtBooking) (*CourtBooking, error) {
	now := s.now()
	if b.Status == "" {
		b.Status = StatusConfirmed
	}
	if b.BookingType == "" {
		b.BookingType = TypeRegular
	}
	if b.CreatedAt == 0 {
		b.CreatedAt = now.UnixMilli()
	}
	if b.Players == nil {
		b.Players = []string{}
	}

	if s.policy.Enforce {
		c, err := s.clubs.GetClubByID(ctx, b.ClubID)
		if err != nil {
			return nil, err
		}
		mine, err := s.repo.ListByUser(ctx, b.BookedBy)
		if err != nil {
			return nil, err
		}
		if err := s.policy.CheckCreate(c, b, mine, now); err != nil {
			return nil, err
		}
	} else if err := CheckRange(b); err != nil {
		return nil, err
	}

	b.ID = ""
	out, err := s.repo.Create(ctx, b)
	if err != nil {
		return nil, err
	}
	metrics.RecordBooking(string(out.BookingType))
	logger.FromContext(ctx).Info("booking created",
		zap.String("bookingId", out.ID),
		zap.String("clubId", out.ClubID),
		zap.String("courtId", out.CourtID),
		zap.String("bookedBy", out.BookedBy),
	)
	return out, nil
}

// CancelBooking marks the booking CANCELLED on behalf of userID.
func (s *Service) CancelBooking(ctx context.Context, bookingID, userID string) error {
	return s.CancelBookingWithReason(ctx, bookingID, userID, "")
}

// CancelBookingWithReason is CancelBooking with an optional free-text reason.
// Without an enforced policy, cancelling an already cancelled booking succeeds
// and restamps cancelledAt and cancelledBy.
func (s *Service) CancelBookingWithReason(ctx context.Context, bookingID, userID, reason string) error {
	now := s.now()
	if s.policy.Enforce {
		b, err := s.repo.Get(ctx, bookingID)
		if err != nil {
			return err
		}
		c, err := s.clubs.GetClubByID(ctx, b.ClubID)
		if err != nil {
			return err
		}
		if err := s.policy.CheckCancel(c, *b, userID, now); err != nil {
			return err
		}
	}
	if err := s.repo.Cancel(ctx, bookingID, userID, reason, now.UnixMilli()); err != nil {
		return err
	}
	metrics.RecordBookingCancellation()
	logger.FromContext(ctx).Info("booking cancelled", zap.String("bookingId", bookingID), zap.String("by", userID))
	return nil
}
