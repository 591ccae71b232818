package membership

import (
	"context"
	"time"

	"go.uber.org/zap"

	"tennis-space/backend/internal/domain/apperr"
	"tennis-space/backend/internal/domain/club"
	"tennis-space/backend/internal/logger"
	"tennis-space/backend/internal/metrics"
)

// ClubFinder resolves clubs for admin checks.
type ClubFinder interface {
	GetClubByID(ctx context.Context, id string) (*club.TennisClub, error)
}

type Service struct {
	repo  Repository
	clubs ClubFinder
	now   func() time.Time
}

func NewService(repo Repository, clubs ClubFinder) *Service {
	return &Service{repo: repo, clubs: clubs, now: time.Now}
}

// SetClock replaces the time source.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// RequestMembership records a PENDING request for userID to join clubID.
// Earlier requests for the same pair are not looked at, so repeated calls
// create repeated records.
func (s *Service) RequestMembership(ctx context.Context, clubID, userID string) (*ClubMembership, error) {
	if clubID == "" || userID == "" {
		return nil, apperr.New(apperr.ErrValidation, "clubId and userId are required")
	}
	m := ClubMembership{
		UserID:          userID,
		ClubID:          clubID,
		Status:          StatusPending,
		JoinRequestDate: s.now().UnixMilli(),
		MembershipType:  TypeFull,
	}
	out, err := s.repo.Create(ctx, m)
	if err != nil {
		return nil, err
	}
	metrics.RecordMembershipRequest()
	logger.FromContext(ctx).Info("membership requested",
		zap.String("membershipId", out.ID), zap.String("clubId", clubID), zap.String("userId", userID))
	return out, nil
}

func (s *Service) GetUserMemberships(ctx context.Context, userID string) ([]ClubMembership, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) GetClubMemberships(ctx context.Context, clubID string) ([]ClubMembership, error) {
	return s.repo.ListByClub(ctx, clubID)
}

// Decide sets the status of a membership on behalf of a club admin. Approving
// stamps approvedDate and approvedBy; any other status clears them.
func (s *Service) Decide(ctx context.Context, adminUID, membershipID string, next Status) (*ClubMembership, error) {
	if !next.Valid() {
		return nil, apperr.Newf(apperr.ErrValidation, "unknown membership status %q", next)
	}
	m, err := s.repo.Get(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	c, err := s.clubs.GetClubByID(ctx, m.ClubID)
	if err != nil {
		return nil, err
	}
	if !c.IsAdmin(adminUID) {
		return nil, apperr.New(apperr.ErrForbidden, "only club admins can decide on memberships")
	}

	m.Status = next
	if next == StatusApproved {
		at := s.now().UnixMilli()
		by := adminUID
		m.ApprovedDate = &at
		m.ApprovedBy = &by
	} else {
		m.ApprovedDate = nil
		m.ApprovedBy = nil
	}
	if err := s.repo.Update(ctx, *m); err != nil {
		return nil, err
	}
	metrics.RecordMembershipDecision(string(next))
	return m, nil
}
