package club

import (
	"context"

	"go.uber.org/zap"

	"tennis-space/backend/internal/domain/apperr"
	"tennis-space/backend/internal/logger"
	"tennis-space/backend/internal/metrics"
	"tennis-space/backend/internal/utils"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetAllClubs returns the whole catalog. An empty catalog is not an error.
func (s *Service) GetAllClubs(ctx context.Context) ([]TennisClub, error) {
	return s.repo.List(ctx)
}

// CreateClub stores c and returns it with the store-assigned id. Any id set by
// the caller is discarded.
func (s *Service) CreateClub(ctx context.Context, c TennisClub) (*TennisClub, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.ID = ""
	out, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	metrics.RecordClubCreated()
	logger.FromContext(ctx).Info("club created", zap.String("clubId", out.ID), zap.String("name", out.Name))
	return out, nil
}

func (s *Service) GetClubByID(ctx context.Context, id string) (*TennisClub, error) {
	if id == "" {
		return nil, apperr.New(apperr.ErrNotFound, "club id is empty")
	}
	return s.repo.Get(ctx, id)
}

// SearchClubs filters the catalog by a case- and accent-insensitive substring
// of name, address or description. An empty query returns every club.
func (s *Service) SearchClubs(ctx context.Context, query string) ([]TennisClub, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []TennisClub{}
	for _, c := range all {
		if utils.ContainsFolded(query, c.Name, c.Address, c.Description) {
			out = append(out, c)
		}
	}
	return out, nil
}
