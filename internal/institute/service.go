package institute

import (
	"context"
	"errors"
)

// ErrNotFound signals an unknown institute name.
var ErrNotFound = errors.New("institute not found")

// Finder is the persistence surface the service needs.
type Finder interface {
	GetByName(ctx context.Context, name string) (*Institute, error)
	List(ctx context.Context) ([]Institute, error)
}

// Service resolves institute names to identifiers.
type Service struct {
	repo Finder
}

// NewService creates an institute service.
func NewService(repo Finder) *Service {
	return &Service{repo: repo}
}

// IDByName resolves an institute name. Unknown names yield ErrNotFound
// rather than a zero id.
func (s *Service) IDByName(ctx context.Context, name string) (int64, error) {
	inst, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if inst == nil {
		return 0, ErrNotFound
	}
	return inst.ID, nil
}

// All returns every institute.
func (s *Service) All(ctx context.Context) ([]Institute, error) {
	return s.repo.List(ctx)
}
