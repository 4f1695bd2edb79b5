package user

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Directory is the persistence surface the service needs.
type Directory interface {
	List(ctx context.Context) ([]User, error)
	ListByRole(ctx context.Context, role Role) ([]User, error)
	ListNotRole(ctx context.Context, role Role) ([]User, error)
	CountNotRole(ctx context.Context, role Role) (int64, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, id int64, upd Update) (*User, error)
	Delete(ctx context.Context, id int64) error
}

// Service exposes directory operations to the HTTP layer.
type Service struct {
	repo Directory
	log  *zap.Logger
}

// NewService creates a directory service.
func NewService(repo Directory, log *zap.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// All returns every account.
func (s *Service) All(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// ByRole returns accounts with the given role.
func (s *Service) ByRole(ctx context.Context, role Role) ([]User, error) {
	return s.repo.ListByRole(ctx, role)
}

// NonAdmins returns every account except admins, the population attendance
// totals are computed over.
func (s *Service) NonAdmins(ctx context.Context) ([]User, error) {
	return s.repo.ListNotRole(ctx, RoleAdmin)
}

// CountNonAdmins counts the non-admin population.
func (s *Service) CountNonAdmins(ctx context.Context) (int64, error) {
	return s.repo.CountNotRole(ctx, RoleAdmin)
}

// ByEmail looks an account up by email. A miss is (nil, nil), not an error.
func (s *Service) ByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, email)
}

// UpdateAccount applies a partial update and returns the updated account, or
// nil when the id is unknown.
func (s *Service) UpdateAccount(ctx context.Context, id int64, upd Update) (*User, error) {
	if upd.Role != nil && !upd.Role.Valid() {
		return nil, fmt.Errorf("invalid role %q", *upd.Role)
	}
	u, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	if u != nil {
		s.log.Info("user updated", zap.Int64("id", id))
	}
	return u, nil
}

// DeleteAccount removes an account unconditionally.
func (s *Service) DeleteAccount(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("user deleted", zap.Int64("id", id))
	return nil
}
