package leave

import (
	"context"

	"go.uber.org/zap"
)

// Register is the persistence surface the service needs.
type Register interface {
	List(ctx context.Context) ([]Request, error)
	Get(ctx context.Context, id int64) (*Request, error)
	Insert(ctx context.Context, userID int64, reason string) (Request, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
}

// Service exposes the leave register.
type Service struct {
	repo Register
	log  *zap.Logger
}

// NewService creates a leave service.
func NewService(repo Register, log *zap.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// All returns every leave request.
func (s *Service) All(ctx context.Context) ([]Request, error) {
	return s.repo.List(ctx)
}

// Get returns one request, or nil when absent.
func (s *Service) Get(ctx context.Context, id int64) (*Request, error) {
	return s.repo.Get(ctx, id)
}

// Submit files a new pending request for a user.
func (s *Service) Submit(ctx context.Context, userID int64, reason string) (Request, error) {
	req, err := s.repo.Insert(ctx, userID, reason)
	if err != nil {
		return Request{}, err
	}
	s.log.Info("leave request submitted", zap.Int64("id", req.ID), zap.Int64("user_id", userID))
	return req, nil
}

// Decide moves a request to one of the terminal states. Re-deciding an
// already-decided request is not prevented.
func (s *Service) Decide(ctx context.Context, id int64, status Status) error {
	if !status.Terminal() {
		return ErrBadStatus
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.log.Info("leave request decided", zap.Int64("id", id), zap.String("status", string(status)))
	return nil
}
