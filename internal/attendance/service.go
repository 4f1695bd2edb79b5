package attendance

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"attendance/internal/user"
)

// Ledger is the persistence surface the service needs.
type Ledger interface {
	Insert(ctx context.Context, rec Record) (Record, error)
	Exists(ctx context.Context, userID int64, option string, start, end time.Time) (bool, error)
	ListAll(ctx context.Context) ([]Record, error)
	ListByUser(ctx context.Context, userID int64) ([]Record, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]Record, error)
	LatestForUserBetween(ctx context.Context, userID int64, start, end time.Time) (*Record, error)
	CountDistinctPresent(ctx context.Context, option string, start, end time.Time) (int64, error)
	PresentUserIDs(ctx context.Context, option string, start, end time.Time) ([]int64, error)
}

// Directory is the slice of the user directory the derivation needs.
type Directory interface {
	ByRole(ctx context.Context, role user.Role) ([]user.User, error)
	CountNonAdmins(ctx context.Context) (int64, error)
}

// Institutes resolves institute names at check-in time.
type Institutes interface {
	IDByName(ctx context.Context, name string) (int64, error)
}

// Service holds the attendance derivation logic: presence counting and
// absentee set computation over the non-admin population.
type Service struct {
	ledger     Ledger
	users      Directory
	institutes Institutes
	log        *zap.Logger
	now        func() time.Time
}

// NewService creates an attendance service.
func NewService(ledger Ledger, users Directory, institutes Institutes, log *zap.Logger) *Service {
	return &Service{
		ledger:     ledger,
		users:      users,
		institutes: institutes,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// CheckIn records a check-in for the given option, tagged with the owning
// institute. The duplicate guard is a pre-check followed by an unconditional
// insert; two concurrent check-ins for the same user and option can both
// land.
func (s *Service) CheckIn(ctx context.Context, userID int64, option, instituteName string) (Record, error) {
	if option == "" {
		return Record{}, errors.New("login option required")
	}
	instituteID, err := s.institutes.IDByName(ctx, instituteName)
	if err != nil {
		return Record{}, err
	}

	marked, err := s.HasMarkedToday(ctx, userID, option)
	if err != nil {
		return Record{}, err
	}
	if marked {
		return Record{}, ErrAlreadyMarked
	}

	rec, err := s.ledger.Insert(ctx, Record{
		UserID:      userID,
		InstituteID: instituteID,
		LoginOption: option,
		LoginTime:   s.now(),
	})
	if err != nil {
		return Record{}, err
	}
	s.log.Info("check-in recorded",
		zap.Int64("user_id", userID),
		zap.String("option", option),
		zap.String("record_id", rec.ID),
	)
	return rec, nil
}

// Today returns all records in today's window.
func (s *Service) Today(ctx context.Context) ([]Record, error) {
	start, end := DayWindow(s.now())
	return s.ledger.ListBetween(ctx, start, end)
}

// All returns the full ledger.
func (s *Service) All(ctx context.Context) ([]Record, error) {
	return s.ledger.ListAll(ctx)
}

// ByUser returns one user's records.
func (s *Service) ByUser(ctx context.Context, userID int64) ([]Record, error) {
	return s.ledger.ListByUser(ctx, userID)
}

// ByDate returns the records for an ISO-8601 date.
func (s *Service) ByDate(ctx context.Context, date string) ([]Record, error) {
	start, end, err := parseWindow(date)
	if err != nil {
		return nil, err
	}
	return s.ledger.ListBetween(ctx, start, end)
}

// LatestForUserToday returns the user's most recent record today, or nil.
func (s *Service) LatestForUserToday(ctx context.Context, userID int64) (*Record, error) {
	start, end := DayWindow(s.now())
	return s.ledger.LatestForUserBetween(ctx, userID, start, end)
}

// HasMarkedToday reports whether the user already logged the option today.
func (s *Service) HasMarkedToday(ctx context.Context, userID int64, option string) (bool, error) {
	start, end := DayWindow(s.now())
	return s.ledger.Exists(ctx, userID, option, start, end)
}

// Absentees returns the USER-role accounts with no presence-tagged record on
// the given date. Ordering follows the directory listing.
func (s *Service) Absentees(ctx context.Context, date string) ([]user.User, error) {
	start, end, err := parseWindow(date)
	if err != nil {
		return nil, err
	}

	all, err := s.users.ByRole(ctx, user.RoleUser)
	if err != nil {
		return nil, err
	}
	presentIDs, err := s.ledger.PresentUserIDs(ctx, PresenceOption, start, end)
	if err != nil {
		return nil, err
	}

	present := make(map[int64]struct{}, len(presentIDs))
	for _, id := range presentIDs {
		present[id] = struct{}{}
	}

	absent := make([]user.User, 0, len(all))
	for _, u := range all {
		if _, ok := present[u.ID]; !ok {
			absent = append(absent, u)
		}
	}
	return absent, nil
}

// CountAbsentees returns the non-admin population count minus the distinct
// present-user count for the given date. The present-id list is distinct, so
// the result agrees with len(Absentees(date)) as long as only non-admin
// accounts check in.
func (s *Service) CountAbsentees(ctx context.Context, date string) (int64, error) {
	start, end, err := parseWindow(date)
	if err != nil {
		return 0, err
	}

	presentIDs, err := s.ledger.PresentUserIDs(ctx, PresenceOption, start, end)
	if err != nil {
		return 0, err
	}
	total, err := s.users.CountNonAdmins(ctx)
	if err != nil {
		return 0, err
	}
	return total - int64(len(presentIDs)), nil
}

// CountPresentToday counts distinct users with a presence-tagged record in
// today's window.
func (s *Service) CountPresentToday(ctx context.Context) (int64, error) {
	start, end := DayWindow(s.now())
	return s.ledger.CountDistinctPresent(ctx, PresenceOption, start, end)
}

func parseWindow(date string) (time.Time, time.Time, error) {
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start, end := DayWindow(d)
	return start, end, nil
}
