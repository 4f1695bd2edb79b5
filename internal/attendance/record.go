package attendance

import (
	"errors"
	"fmt"
	"time"
)

// PresenceOption is the login-option value marking a daily check-in, as
// opposed to ancillary tags like "lunch" or "tea".
const PresenceOption = "login"

// ErrBadDate signals a date string that is not YYYY-MM-DD.
var ErrBadDate = errors.New("invalid date, expected YYYY-MM-DD")

// ErrAlreadyMarked signals a duplicate check-in for the same option today.
var ErrAlreadyMarked = errors.New("attendance already marked today")

// Record is one check-in event in the ledger. Records are immutable once
// written.
type Record struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"user_id"`
	InstituteID int64     `json:"institute_id"`
	LoginOption string    `json:"login_option"`
	LoginTime   time.Time `json:"login_time"`
	LoginDate   time.Time `json:"login_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// ParseDate parses an ISO-8601 date (YYYY-MM-DD) into a UTC midnight.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, s)
	}
	return d, nil
}

// DayWindow returns the half-open UTC window [00:00 of t's date, 00:00 of
// the next date). Everything that compares a timestamp against a calendar
// date goes through this single definition.
func DayWindow(t time.Time) (start, end time.Time) {
	t = t.UTC()
	start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
