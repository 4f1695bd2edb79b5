package attendance

import (
	"errors"
	"testing"
	"time"
)

func TestDayWindow(t *testing.T) {
	in := time.Date(2024, 3, 14, 17, 45, 12, 999, time.UTC)
	start, end := DayWindow(in)

	if !start.Equal(time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start %v", start)
	}
	if !end.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected end %v", end)
	}
}

func TestDayWindowNormalizesZone(t *testing.T) {
	// 23:00 UTC on the 14th expressed as 01:00 on the 15th in UTC+2 still
	// belongs to the 14th's window.
	zone := time.FixedZone("UTC+2", 2*60*60)
	in := time.Date(2024, 3, 15, 1, 0, 0, 0, zone)
	start, _ := DayWindow(in)
	if !start.Equal(time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start %v", start)
	}
}

func TestDayWindowHalfOpen(t *testing.T) {
	start, end := DayWindow(time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC))

	midnight := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	if midnight.Before(start) || !midnight.Before(end) {
		t.Fatal("00:00:00 of the day must fall inside the window")
	}

	justBefore := midnight.Add(-time.Millisecond)
	if !justBefore.Before(start) {
		t.Fatal("23:59:59.999 of the previous day must fall outside the window")
	}

	nextMidnight := midnight.AddDate(0, 0, 1)
	if nextMidnight.Before(end) {
		t.Fatal("00:00:00 of the next day must fall outside the window")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-14")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if !d.Equal(time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v", d)
	}

	for _, bad := range []string{"", "14-03-2024", "2024/03/14", "2024-13-01", "yesterday"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrBadDate) {
			t.Fatalf("ParseDate(%q): expected ErrBadDate, got %v", bad, err)
		}
	}
}
