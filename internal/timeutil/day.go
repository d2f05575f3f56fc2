package timeutil

import "time"

const DateFormat = "2006-01-02"

// Clock abstracts wall-clock time so day-boundary logic is testable.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant.
type FixedClock struct{ T time.Time }

func (c FixedClock) Now() time.Time { return c.T }

// DayKey attributes a timestamp to a calendar day under the cutoff rule:
// anything before cutoffHour (local) still belongs to the previous day.
// A cutoff of 5 means 2024-01-02 04:59 counts as 2024-01-01.
func DayKey(t time.Time, cutoffHour int) string {
	return t.Add(-time.Duration(cutoffHour) * time.Hour).Format(DateFormat)
}

// PrevDay returns the calendar day before a YYYY-MM-DD key.
func PrevDay(day string) string {
	t, err := time.Parse(DateFormat, day)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(DateFormat)
}

// ValidDay reports whether s is a well-formed YYYY-MM-DD date.
func ValidDay(s string) bool {
	_, err := time.Parse(DateFormat, s)
	return err == nil
}
