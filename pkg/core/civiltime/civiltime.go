// Package civiltime maps absolute UTC instants onto calendar days and months
// of a fixed deployment timezone. Every "today" or "this month" window in the
// application is derived here so that day boundaries never depend on the
// timezone of the host the server happens to run in.
package civiltime

import (
	"fmt"
	"time"
)

// DefaultTimezone is the civil timezone of the reference deployment.
const DefaultTimezone = "Asia/Taipei"

// Clock resolves civil-day and civil-month boundaries in a fixed timezone.
// The time source is injectable so tests can pin "now".
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock creates a Clock for the named IANA timezone.
func NewClock(timezone string) (*Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", timezone, err)
	}
	return &Clock{loc: loc, now: time.Now}, nil
}

// WithNow returns a copy of the Clock using the given time source.
func (c *Clock) WithNow(now func() time.Time) *Clock {
	return &Clock{loc: c.loc, now: now}
}

// Now returns the current instant in UTC.
func (c *Clock) Now() time.Time {
	return c.now().UTC()
}

// Location returns the civil timezone.
func (c *Clock) Location() *time.Location {
	return c.loc
}

// DayBounds returns the UTC instants of 00:00:00 and 23:59:59 of the civil
// calendar day containing t. Both ends come from the calendar, not from
// adding 24 hours to midnight: a DST-transition day is 23 or 25 hours long.
func (c *Clock) DayBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(c.loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc)
	end := time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, 0, c.loc)
	return start.UTC(), end.UTC()
}

// MonthBounds returns the UTC instants of 00:00:00 on the first day and
// 23:59:59 on the last day of the given civil month.
func (c *Clock) MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, c.loc)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start.UTC(), end.UTC()
}

// CurrentMonth returns the civil year and month containing the current instant.
func (c *Clock) CurrentMonth() (int, time.Month) {
	local := c.now().In(c.loc)
	return local.Year(), local.Month()
}

// TimeOfDay renders t as a 24-hour "HH:mm" clock string in civil time.
func (c *Clock) TimeOfDay(t time.Time) string {
	return t.In(c.loc).Format("15:04")
}

// DateString renders t as a "yyyy-MM-dd" date string in civil time.
func (c *Clock) DateString(t time.Time) string {
	return t.In(c.loc).Format("2006-01-02")
}

// DateTimeString renders t as "yyyy-MM-dd HH:mm" in civil time.
func (c *Clock) DateTimeString(t time.Time) string {
	return t.In(c.loc).Format("2006-01-02 15:04")
}
