// Package daytime holds the wall-clock types used by the booking schedule.
// Dates and times of day arrive already resolved to the restaurant's local
// terms; no timezone handling happens here.
package daytime

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Time is a wall-clock time of day, stored as minutes since midnight.
// It maps to a Postgres TIME column as "HH:MM:SS" text.
type Time int

const minutesPerDay = 24 * 60

// ParseTime parses "HH:MM" or "HH:MM:SS". Seconds, when present, must be zero.
func ParseTime(s string) (Time, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM or HH:MM:SS", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid time %q: bad hour", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid time %q: bad minute", s)
	}
	if len(parts) == 3 {
		sec, err := strconv.Atoi(parts[2])
		if err != nil || sec != 0 {
			return 0, fmt.Errorf("invalid time %q: seconds must be 00", s)
		}
	}

	return Time(hour*60 + minute), nil
}

// Valid reports whether t falls within a single day.
func (t Time) Valid() bool {
	return t >= 0 && t < minutesPerDay
}

// Add returns t shifted forward by the given number of minutes.
func (t Time) Add(minutes int) Time {
	return t + Time(minutes)
}

// Sub returns the number of minutes from u to t.
func (t Time) Sub(u Time) int {
	return int(t - u)
}

func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d:00", int(t)/60, int(t)%60)
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Time) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Scan implements sql.Scanner. Repositories select TIME columns cast to text.
func (t *Time) Scan(src any) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseTime(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		return t.Scan(string(v))
	case time.Time:
		*t = Time(v.Hour()*60 + v.Minute())
		return nil
	default:
		return fmt.Errorf("cannot scan %T into daytime.Time", src)
	}
}

// Value implements driver.Valuer.
func (t Time) Value() (driver.Value, error) {
	return t.String(), nil
}

// DateOf truncates a timestamp to its calendar date at UTC midnight.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a "YYYY-MM-DD" calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return d, nil
}

// FormatDate renders a calendar date as "YYYY-MM-DD".
func FormatDate(d time.Time) string {
	return d.Format("2006-01-02")
}

// WeekdayOf converts Go's Sunday-based weekday to the schedule numbering,
// where 0 is Monday and 6 is Sunday.
func WeekdayOf(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}
