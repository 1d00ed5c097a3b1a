package hours

import (
	"errors"
	"time"
)

const minutesPerDay = 24 * 60

var (
	ErrNotFound      = errors.New("business hours window not found")
	ErrInvalidWindow = errors.New("open time must be before close time and within the day")
	ErrInvalidDay    = errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)")
)

// Window is one business-hours interval for a service on a weekday,
// expressed in minutes from midnight. A service with no windows at all is
// unrestricted; a service with windows is closed on weekdays that have
// none.
type Window struct {
	ID        string
	ServiceID string
	Weekday   time.Weekday
	OpenMin   int
	CloseMin  int
	CreatedAt time.Time
}

func (w Window) validate() error {
	if w.Weekday < time.Sunday || w.Weekday > time.Saturday {
		return ErrInvalidDay
	}
	if w.OpenMin < 0 || w.CloseMin > minutesPerDay || w.OpenMin >= w.CloseMin {
		return ErrInvalidWindow
	}
	return nil
}
