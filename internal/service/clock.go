package service

import (
	"time"

	"boardcamp/internal/domain"
)

// Clock supplies the current time. Rental dates are the calendar day of
// Now in the clock's location.
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

// NewClock returns a Clock reading the system time in loc
func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func today(c Clock) domain.Date {
	return domain.NewDate(c.Now())
}
