// Package calendar converts timestamps into year-month folder labels under
// a selectable calendar system. Conversions are pure functions of the
// timestamp; they never read the current time.
package calendar

import (
	"fmt"
	"time"
)

// Date is a year-month bucket in some calendar system. Label is the folder
// name derived from it.
type Date struct {
	Year  int
	Month int
	Label string
}

// System converts a timestamp into a Date.
type System interface {
	Name() string
	Convert(t time.Time) Date
}

// ForName returns the calendar system registered under name.
func ForName(name string) (System, error) {
	switch name {
	case "gregorian", "":
		return Gregorian{}, nil
	case "jalali":
		return Jalali{}, nil
	default:
		return nil, fmt.Errorf("unknown calendar system %q", name)
	}
}

func label(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}
