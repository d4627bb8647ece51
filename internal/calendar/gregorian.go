package calendar

import "time"

// Gregorian labels dates using the proleptic Gregorian calendar of the
// timestamp's own location.
type Gregorian struct{}

func (Gregorian) Name() string { return "gregorian" }

func (Gregorian) Convert(t time.Time) Date {
	year, month, _ := t.Date()
	return Date{Year: year, Month: int(month), Label: label(year, int(month))}
}
