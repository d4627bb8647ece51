package calendar

import (
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// Jalali labels dates using the Persian (Solar Hijri) calendar.
type Jalali struct{}

func (Jalali) Name() string { return "jalali" }

func (Jalali) Convert(t time.Time) Date {
	pt := ptime.New(t)
	return Date{Year: pt.Year(), Month: int(pt.Month()), Label: label(pt.Year(), int(pt.Month()))}
}
