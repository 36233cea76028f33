package timeutil

import (
	"time"
)

// IST is the Indian Standard Time location (UTC+5:30)
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback: create fixed zone if Asia/Kolkata not available
		IST = time.FixedZone("IST", 5*60*60+30*60) // UTC+5:30
	}
}

// Now returns the current time in IST
func Now() time.Time {
	return time.Now().In(IST)
}

// FormatIST formats a time in IST using the given layout
func FormatIST(t time.Time, layout string) string {
	return t.In(IST).Format(layout)
}

// FormatDate formats a calendar date (a DATE column) without shifting it into
// another zone
func FormatDate(t time.Time) string {
	return t.Format(DateDisplayLayout)
}

// Common layouts
const (
	DateLayout        = "2006-01-02"
	TimeLayout        = "15:04:05"
	DateDisplayLayout = "02 Jan 2006"
	DisplayLayout     = "02 Jan 2006, 03:04 PM"
)
