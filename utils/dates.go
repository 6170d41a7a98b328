package utils

import (
	"regexp"
	"strconv"
	"time"

	dateparser "github.com/markusmobius/go-dateparser"
)

// Date inputs arrive in whatever shape the sheet or the form produced. The
// numeric patterns are tried in a fixed priority order before falling back to
// free-text parsing.
var (
	dottedDate = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4})`) // D.M.YYYY
	isoDate    = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})`)   // YYYY-M-D
	slashDate  = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})`)   // M/D/YYYY
)

// NormalizeDate parses heterogeneous date text into a UTC-midnight instant.
// Priority: D.M.YYYY, then YYYY-M-D, then M/D/YYYY, then generic free-text
// parsing. A pattern whose components fail range checks is skipped and the
// next one tried. Returns ok=false when nothing matches; callers decide
// whether that means "sorts last" or "reject the request".
func NormalizeDate(raw string) (time.Time, bool) {
	if m := dottedDate.FindStringSubmatch(raw); m != nil {
		if d, ok := dateFromParts(m[3], m[1], m[2]); ok {
			return d, true
		}
	}
	if m := isoDate.FindStringSubmatch(raw); m != nil {
		if d, ok := dateFromParts(m[1], m[3], m[2]); ok {
			return d, true
		}
	}
	if m := slashDate.FindStringSubmatch(raw); m != nil {
		if d, ok := dateFromParts(m[3], m[2], m[1]); ok {
			return d, true
		}
	}

	dt, err := dateparser.Parse(nil, raw)
	if err != nil || dt.Time.IsZero() || dt.Time.Year() <= 1900 {
		return time.Time{}, false
	}
	t := dt.Time
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}

func dateFromParts(year, day, month string) (time.Time, bool) {
	y, _ := strconv.Atoi(year)
	d, _ := strconv.Atoi(day)
	m, _ := strconv.Atoi(month)
	if y <= 1900 || m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC), true
}
