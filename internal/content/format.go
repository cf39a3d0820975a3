package content

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mergestat/timediff"
)

// RelativeDate renders a YYYY-MM-DD date relative to now, e.g. "2 months ago".
// Unparseable dates are returned unchanged.
func RelativeDate(date string, now time.Time) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return timediff.TimeDiff(t, timediff.WithStartTime(now))
}

// DayLabel renders a study plan day, e.g. "1st day".
func DayLabel(day int) string {
	return fmt.Sprintf("%s day", humanize.Ordinal(day))
}
