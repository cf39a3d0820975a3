package content

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Today is the rotating selection of the current day.
type Today struct {
	Date            time.Time  `json:"date"`
	Verse           BibleVerse `json:"verse"`
	GrowthChallenge string     `json:"growthChallenge"`
	HeaderVideo     string     `json:"headerVideo"`
}

// Daily holds the selection of the current day. It is safe for concurrent use.
type Daily struct {
	catalog *Catalog
	mu      sync.RWMutex
	today   Today
}

// NewDaily creates a holder already rotated to now.
func NewDaily(c *Catalog, now time.Time) *Daily {
	d := &Daily{catalog: c}
	d.Rotate(now)
	return d
}

// Rotate selects the verse, growth challenge and header video for the day of t.
func (d *Daily) Rotate(t time.Time) Today {
	day := t.YearDay() - 1
	verses := d.catalog.Verses(DefaultVersion)

	today := Today{
		Date:        time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()),
		HeaderVideo: d.catalog.HeaderVideo(day),
	}
	if len(verses) > 0 {
		today.Verse = verses[day%len(verses)]
	}
	if n := len(d.catalog.GrowthChallengeTasks); n > 0 {
		today.GrowthChallenge = d.catalog.GrowthChallengeTasks[day%n]
	}

	d.mu.Lock()
	d.today = today
	d.mu.Unlock()

	log.Debug("rotated daily content", "date", today.Date.Format(time.DateOnly), "verse", today.Verse.Reference)
	return today
}

// Today returns the current selection.
func (d *Daily) Today() Today {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.today
}
