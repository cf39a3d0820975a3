package content

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/samber/lo"
)

// DefaultVersion is used for unknown bible versions.
const DefaultVersion = "niv"

//go:embed catalog.json
var catalogJSON []byte

// Catalog is the read-only content of the application.
type Catalog struct {
	Sermons                []Sermon                `json:"sermons"`
	Music                  []Music                 `json:"music"`
	Devotional             Devotional              `json:"devotional"`
	BibleVersions          []BibleVersion          `json:"bibleVersions"`
	BibleContent           map[string][]BibleVerse `json:"bibleContent"`
	IntercessoryScriptures []IntercessoryScripture `json:"intercessoryScriptures"`
	PrayerInstrumentalURL  string                  `json:"prayerInstrumentalUrl"`
	Stories                []Story                 `json:"stories"`
	Quizzes                []Quiz                  `json:"quizzes"`
	HeaderVideos           []string                `json:"headerVideos"`
	GrowthChallengeTasks   []string                `json:"growthChallengeTasks"`
	StudyPlans             []StudyPlan             `json:"studyPlans"`
	Testimonies            []Testimony             `json:"testimonies"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalogue. It is parsed once.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(catalogJSON)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Parse decodes and checks a catalogue.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if _, ok := c.BibleContent[DefaultVersion]; !ok {
		return nil, fmt.Errorf("catalog has no %s verses", DefaultVersion)
	}
	if len(c.GrowthChallengeTasks) == 0 {
		return nil, fmt.Errorf("catalog has no growth challenge tasks")
	}
	for _, q := range c.Quizzes {
		for _, question := range q.Questions {
			if !validOption(question.CorrectOption) {
				return nil, fmt.Errorf("quiz %s question %s: invalid correct option %q", q.ID, question.ID, question.CorrectOption)
			}
		}
	}
	return &c, nil
}

// Verses returns the verses of version, falling back to the default version.
func (c *Catalog) Verses(version string) []BibleVerse {
	if verses, ok := c.BibleContent[version]; ok {
		return verses
	}
	return c.BibleContent[DefaultVersion]
}

// HasVersion reports whether version is a known bible version.
func (c *Catalog) HasVersion(version string) bool {
	return lo.ContainsBy(c.BibleVersions, func(v BibleVersion) bool { return v.ID == version })
}

// Quiz returns the quiz with id.
func (c *Catalog) Quiz(id string) (Quiz, bool) {
	return lo.Find(c.Quizzes, func(q Quiz) bool { return q.ID == id })
}

// HeaderVideo returns the header video for the given index, wrapping around.
func (c *Catalog) HeaderVideo(i int) string {
	if len(c.HeaderVideos) == 0 {
		return ""
	}
	if i < 0 {
		i = -i
	}
	return c.HeaderVideos[i%len(c.HeaderVideos)]
}
