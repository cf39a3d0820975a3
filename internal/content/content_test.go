package content

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Len(t, c.Sermons, 2)
	assert.Len(t, c.Music, 2)
	assert.Len(t, c.Stories, 1)
	assert.Len(t, c.Quizzes, 1)
	assert.Len(t, c.StudyPlans, 3)
	assert.Len(t, c.Testimonies, 2)
	assert.Len(t, c.IntercessoryScriptures, 3)
	assert.Len(t, c.GrowthChallengeTasks, 3)
	assert.Equal(t, "Walking in Boldness", c.Devotional.Title)
	assert.NotEmpty(t, c.PrayerInstrumentalURL)
	assert.Same(t, c, Default())
}

func TestVerses(t *testing.T) {
	c := Default()
	assert.Len(t, c.Verses("niv"), 7)
	assert.Len(t, c.Verses("kjv"), 4)
	assert.Equal(t, c.Verses("niv"), c.Verses("esv"), "versions without verses fall back to niv")
	assert.Equal(t, c.Verses("niv"), c.Verses("klingon"))

	assert.True(t, c.HasVersion("nlt"))
	assert.False(t, c.HasVersion("klingon"))
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "nope"},
		{name: "no niv", raw: `{"bibleContent":{},"growthChallengeTasks":["x"]}`},
		{name: "no tasks", raw: `{"bibleContent":{"niv":[]}}`},
		{name: "bad option", raw: `{"bibleContent":{"niv":[]},"growthChallengeTasks":["x"],"quizzes":[{"id":"q","questions":[{"id":"1","correctOption":"e"}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestPublicQuizzes_HideAnswers(t *testing.T) {
	data, err := json.Marshal(Default().PublicQuizzes())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "correctOption")
	assert.Contains(t, string(data), "Who led the Israelites out of Egypt?")
}

func TestGrade(t *testing.T) {
	c := Default()
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

	res, err := c.Grade("q1", "u1", map[string]string{"q1_1": "b"}, now)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Score)
	assert.Equal(t, 1, res.TotalQuestions)
	assert.Equal(t, "q1", res.QuizID)
	assert.Equal(t, "u1", res.UserID)
	assert.Equal(t, now, res.Date)
	assert.NotEmpty(t, res.ID)

	res, err = c.Grade("q1", "u1", map[string]string{"q1_1": "a"}, now)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Score)

	res, err = c.Grade("q1", "u1", nil, now)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Score)

	_, err = c.Grade("q9", "u1", nil, now)
	assert.ErrorIs(t, err, ErrQuizNotFound)
}

func TestDailyRotate(t *testing.T) {
	c := Default()
	jan1 := time.Date(2026, 1, 1, 15, 0, 0, 0, time.UTC)
	d := NewDaily(c, jan1)

	today := d.Today()
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), today.Date)
	assert.Equal(t, c.Verses("niv")[0], today.Verse)
	assert.Equal(t, c.GrowthChallengeTasks[0], today.GrowthChallenge)

	next := d.Rotate(jan1.AddDate(0, 0, 1))
	assert.Equal(t, c.Verses("niv")[1], next.Verse)
	assert.Equal(t, c.GrowthChallengeTasks[1], next.GrowthChallenge)
	assert.Equal(t, next, d.Today())

	// wraps around
	wrapped := d.Rotate(jan1.AddDate(0, 0, 7))
	assert.Equal(t, c.Verses("niv")[0], wrapped.Verse)
}

func TestHeaderVideo(t *testing.T) {
	c := &Catalog{HeaderVideos: []string{"a", "b"}}
	assert.Equal(t, "a", c.HeaderVideo(0))
	assert.Equal(t, "b", c.HeaderVideo(3))
	assert.Equal(t, "b", c.HeaderVideo(-1))
	assert.Empty(t, (&Catalog{}).HeaderVideo(1))
}

func TestRelativeDate(t *testing.T) {
	now := time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC)
	assert.Contains(t, RelativeDate("2024-05-10", now), "ago")
	assert.Equal(t, "someday", RelativeDate("someday", now))
}

func TestDayLabel(t *testing.T) {
	assert.Equal(t, "1st day", DayLabel(1))
	assert.Equal(t, "2nd day", DayLabel(2))
	assert.Equal(t, "3rd day", DayLabel(3))
}
