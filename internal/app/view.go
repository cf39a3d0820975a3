package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/teenfaith/teenfaith/internal/avatar"
	"github.com/teenfaith/teenfaith/internal/content"
	"github.com/teenfaith/teenfaith/internal/models"
	"github.com/teenfaith/teenfaith/internal/nav"
	"github.com/teenfaith/teenfaith/internal/session"
)

// ViewOptions are the optional inputs of a view.
type ViewOptions struct {
	// Version selects the bible version.
	Version string
	// Mood is passed to the motivation collaborator.
	Mood string
}

// Header is the banner of a page.
type Header struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	VideoURL string `json:"videoUrl,omitempty"`
}

// FeatureCard links to another page from the home page.
type FeatureCard struct {
	Page        nav.Page `json:"page"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
}

type HomeView struct {
	Devotional      content.Devotional `json:"devotional"`
	GrowthChallenge string             `json:"growthChallenge"`
	Features        []FeatureCard      `json:"features"`
}

type BibleView struct {
	Versions               []content.BibleVersion          `json:"versions"`
	Version                string                          `json:"version"`
	Verses                 []content.BibleVerse            `json:"verses"`
	VerseOfTheDay          content.BibleVerse              `json:"verseOfTheDay"`
	IntercessoryScriptures []content.IntercessoryScripture `json:"intercessoryScriptures"`
	StudyPlans             []StudyPlanView                 `json:"studyPlans"`
	PrayerInstrumentalURL  string                          `json:"prayerInstrumentalUrl"`
}

type StudyDayView struct {
	content.StudyDay
	Label string `json:"label"`
}

type StudyPlanView struct {
	ID          string         `json:"id"`
	Level       string         `json:"level"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Days        []StudyDayView `json:"days"`
}

type SermonView struct {
	content.Sermon
	Posted string `json:"posted"`
}

type TestimonyView struct {
	content.Testimony
	Posted string `json:"posted"`
}

type StoriesView struct {
	Stories     []content.Story `json:"stories"`
	Testimonies []TestimonyView `json:"testimonies"`
}

type MotivationView struct {
	Mood    string `json:"mood,omitempty"`
	Message string `json:"message"`
}

type AdminView struct {
	Users []models.User `json:"users"`
}

type ProfileView struct {
	User      models.User `json:"user"`
	AvatarURL string      `json:"avatarUrl,omitempty"`
}

// View is the payload of the resolved page. Only the field of that page is set.
type View struct {
	Page       nav.Page             `json:"page"`
	Header     *Header              `json:"header,omitempty"`
	Home       *HomeView            `json:"home,omitempty"`
	Bible      *BibleView           `json:"bible,omitempty"`
	Music      []content.Music      `json:"music,omitempty"`
	Sermons    []SermonView         `json:"sermons,omitempty"`
	Stories    *StoriesView         `json:"stories,omitempty"`
	Quizzes    []content.PublicQuiz `json:"quizzes,omitempty"`
	Motivation *MotivationView      `json:"motivation,omitempty"`
	Admin      *AdminView           `json:"admin,omitempty"`
	Profile    *ProfileView         `json:"profile,omitempty"`
}

var features = []FeatureCard{
	{Page: nav.PageMusic, Title: "Teen Vibes", Description: "Download the latest faith tracks and submit your own creations."},
	{Page: nav.PageSermons, Title: "Watch Sermons", Description: "Powerful messages tailored for the modern teenage soul."},
	{Page: nav.PageQuizzes, Title: "Growth Quizzes", Description: "Level up your rank by testing your biblical knowledge."},
}

// View resolves the page of the client through the login gate and assembles its payload.
func (c *Controller) View(ctx context.Context, store session.Store, opts ViewOptions) (View, error) {
	st := c.State(store)
	page := nav.Resolve(st.Session.IsAuthenticated, st.Page)
	v := View{Page: page}
	user := st.Session.User

	switch page {
	case nav.PageLogin:
	case nav.PageHome:
		today := c.daily.Today()
		v.Header = &Header{
			Title:    fmt.Sprintf("Rise & Shine, %s", user.FirstName()),
			Subtitle: "Your daily growth hub. Catch up on sermons, vibes, and growth challenges.",
			VideoURL: c.catalog.HeaderVideo(0),
		}
		v.Home = &HomeView{
			Devotional:      c.catalog.Devotional,
			GrowthChallenge: today.GrowthChallenge,
			Features:        features,
		}
	case nav.PageBible:
		v.Header = &Header{Title: "Holy Bible", Subtitle: "Navigate and search the scriptures effortlessly."}
		v.Bible = c.bibleView(opts.Version)
	case nav.PageMusic:
		v.Header = &Header{
			Title:    "Vibe with the Word",
			Subtitle: "The ultimate teen soundtrack. Fresh beats, eternal truths. Download your favorites or share your own sound.",
			VideoURL: c.catalog.HeaderVideo(1),
		}
		v.Music = c.catalog.Music
	case nav.PageSermons:
		v.Header = &Header{Title: "Teen Sermons", Subtitle: "Watch life-changing messages.", VideoURL: c.catalog.HeaderVideo(2)}
		v.Sermons = c.Sermons()
	case nav.PageStories:
		v.Header = &Header{Title: "Cinema", Subtitle: "Stories and testimonies that move the soul."}
		v.Stories = &StoriesView{Stories: c.catalog.Stories, Testimonies: c.Testimonies()}
	case nav.PageQuizzes:
		v.Header = &Header{Title: "Growth Quizzes", Subtitle: "Challenge yourself and level up."}
		v.Quizzes = c.catalog.PublicQuizzes()
	case nav.PageMotivation:
		v.Header = &Header{Title: "AI Soul Lift", Subtitle: "Personalized guidance powered by Gemini."}
		v.Motivation = &MotivationView{
			Mood:    opts.Mood,
			Message: c.motivator.Request(ctx, user.Name, opts.Mood),
		}
	case nav.PageAdmin:
		v.Header = &Header{Title: "Admin", Subtitle: "Registered users."}
		v.Admin = &AdminView{Users: []models.User{}}
		if user.IsAdmin() {
			users, err := c.registry.Users(ctx)
			if err != nil {
				return View{}, err
			}
			v.Admin.Users = users
		} else {
			log.Debug("non-admin requested the admin view", "id", user.ID)
		}
	case nav.PageProfile:
		v.Header = &Header{Title: "Profile", Subtitle: "Your account."}
		v.Profile = &ProfileView{User: *user, AvatarURL: avatar.URL(user, c.avatarCfg)}
	}

	return v, nil
}

func (c *Controller) bibleView(version string) *BibleView {
	if !c.catalog.HasVersion(version) {
		version = content.DefaultVersion
	}
	return &BibleView{
		Versions:               c.catalog.BibleVersions,
		Version:                version,
		Verses:                 c.catalog.Verses(version),
		VerseOfTheDay:          c.daily.Today().Verse,
		IntercessoryScriptures: c.catalog.IntercessoryScriptures,
		StudyPlans:             c.StudyPlans(),
		PrayerInstrumentalURL:  c.catalog.PrayerInstrumentalURL,
	}
}

// Sermons returns the sermons with their relative dates.
func (c *Controller) Sermons() []SermonView {
	now := c.now()
	return lo.Map(c.catalog.Sermons, func(s content.Sermon, _ int) SermonView {
		return SermonView{Sermon: s, Posted: content.RelativeDate(s.Date, now)}
	})
}

// Testimonies returns the testimonies with their relative dates.
func (c *Controller) Testimonies() []TestimonyView {
	now := c.now()
	return lo.Map(c.catalog.Testimonies, func(t content.Testimony, _ int) TestimonyView {
		return TestimonyView{Testimony: t, Posted: content.RelativeDate(t.Date, now)}
	})
}

// StudyPlans returns the study plans with day labels.
func (c *Controller) StudyPlans() []StudyPlanView {
	return lo.Map(c.catalog.StudyPlans, func(p content.StudyPlan, _ int) StudyPlanView {
		return StudyPlanView{
			ID:          p.ID,
			Level:       p.Level,
			Title:       p.Title,
			Description: p.Description,
			Days: lo.Map(p.Days, func(d content.StudyDay, _ int) StudyDayView {
				return StudyDayView{StudyDay: d, Label: content.DayLabel(d.Day)}
			}),
		}
	})
}

// Motivation returns a motivational message for user.
func (c *Controller) Motivation(ctx context.Context, user *models.User, mood string) MotivationView {
	return MotivationView{Mood: mood, Message: c.motivator.Request(ctx, user.Name, mood)}
}

// Grade grades a quiz attempt of user.
func (c *Controller) Grade(user *models.User, quizID string, answers map[string]string) (content.QuizResult, error) {
	return c.catalog.Grade(quizID, user.ID, answers, c.now())
}
