package nav

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/teenfaith/teenfaith/internal/models"
	"github.com/teenfaith/teenfaith/internal/session"
)

// ErrUnknownPage is returned for page names outside the enumeration.
var ErrUnknownPage = errors.New("unknown page")

// Page is a view of the application.
type Page string

const (
	PageHome       Page = "home"
	PageBible      Page = "bible"
	PageMusic      Page = "music"
	PageSermons    Page = "sermons"
	PageStories    Page = "stories"
	PageQuizzes    Page = "quizzes"
	PageMotivation Page = "motivation"
	PageAdmin      Page = "admin"
	PageProfile    Page = "profile"
	PageLogin      Page = "login"
)

// Pages lists every page.
var Pages = []Page{
	PageHome,
	PageBible,
	PageMusic,
	PageSermons,
	PageStories,
	PageQuizzes,
	PageMotivation,
	PageAdmin,
	PageProfile,
	PageLogin,
}

// Initial is the page used when nothing is stored.
const Initial = PageHome

// Parse converts s to a Page.
func Parse(s string) (Page, error) {
	p := Page(s)
	if !lo.Contains(Pages, p) {
		return "", fmt.Errorf("%w: %q", ErrUnknownPage, s)
	}
	return p, nil
}

// Load returns the stored page or Initial.
func Load(store session.Store) Page {
	raw, ok := store.Get(session.PageKey).(string)
	if !ok || raw == "" {
		return Initial
	}
	p, err := Parse(raw)
	if err != nil {
		log.Debug("ignoring stored page", "error", err)
		return Initial
	}
	return p
}

// Navigate stores p unconditionally. The caller commits with Save.
func Navigate(store session.Store, p Page) {
	store.Set(session.PageKey, string(p))
}

// Resolve returns the page to render. Unauthenticated clients always see login.
func Resolve(authenticated bool, stored Page) Page {
	if !authenticated {
		return PageLogin
	}
	return stored
}

// MenuItem is an entry of the navigation bar.
type MenuItem struct {
	Page  Page   `json:"page"`
	Label string `json:"label"`
}

var menu = []MenuItem{
	{Page: PageHome, Label: "Home"},
	{Page: PageBible, Label: "Bible"},
	{Page: PageMusic, Label: "Music"},
	{Page: PageSermons, Label: "Sermons"},
	{Page: PageStories, Label: "Cinema"},
	{Page: PageQuizzes, Label: "Quizzes"},
	{Page: PageMotivation, Label: "Motivation"},
}

// Menu returns the navigation entries visible to role.
func Menu(role models.Role) []MenuItem {
	items := make([]MenuItem, len(menu), len(menu)+1)
	copy(items, menu)
	if role == models.RoleAdmin {
		items = append(items, MenuItem{Page: PageAdmin, Label: "Admin"})
	}
	return items
}
