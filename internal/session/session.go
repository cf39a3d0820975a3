package session

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/teenfaith/teenfaith/internal/models"
)

const (
	// UserKey holds the JSON encoded session user.
	UserKey = "session"
	// PageKey holds the current page.
	PageKey = "page"
)

// Store is the per-client persisted state.
// sessions.Session from gin-contrib/sessions satisfies it.
type Store interface {
	Get(key any) any
	Set(key any, val any)
	Delete(key any)
	Save() error
}

// Session is the authentication state of one client.
type Session struct {
	User            *models.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
}

// Anonymous returns an unauthenticated session.
func Anonymous() Session {
	return Session{}
}

// Authenticated returns a session for u.
func Authenticated(u models.User) Session {
	return Session{User: &u, IsAuthenticated: true}
}

// Restore reads the session from the store.
// Absent or malformed values yield an unauthenticated session.
func Restore(store Store) Session {
	user, err := decode(store.Get(UserKey))
	if err != nil {
		log.Debug("ignoring persisted session", "error", err)
		return Anonymous()
	}
	if user == nil {
		return Anonymous()
	}
	return Authenticated(*user)
}

func decode(raw any) (*models.User, error) {
	var data []byte
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return nil, fmt.Errorf("%w: unexpected type %T", models.ErrMalformed, raw)
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrMalformed, err)
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return &user, nil
}

// Persist writes s to the store. The caller commits with Save.
func Persist(store Store, s Session) error {
	if !s.IsAuthenticated || s.User == nil {
		store.Delete(UserKey)
		return nil
	}
	data, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	store.Set(UserKey, string(data))
	return nil
}
