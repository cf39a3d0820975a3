package app

import (
	"context"
	"fmt"
	"time"

	"github.com/teenfaith/teenfaith/internal/auth"
	"github.com/teenfaith/teenfaith/internal/config"
	"github.com/teenfaith/teenfaith/internal/content"
	"github.com/teenfaith/teenfaith/internal/models"
	"github.com/teenfaith/teenfaith/internal/nav"
	"github.com/teenfaith/teenfaith/internal/registry"
	"github.com/teenfaith/teenfaith/internal/scheduler"
	"github.com/teenfaith/teenfaith/internal/session"
)

// Motivator produces motivational messages and never fails.
type Motivator interface {
	Request(ctx context.Context, userName, mood string) string
}

// State is the per-client application state.
type State struct {
	Session session.Session `json:"session"`
	Page    nav.Page        `json:"page"`
}

// Controller owns the state transitions of every client.
type Controller struct {
	auth      *auth.Flow
	registry  *registry.Registry
	catalog   *content.Catalog
	daily     *content.Daily
	motivator Motivator
	avatarCfg *config.AvatarConfig
	sched     *scheduler.Scheduler
	now       func() time.Time
}

// New creates a controller.
func New(
	flow *auth.Flow,
	reg *registry.Registry,
	catalog *content.Catalog,
	daily *content.Daily,
	motivator Motivator,
	avatarCfg *config.AvatarConfig,
) *Controller {
	return &Controller{
		auth:      flow,
		registry:  reg,
		catalog:   catalog,
		daily:     daily,
		motivator: motivator,
		avatarCfg: avatarCfg,
		now:       time.Now,
	}
}

// Catalog returns the content catalogue.
func (c *Controller) Catalog() *content.Catalog {
	return c.catalog
}

// Daily returns the daily selection holder.
func (c *Controller) Daily() *content.Daily {
	return c.daily
}

// Registry returns the user registry.
func (c *Controller) Registry() *registry.Registry {
	return c.registry
}

// State restores the state of a client.
func (c *Controller) State(store session.Store) State {
	return State{
		Session: session.Restore(store),
		Page:    nav.Load(store),
	}
}

// commit writes the session and page and saves the store once.
func commit(store session.Store, st State) error {
	if err := session.Persist(store, st.Session); err != nil {
		return err
	}
	nav.Navigate(store, st.Page)
	if err := store.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Login authenticates the client and moves it to the home page.
// On failure the state is left untouched.
func (c *Controller) Login(ctx context.Context, store session.Store, identifier, password string, role models.Role) (State, error) {
	user, err := c.auth.Login(ctx, identifier, password, role)
	if err != nil {
		return c.State(store), err
	}

	st := State{Session: session.Authenticated(*user), Page: nav.PageHome}
	if err := commit(store, st); err != nil {
		return State{}, err
	}
	return st, nil
}

// Register creates an account, authenticates the client and moves it to the home page.
func (c *Controller) Register(ctx context.Context, store session.Store, name, email, password string, role models.Role) (State, error) {
	user, err := c.auth.Register(ctx, name, email, password, role)
	if err != nil {
		return c.State(store), err
	}

	st := State{Session: session.Authenticated(*user), Page: nav.PageHome}
	if err := commit(store, st); err != nil {
		return State{}, err
	}
	return st, nil
}

// Logout clears the session and moves the client to the login page.
func (c *Controller) Logout(store session.Store) (State, error) {
	st := State{Session: session.Anonymous(), Page: nav.PageLogin}
	if err := commit(store, st); err != nil {
		return State{}, err
	}
	return st, nil
}

// Navigate stores page for the client.
func (c *Controller) Navigate(store session.Store, page nav.Page) (State, error) {
	st := c.State(store)
	st.Page = page
	if err := commit(store, st); err != nil {
		return State{}, err
	}
	return st, nil
}
