package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/teenfaith/teenfaith/internal/config"
	"github.com/teenfaith/teenfaith/internal/models"
	"github.com/teenfaith/teenfaith/internal/registry"
)

var (
	// ErrInvalidCredentials is returned when no registered account matches.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountExists is returned when unique accounts are enforced and the email or name is taken.
	ErrAccountExists = errors.New("account already exists")
)

// SeededAdmin is the fixed identity granted by the seeded administrator login.
func SeededAdmin(identifier string) models.User {
	return models.User{
		ID:    "1",
		Name:  identifier,
		Email: identifier,
		Role:  models.RoleAdmin,
	}
}

// Flow implements login and registration against the registry.
type Flow struct {
	registry *registry.Registry
	cfg      *config.AuthConfig
	ids      *idGenerator
	now      func() time.Time
}

// New creates an auth flow. A nil cfg uses the defaults.
func New(reg *registry.Registry, cfg *config.AuthConfig) *Flow {
	if cfg == nil {
		cfg = &config.AuthConfig{TrustRequestedRole: true}
	}
	return &Flow{
		registry: reg,
		cfg:      cfg,
		ids:      newIDGenerator(),
		now:      time.Now,
	}
}

// Login returns the user for the first registered account whose email or
// name equals identifier and whose password matches.
func (f *Flow) Login(ctx context.Context, identifier, password string, requested models.Role) (*models.User, error) {
	records, err := f.registry.Load(ctx)
	if err != nil {
		return nil, err
	}

	rec, found := lo.Find(records, func(r models.StoredCredential) bool {
		if r.Email != identifier && r.Name != identifier {
			return false
		}
		return VerifyPassword(password, r.Password, r.Hashed) == nil
	})
	if found {
		user := rec.User()
		if f.cfg.TrustRequestedRole {
			user.Role = requested
		}
		log.Debug("user logged in", "id", user.ID, "role", user.Role)
		return &user, nil
	}

	if seeded := f.cfg.SeededAdminIdentifier(); seeded != "" && identifier == seeded {
		log.Info("seeded admin logged in", "identifier", identifier)
		user := SeededAdmin(seeded)
		return &user, nil
	}

	return nil, ErrInvalidCredentials
}

// Register appends a new account and returns its user.
func (f *Flow) Register(ctx context.Context, name, email, password string, role models.Role) (*models.User, error) {
	stored := password
	if f.cfg.HashPasswords {
		phc, err := HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		stored = phc
	}

	rec := models.StoredCredential{
		ID:       f.ids.NewAt(f.now()),
		Name:     name,
		Email:    email,
		Password: stored,
		Hashed:   f.cfg.HashPasswords,
		Role:     role,
	}

	var check func([]models.StoredCredential) error
	if f.cfg.UniqueAccounts {
		check = func(records []models.StoredCredential) error {
			if lo.ContainsBy(records, func(r models.StoredCredential) bool {
				return r.Email == email || r.Name == name
			}) {
				return ErrAccountExists
			}
			return nil
		}
	}

	if err := f.registry.Append(ctx, rec, check); err != nil {
		return nil, err
	}

	log.Info("user registered", "id", rec.ID, "role", rec.Role)
	user := rec.User()
	return &user, nil
}
