package avatar

import (
	"crypto/sha256"
	"fmt"
	"net/url"
	"strings"

	"github.com/teenfaith/teenfaith/internal/config"
	"github.com/teenfaith/teenfaith/internal/models"
)

const dicebearURL = "https://api.dicebear.com/7.x/avataaars/svg"

// URL returns the avatar URL for u. An explicit avatar always wins.
// Returns an empty string when no avatar can be generated.
func URL(u *models.User, cfg *config.AvatarConfig) string {
	if u == nil {
		return ""
	}
	if u.Avatar != "" {
		return u.Avatar
	}
	if cfg == nil {
		return ""
	}

	switch cfg.Provider {
	case config.AvatarProviderDicebear:
		return DicebearURL(u.Name)
	case config.AvatarProviderGravatar:
		return GravatarURL(u.Email, cfg)
	default:
		return ""
	}
}

// DicebearURL returns a generated avatar seeded with name.
func DicebearURL(name string) string {
	if name == "" {
		return ""
	}
	return dicebearURL + "?" + url.Values{"seed": {name}}.Encode()
}

// GravatarURL generates a Gravatar URL for the given email address.
// Returns an empty string if email is empty.
func GravatarURL(email string, cfg *config.AvatarConfig) string {
	if email == "" {
		return ""
	}
	// Normalize email (trim whitespace and convert to lowercase)
	email = strings.TrimSpace(strings.ToLower(email))

	hash := sha256.Sum256([]byte(email))
	baseURL := fmt.Sprintf("https://www.gravatar.com/avatar/%x", hash)

	if cfg == nil {
		return baseURL
	}

	params := url.Values{}
	if cfg.DefaultImage != "" {
		params.Add("d", cfg.DefaultImage)
	}
	if cfg.Rating != "" {
		params.Add("r", cfg.Rating)
	}
	if cfg.Size > 0 {
		params.Add("s", fmt.Sprintf("%d", cfg.Size))
	}

	if len(params) > 0 {
		baseURL = baseURL + "?" + params.Encode()
	}

	return baseURL
}
