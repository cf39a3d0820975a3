package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

type StorageType string

const (
	StorageTypeSQLite StorageType = "sqlite"
	StorageTypeMemory StorageType = "memory"
	StorageTypeRedis  StorageType = "redis"
)

type AvatarProvider string

const (
	AvatarProviderDicebear AvatarProvider = "dicebear"
	AvatarProviderGravatar AvatarProvider = "gravatar"
	AvatarProviderNone     AvatarProvider = "none"
)

// Config holds the configuration for the TeenFaith+ server and its dependencies.
type Config struct {
	// Listen is the address the server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// LogLevel is the default log level, the --log-level flag overrides it.
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	// SessionKey is the key used to sign the session cookie.
	SessionKey string `yaml:"session_key" mapstructure:"session_key"`
	// SessionMaxAge is the maximum age of a session in seconds.
	SessionMaxAge int `yaml:"session_max_age" mapstructure:"session_max_age"`
	// SecureCookies marks the session cookie as secure (HTTPS only).
	SecureCookies bool `yaml:"secure_cookies" mapstructure:"secure_cookies"`
	// Storage holds the configuration of the key-value store backing the user registry.
	Storage *StorageConfig `yaml:"storage" mapstructure:"storage"`
	// Auth holds the login and registration behaviour.
	Auth *AuthConfig `yaml:"auth" mapstructure:"auth"`
	// Motivation holds the configuration for the generative-text API.
	Motivation *MotivationConfig `yaml:"motivation" mapstructure:"motivation"`
	// Avatar holds the configuration for profile pictures.
	Avatar *AvatarConfig `yaml:"avatar" mapstructure:"avatar"`
}

// StorageConfig holds the key-value store configuration.
type StorageConfig struct {
	// Type is the backend to use (e.g., "sqlite", "memory", "redis").
	Type StorageType `yaml:"type" mapstructure:"type"`
	// Path is the path to the sqlite database file.
	Path string `yaml:"path" mapstructure:"path"`
	// RedisURL is the address of the redis server if using redis.
	RedisURL string `yaml:"redis_url" mapstructure:"redis_url"`
}

// AuthConfig holds the authentication configuration.
type AuthConfig struct {
	// TrustRequestedRole grants the role picked on the login form instead of the registered one.
	TrustRequestedRole bool `yaml:"trust_requested_role" mapstructure:"trust_requested_role"`
	// UniqueAccounts rejects registrations whose email or name is already registered.
	UniqueAccounts bool `yaml:"unique_accounts" mapstructure:"unique_accounts"`
	// HashPasswords stores new passwords as argon2id hashes instead of plaintext.
	HashPasswords bool `yaml:"hash_passwords" mapstructure:"hash_passwords"`
	// SeededAdmin holds the configuration of the password-less administrator login.
	SeededAdmin *SeededAdminConfig `yaml:"seeded_admin" mapstructure:"seeded_admin"`
}

// SeededAdminConfig holds the configuration of the seeded administrator.
// When enabled, logging in with Identifier succeeds without a password check.
type SeededAdminConfig struct {
	// Enabled indicates whether the seeded administrator login is enabled.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// Identifier is the login identifier that triggers the seeded administrator.
	Identifier string `yaml:"identifier" mapstructure:"identifier"`
}

// MotivationConfig holds the configuration for the Gemini API.
type MotivationConfig struct {
	// APIKey is the Gemini API key.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	// BaseURL is the base URL of the Gemini API.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// Model is the model used to generate the message.
	Model string `yaml:"model" mapstructure:"model"`
	// RequestsPerMinute limits the outbound calls across all users.
	RequestsPerMinute int `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
}

// AvatarConfig holds the configuration for profile pictures.
type AvatarConfig struct {
	// Provider is the avatar provider (e.g., "dicebear", "gravatar", "none").
	Provider AvatarProvider `yaml:"provider" mapstructure:"provider"`
	// DefaultImage is the default image to use when no Gravatar is found.
	// Valid values: "404", "mp", "identicon", "monsterid", "wavatar", "retro", "robohash", "blank"
	DefaultImage string `yaml:"default_image" mapstructure:"default_image"`
	// Rating is the maximum rating for Gravatar images.
	// Valid values: "g", "pg", "r", "x"
	Rating string `yaml:"rating" mapstructure:"rating"`
	// Size is the size of the Gravatar image in pixels (1-2048).
	Size int `yaml:"size" mapstructure:"size"`
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
// If no config file is found, defaults and environment variables are used.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("TEENFAITH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var configFileFound bool
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.teenfaith")
		v.AddConfigPath("/etc/teenfaith")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileFound = true
	}

	if configFileFound {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
		log.Debug("Environment variables with the TEENFAITH_ prefix override config file values")
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	sanitizeConfig(&c)

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	warnInsecureConfig(&c)

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:3003")
	v.SetDefault("log_level", "info")
	v.SetDefault("session_key", "")
	v.SetDefault("session_max_age", 172800) // 48 hours
	v.SetDefault("secure_cookies", false)

	// Storage defaults
	v.SetDefault("storage.type", StorageTypeSQLite)
	v.SetDefault("storage.path", "./data/teenfaith.db")
	v.SetDefault("storage.redis_url", "")

	// Auth defaults
	v.SetDefault("auth.trust_requested_role", true)
	v.SetDefault("auth.unique_accounts", false)
	v.SetDefault("auth.hash_passwords", false)
	v.SetDefault("auth.seeded_admin.enabled", false)
	v.SetDefault("auth.seeded_admin.identifier", "Consi")

	// Motivation defaults
	v.SetDefault("motivation.api_key", "")
	v.SetDefault("motivation.base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("motivation.model", "gemini-3-flash-preview")
	v.SetDefault("motivation.requests_per_minute", 20)

	// Avatar defaults
	v.SetDefault("avatar.provider", AvatarProviderDicebear)
	v.SetDefault("avatar.default_image", "robohash")
	v.SetDefault("avatar.rating", "g")
	v.SetDefault("avatar.size", 80)
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("missing teenfaith config")
	}

	if c.SessionKey == "" {
		return fmt.Errorf("session key is required")
	}

	if c.SessionMaxAge <= 0 {
		return fmt.Errorf("session max age must be greater than 0")
	}

	if c.Storage == nil {
		return fmt.Errorf("missing storage config")
	}
	switch c.Storage.Type {
	case StorageTypeSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage path is required when sqlite storage is used")
		}
	case StorageTypeRedis:
		if c.Storage.RedisURL == "" {
			return fmt.Errorf("Redis URL is required when redis storage is used") //nolint:staticcheck
		}
	case StorageTypeMemory:
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}

	if c.Auth == nil {
		c.Auth = &AuthConfig{TrustRequestedRole: true}
	}
	if c.Auth.SeededAdmin != nil && c.Auth.SeededAdmin.Enabled && c.Auth.SeededAdmin.Identifier == "" {
		return fmt.Errorf("seeded admin identifier is required when the seeded admin is enabled")
	}

	if c.Motivation == nil {
		return fmt.Errorf("missing motivation config")
	}
	if c.Motivation.BaseURL == "" {
		return fmt.Errorf("motivation base URL is required")
	}
	if c.Motivation.Model == "" {
		return fmt.Errorf("motivation model is required")
	}
	if c.Motivation.RequestsPerMinute <= 0 {
		return fmt.Errorf("motivation requests per minute must be greater than 0")
	}

	if c.Avatar == nil {
		c.Avatar = &AvatarConfig{Provider: AvatarProviderNone}
	}
	switch c.Avatar.Provider {
	case AvatarProviderDicebear, AvatarProviderNone:
	case AvatarProviderGravatar:
		if c.Avatar.DefaultImage != "" && !isValidDefaultImage(c.Avatar.DefaultImage) {
			return fmt.Errorf("invalid gravatar default image %q", c.Avatar.DefaultImage)
		}
		if c.Avatar.Rating != "" && !isValidRating(c.Avatar.Rating) {
			return fmt.Errorf("invalid gravatar rating %q", c.Avatar.Rating)
		}
		if c.Avatar.Size != 0 && (c.Avatar.Size < 1 || c.Avatar.Size > 2048) {
			return fmt.Errorf("gravatar size must be between 1 and 2048")
		}
	default:
		return fmt.Errorf("unknown avatar provider %q", c.Avatar.Provider)
	}

	return nil
}

// sanitizeConfig sanitizes the configuration values.
func sanitizeConfig(c *Config) {
	if c == nil {
		return
	}

	c.Listen = urlSanitize(c.Listen)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	if c.Storage != nil {
		c.Storage.Type = StorageType(strings.ToLower(strings.TrimSpace(string(c.Storage.Type))))
		c.Storage.Path = strings.TrimSpace(c.Storage.Path)
		c.Storage.RedisURL = strings.TrimSpace(c.Storage.RedisURL)
	}

	if c.Motivation != nil {
		c.Motivation.BaseURL = urlSanitize(c.Motivation.BaseURL)
		c.Motivation.Model = strings.TrimSpace(c.Motivation.Model)
	}

	if c.Avatar != nil {
		c.Avatar.Provider = AvatarProvider(strings.ToLower(strings.TrimSpace(string(c.Avatar.Provider))))
	}
}

func urlSanitize(url string) string {
	return strings.TrimSuffix(strings.TrimSpace(url), "/")
}

// warnInsecureConfig logs warnings for settings that weaken authentication.
func warnInsecureConfig(c *Config) {
	if c == nil || c.Auth == nil {
		return
	}

	if c.Auth.SeededAdmin != nil && c.Auth.SeededAdmin.Enabled {
		log.Warnf("Seeded admin is enabled: logging in as '%s' grants admin access without a password", c.Auth.SeededAdmin.Identifier)
	}

	if c.Auth.TrustRequestedRole {
		log.Warn("auth.trust_requested_role is enabled: users choose their own role at login")
	}

	if !c.Auth.HashPasswords {
		log.Debug("auth.hash_passwords is disabled, new passwords are stored in plaintext")
	}
}

// SeededAdminIdentifier returns the identifier of the seeded administrator,
// or an empty string if the seeded administrator is disabled.
func (c *AuthConfig) SeededAdminIdentifier() string {
	if c == nil || c.SeededAdmin == nil || !c.SeededAdmin.Enabled {
		return ""
	}
	return c.SeededAdmin.Identifier
}

func isValidDefaultImage(defaultImage string) bool {
	validDefaults := map[string]bool{
		"404":       true,
		"mp":        true,
		"identicon": true,
		"monsterid": true,
		"wavatar":   true,
		"retro":     true,
		"robohash":  true,
		"blank":     true,
	}
	return validDefaults[defaultImage]
}

func isValidRating(rating string) bool {
	validRatings := map[string]bool{
		"g":  true,
		"pg": true,
		"r":  true,
		"x":  true,
	}
	return validRatings[rating]
}
