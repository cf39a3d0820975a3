package motivation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ccoveille/go-safecast"
	"github.com/charmbracelet/log"
	"github.com/teenfaith/teenfaith/internal/config"
	"golang.org/x/time/rate"
)

const (
	// EmptyFallback is returned when the model produced no text.
	EmptyFallback = "You are amazing! Keep shining your light on the world. Your journey is unique and your potential is limitless."
	// FailureFallback is returned when the call failed.
	FailureFallback = "Stay strong! You are capable of more than you know. Remember that every small step counts towards a great future."
)

var errRateLimited = errors.New("rate limited")

// Generator produces text for a prompt.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Motivator produces motivational messages. Request never fails.
type Motivator struct {
	gen     Generator
	limiter *rate.Limiter
}

// New creates a Motivator backed by the Gemini API.
func New(cfg *config.MotivationConfig) *Motivator {
	if cfg == nil {
		cfg = &config.MotivationConfig{RequestsPerMinute: 20}
	}
	if cfg.APIKey == "" {
		log.Warn("motivation.api_key is not set, motivational messages will use the fallback text")
	}
	return NewWithGenerator(NewClient(cfg.BaseURL, cfg.APIKey, cfg.Model), cfg.RequestsPerMinute)
}

// NewWithGenerator creates a Motivator using gen, limited to perMinute calls.
func NewWithGenerator(gen Generator, perMinute int) *Motivator {
	n, err := safecast.ToInt64(perMinute)
	if err != nil || n <= 0 {
		n, perMinute = 1, 1
	}
	return &Motivator{
		gen:     gen,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), perMinute),
	}
}

// Prompt builds the prompt for userName and the optional mood.
func Prompt(userName, mood string) string {
	feeling := "They are looking for some general inspiration."
	if mood = strings.TrimSpace(mood); mood != "" {
		feeling = fmt.Sprintf("They are currently feeling %s.", mood)
	}
	return fmt.Sprintf(
		"Write a short, uplifting, and modern motivational message for a teenager named %s. %s Include a relevant bible verse or wisdom quote. Keep it relatable, energetic, and encouraging. Use a friendly tone that resonates with modern youth.",
		userName, feeling,
	)
}

// Request returns a motivational message for userName.
func (m *Motivator) Request(ctx context.Context, userName, mood string) string {
	text, err := m.generate(ctx, Prompt(userName, mood))
	if err != nil {
		log.Error("failed to generate motivation", "error", err)
		return FailureFallback
	}
	if strings.TrimSpace(text) == "" {
		return EmptyFallback
	}
	return text
}

func (m *Motivator) generate(ctx context.Context, prompt string) (string, error) {
	if !m.limiter.Allow() {
		return "", errRateLimited
	}
	return m.gen.GenerateContent(ctx, prompt)
}
