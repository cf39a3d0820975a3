package motivation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teenfaith/teenfaith/internal/config"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestClient_GenerateContent(t *testing.T) {
	var gotPrompt string
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 1)
		gotPrompt = req.Contents[0].Parts[0].Text

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"Keep "},{"text":"going!"}]}}]}`)
	})

	c := NewClient(server.URL+"/", "test-key", "test-model")
	text, err := c.GenerateContent(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "Keep going!", text)
	assert.Equal(t, "hello", gotPrompt)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		apiKey  string
	}{
		{
			name: "non 2xx",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "quota", http.StatusTooManyRequests)
			},
			apiKey: "k",
		},
		{
			name: "bad json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, "{")
			},
			apiKey: "k",
		},
		{
			name: "missing api key",
			handler: func(_ http.ResponseWriter, _ *http.Request) {
				t.Error("should not be called")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newServer(t, tt.handler)
			_, err := NewClient(server.URL, tt.apiKey, "m").GenerateContent(context.Background(), "p")
			assert.Error(t, err)
		})
	}
}

func TestPrompt(t *testing.T) {
	p := Prompt("Ada", "anxious")
	assert.Contains(t, p, "for a teenager named Ada.")
	assert.Contains(t, p, "They are currently feeling anxious.")

	p = Prompt("Ada", "  ")
	assert.Contains(t, p, "They are looking for some general inspiration.")
	assert.Contains(t, p, "Include a relevant bible verse or wisdom quote.")
}

type fakeGenerator struct {
	text  string
	err   error
	calls int
}

func (f *fakeGenerator) GenerateContent(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.text, f.err
}

func TestRequest(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
		want string
	}{
		{name: "success", gen: &fakeGenerator{text: "You got this"}, want: "You got this"},
		{name: "empty", gen: &fakeGenerator{text: ""}, want: EmptyFallback},
		{name: "whitespace", gen: &fakeGenerator{text: " \n"}, want: EmptyFallback},
		{name: "failure", gen: &fakeGenerator{err: errors.New("boom")}, want: FailureFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewWithGenerator(tt.gen, 10)
			assert.Equal(t, tt.want, m.Request(context.Background(), "Ada", ""))
		})
	}
}

func TestRequest_RateLimited(t *testing.T) {
	gen := &fakeGenerator{text: "ok"}
	m := NewWithGenerator(gen, 2)

	assert.Equal(t, "ok", m.Request(context.Background(), "Ada", ""))
	assert.Equal(t, "ok", m.Request(context.Background(), "Ada", ""))
	assert.Equal(t, FailureFallback, m.Request(context.Background(), "Ada", ""))
	assert.Equal(t, 2, gen.calls)
}

func TestNewWithGenerator_NonPositiveLimit(t *testing.T) {
	for _, perMinute := range []int{0, -5} {
		gen := &fakeGenerator{text: "ok"}
		m := NewWithGenerator(gen, perMinute)

		assert.Equal(t, "ok", m.Request(context.Background(), "Ada", ""))
		assert.Equal(t, FailureFallback, m.Request(context.Background(), "Ada", ""))
		assert.Equal(t, 1, gen.calls)
	}
}

func TestNew_MissingKeyFallsBack(t *testing.T) {
	m := New(&config.MotivationConfig{BaseURL: "http://127.0.0.1:0", Model: "m", RequestsPerMinute: 5})
	assert.Equal(t, FailureFallback, m.Request(context.Background(), "Ada", "happy"))
}

func TestRequest_EndToEnd(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"candidates":[]}`)
	})
	m := New(&config.MotivationConfig{APIKey: "k", BaseURL: server.URL, Model: "m", RequestsPerMinute: 5})
	assert.Equal(t, EmptyFallback, m.Request(context.Background(), "Ada", ""))
}
