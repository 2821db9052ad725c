package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func TestValidateSuggestionRequest(t *testing.T) {
	tests := []struct {
		name       string
		reflection string
		wantErr    bool
	}{
		{name: "empty", reflection: "", wantErr: true},
		{name: "nine chars", reflection: "too short", wantErr: true},
		{name: "padded short", reflection: "   short    ", wantErr: true},
		{name: "ten chars", reflection: "ten chars!", wantErr: false},
		{name: "long", reflection: "I skipped workouts but read every day.", wantErr: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSuggestionRequest(SuggestionRequest{WeeklyReflection: tc.reflection})
			if (err != nil) != tc.wantErr {
				t.Fatalf("wantErr=%v got %v", tc.wantErr, err)
			}
			if err != nil {
				var vErr *ValidationError
				if !errors.As(err, &vErr) || vErr.Message != "Please provide a more detailed reflection." {
					t.Fatalf("unexpected validation error %v", err)
				}
			}
		})
	}
}

func TestGenerateGoalImageReturnsDataURI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images/generations" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer k" {
			t.Errorf("unexpected auth header %q", got)
		}
		var req imageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if !strings.Contains(req.Prompt, `"Run a marathon"`) {
			t.Errorf("prompt missing goal title: %q", req.Prompt)
		}
		_, _ = w.Write([]byte(`{"data":[{"b64_json":"aGVsbG8="}]}`))
	}))
	defer srv.Close()

	c := NewClient(ClientOptions{APIKey: "k", BaseURL: srv.URL})
	got, err := c.GenerateGoalImage(context.Background(), GoalImageRequest{GoalTitle: "Run a marathon"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got.ImageURL != "data:image/png;base64,aGVsbG8=" {
		t.Fatalf("unexpected image url %q", got.ImageURL)
	}
}

func TestSuggestGoalAdjustmentsSendsPrompt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if len(req.Messages) != 1 || !strings.Contains(req.Messages[0].Content, "Fitness (Progress: 50%)") {
			t.Errorf("unexpected messages %+v", req.Messages)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Run 3x this week.  "}}]}`))
	}))
	defer srv.Close()

	c := NewClient(ClientOptions{APIKey: "k", BaseURL: srv.URL + "/"})
	got, err := c.SuggestGoalAdjustments(context.Background(), SuggestionRequest{
		WeeklyReflection: "I missed two workouts this week.",
		CurrentGoals:     "Fitness (Progress: 50%)",
	})
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if got.SuggestedAdjustments != "Run 3x this week." {
		t.Fatalf("unexpected suggestion %q", got.SuggestedAdjustments)
	}
}

func TestShortReflectionNeverCallsService(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	c := NewClient(ClientOptions{APIKey: "k", BaseURL: srv.URL})
	_, err := c.SuggestGoalAdjustments(context.Background(), SuggestionRequest{WeeklyReflection: "meh"})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatalf("service was called for invalid input")
	}
}

func TestAPIErrorIsSurfacedWithoutRetry(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"message":"overloaded"}}`))
	}))
	defer srv.Close()

	c := NewClient(ClientOptions{APIKey: "k", BaseURL: srv.URL})
	_, err := c.GenerateGoalImage(context.Background(), GoalImageRequest{GoalTitle: "Read more"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusServiceUnavailable || apiErr.Message != "overloaded" {
		t.Fatalf("expected APIError 503 overloaded, got %v", err)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Fatalf("expected exactly one attempt, got %d", hits)
	}
}

func TestMissingAPIKey(t *testing.T) {
	c := NewClient(ClientOptions{})
	if _, err := c.GenerateGoalImage(context.Background(), GoalImageRequest{GoalTitle: "x"}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestEmptyImageResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := NewClient(ClientOptions{APIKey: "k", BaseURL: srv.URL})
	if _, err := c.GenerateGoalImage(context.Background(), GoalImageRequest{GoalTitle: "x"}); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}
