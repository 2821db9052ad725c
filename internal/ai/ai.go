package ai

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"
)

const MinReflectionLength = 10

var (
	ErrNotConfigured = errors.New("ai: api key not configured")
	ErrEmptyResponse = errors.New("ai: empty response")
)

type GoalImageRequest struct {
	GoalTitle string `json:"goalTitle"`
}

type GoalImage struct {
	ImageURL string `json:"imageUrl"`
}

type SuggestionRequest struct {
	WeeklyReflection string `json:"weeklyReflection"`
	CurrentGoals     string `json:"currentGoals"`
}

type Suggestion struct {
	SuggestedAdjustments string `json:"suggestedAdjustments"`
}

type ImageGenerator interface {
	GenerateGoalImage(ctx context.Context, req GoalImageRequest) (GoalImage, error)
}

type Suggester interface {
	SuggestGoalAdjustments(ctx context.Context, req SuggestionRequest) (Suggestion, error)
}

// ValidationError is returned before any request is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func ValidateSuggestionRequest(req SuggestionRequest) error {
	if utf8.RuneCountInString(strings.TrimSpace(req.WeeklyReflection)) < MinReflectionLength {
		return &ValidationError{Field: "weeklyReflection", Message: "Please provide a more detailed reflection."}
	}
	return nil
}

func ValidateGoalImageRequest(req GoalImageRequest) error {
	if strings.TrimSpace(req.GoalTitle) == "" {
		return &ValidationError{Field: "goalTitle", Message: "Goal title is required."}
	}
	return nil
}
