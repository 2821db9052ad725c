package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL    = "https://api.openai.com/v1"
	DefaultImageModel = "gpt-image-1"
	DefaultChatModel  = "gpt-4o-mini"
	defaultTimeout    = 60 * time.Second
)

const suggestionPrompt = `You are an AI assistant designed to help users stay on track with their goals.

Based on the user's reflection from their weekly review and their current goals, suggest concrete adjustments to their goals or tasks for the upcoming week. The adjustments should be specific, measurable, achievable, relevant, and time-bound (SMART).

Weekly Reflection: %s
Current Goals: %s`

// Client talks to an OpenAI-compatible API. Requests are not retried; the
// caller decides whether to try again.
type Client struct {
	apiKey     string
	baseURL    string
	imageModel string
	chatModel  string
	client     *http.Client
}

type ClientOptions struct {
	APIKey     string
	BaseURL    string
	ImageModel string
	ChatModel  string
	Timeout    time.Duration
}

func NewClient(opts ClientOptions) *Client {
	c := &Client{
		apiKey:     opts.APIKey,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		imageModel: opts.ImageModel,
		chatModel:  opts.ChatModel,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.imageModel == "" {
		c.imageModel = DefaultImageModel
	}
	if c.chatModel == "" {
		c.chatModel = DefaultChatModel
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c.client = &http.Client{Timeout: timeout}
	return c
}

type imageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	ResponseFormat string `json:"response_format,omitempty"`
}

type imageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
		URL     string `json:"url"`
	} `json:"data"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// APIError is a non-2xx answer from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ai: api error (%d): %s", e.StatusCode, e.Message)
}

func (c *Client) GenerateGoalImage(ctx context.Context, req GoalImageRequest) (GoalImage, error) {
	if err := ValidateGoalImageRequest(req); err != nil {
		return GoalImage{}, err
	}
	body := imageRequest{
		Model:  c.imageModel,
		Prompt: fmt.Sprintf("Generate an inspiring, minimalist, abstract image representing the goal: %q", req.GoalTitle),
		N:      1,
	}
	var resp imageResponse
	if err := c.post(ctx, "/images/generations", body, &resp); err != nil {
		return GoalImage{}, err
	}
	if len(resp.Data) == 0 {
		return GoalImage{}, ErrEmptyResponse
	}
	switch {
	case resp.Data[0].B64JSON != "":
		return GoalImage{ImageURL: "data:image/png;base64," + resp.Data[0].B64JSON}, nil
	case resp.Data[0].URL != "":
		return GoalImage{ImageURL: resp.Data[0].URL}, nil
	default:
		return GoalImage{}, ErrEmptyResponse
	}
}

func (c *Client) SuggestGoalAdjustments(ctx context.Context, req SuggestionRequest) (Suggestion, error) {
	if err := ValidateSuggestionRequest(req); err != nil {
		return Suggestion{}, err
	}
	body := chatRequest{
		Model: c.chatModel,
		Messages: []chatMessage{
			{Role: "user", Content: fmt.Sprintf(suggestionPrompt, req.WeeklyReflection, req.CurrentGoals)},
		},
	}
	var resp chatResponse
	if err := c.post(ctx, "/chat/completions", body, &resp); err != nil {
		return Suggestion{}, err
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return Suggestion{}, ErrEmptyResponse
	}
	return Suggestion{SuggestedAdjustments: strings.TrimSpace(resp.Choices[0].Message.Content)}, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	if c.apiKey == "" {
		return ErrNotConfigured
	}
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("ai: http request failed: %w", err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		msg := string(respBody)
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			msg = apiErr.Error.Message
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
