// Package assist is the browser's hook into an external AI collaborator.
// Without an API key every operation answers locally with placeholder text;
// with one, requests go to an OpenAI-compatible chat endpoint.
package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dinghy-browser/dinghy/internal/browser"
)

const (
	// DefaultEndpoint is the public inference endpoint used when the config
	// names none.
	DefaultEndpoint = "https://api.openai.com/v1/chat/completions"
	// DefaultModel is the model requested when the config names none.
	DefaultModel = "gpt-4o-mini"

	requestTimeout = 30 * time.Second
	maxContentLen  = 4000    // characters of page text sent per request
	maxResponse    = 1 << 20 // 1 MB
)

// Config carries the assistant's connection settings, passed at construction.
// The zero value is a valid unconfigured assistant.
type Config struct {
	APIKey   string // empty keeps every call local
	Endpoint string
	Model    string
}

// Suggestion is what the assistant hands back: a short suggestion and an
// optional explanation, empty when absent.
type Suggestion struct {
	Text        string
	Explanation string
}

// Assistant answers page-analysis and next-action requests.
type Assistant struct {
	cfg    Config
	client *http.Client
}

// New creates an Assistant, filling config defaults and reusing the browser's
// shared transport.
func New(cfg Config) *Assistant {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &Assistant{
		cfg: cfg,
		client: &http.Client{
			Transport: browser.SharedTransport,
			Timeout:   requestTimeout,
		},
	}
}

// Configured reports whether an API key is present.
func (a *Assistant) Configured() bool {
	return a.cfg.APIKey != ""
}

// ProcessPage asks for an assessment of the page at pageURL. content is the
// page's extracted text and is truncated before sending. Unconfigured, the
// response is a static placeholder and the call never fails.
func (a *Assistant) ProcessPage(ctx context.Context, pageURL, content string) (*Suggestion, error) {
	if !a.Configured() {
		return &Suggestion{
			Text:        fmt.Sprintf("Analyzing page: %s", pageURL),
			Explanation: "AI assistant is ready to help you navigate this page.",
		}, nil
	}

	if len(content) > maxContentLen {
		content = content[:maxContentLen]
	}
	prompt := fmt.Sprintf("Summarize this page (%s) in two sentences and suggest what to read next:\n\n%s", pageURL, content)
	return a.complete(ctx, prompt)
}

// SuggestAction asks for a next step given a free-form prompt. Unconfigured,
// the response is a static placeholder and the call never fails.
func (a *Assistant) SuggestAction(ctx context.Context, prompt string) (*Suggestion, error) {
	if !a.Configured() {
		return &Suggestion{Text: "AI suggestion feature coming soon"}, nil
	}
	return a.complete(ctx, prompt)
}

// chatRequest and chatResponse mirror the OpenAI-compatible wire format.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (a *Assistant) complete(ctx context.Context, prompt string) (*Suggestion, error) {
	payload, err := json.Marshal(chatRequest{
		Model: a.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a browsing assistant inside a terminal web browser. Answer in at most three short sentences."},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.cfg.APIKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("assist request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponse))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return nil, fmt.Errorf("assist request failed: %s", parsed.Error.Message)
		}
		return nil, fmt.Errorf("assist request failed: status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("assist request failed: no choices in response")
	}

	// First line becomes the suggestion, the remainder the explanation.
	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	sug := &Suggestion{Text: text}
	if line, rest, found := strings.Cut(text, "\n"); found {
		sug.Text = strings.TrimSpace(line)
		sug.Explanation = strings.TrimSpace(rest)
	}
	return sug, nil
}
