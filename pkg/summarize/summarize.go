// Package summarize sends the accumulated tasks to the Anthropic Messages
// API and returns the model's analysis.
package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/harrisonrobin/agenda/pkg/model"
)

const (
	defaultBaseURL = "https://api.anthropic.com/v1/messages"
	apiVersion     = "2023-06-01"
	maxTokens      = 1500
)

// DefaultModel is used when the config file does not name one.
const DefaultModel = "claude-sonnet-4-20250514"

// DefaultPrompt is the instruction used when the summarize form leaves the
// prompt field empty.
const DefaultPrompt = "Analyze these tasks and provide: 1) Key priorities 2) Potential bottlenecks 3) Recommended focus areas 4) Time management suggestions"

// ErrNoTasks short-circuits a summarize request before any external call.
// Its text is rendered verbatim in the error fragment.
var ErrNoTasks = errors.New("No tasks available to summarize")

// Client calls the Anthropic Messages API. One request per summary, no
// retries: a failure is reported to the user exactly once.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// WithBaseURL points the client at a different endpoint. Used by tests.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = url
	return c
}

type request struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type response struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Summarize serializes the tasks under the instruction into one user message
// and returns the first content block's text verbatim.
func (c *Client) Summarize(ctx context.Context, tasks []model.Task, prompt string) (string, error) {
	if len(tasks) == 0 {
		return "", ErrNoTasks
	}
	if c.apiKey == "" {
		return "", fmt.Errorf("ANTHROPIC_API_KEY not set")
	}
	if prompt == "" {
		prompt = DefaultPrompt
	}

	body, err := json.Marshal(request{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages: []message{
			{Role: "user", Content: buildMessage(tasks, prompt)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", apiVersion)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("anthropic API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var apiResp response
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(apiResp.Content) == 0 {
		return "", fmt.Errorf("empty response content")
	}
	return apiResp.Content[0].Text, nil
}

// buildMessage renders each task as one bullet line under the instruction.
func buildMessage(tasks []model.Task, prompt string) string {
	var sb strings.Builder
	sb.WriteString(prompt)
	sb.WriteString("\n\nTasks:\n")
	for _, t := range tasks {
		assignees := "None"
		if len(t.Assignees) > 0 {
			assignees = strings.Join(t.Assignees, ", ")
		}
		fmt.Fprintf(&sb, "- %s (Due: %s, Status: %s, Source: %s, Assignees: %s)\n",
			t.Title, t.DueDisplay(), t.Status, t.Source, assignees)
	}
	return sb.String()
}
