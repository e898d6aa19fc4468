// Package llm contains the outbound adapter for the external chat-completion
// endpoint used for workout plan generation. The API key lives server-side
// only; it is never exposed to clients.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	apperrors "github.com/htmw/2025Su-ByteSquad/pkg/errors"
)

// Completion parameters are fixed by contract: one user-role message,
// moderate creativity, bounded output length.
const (
	Temperature = 0.7
	MaxTokens   = 2000
)

// HTTPDoer is the interface for executing HTTP requests. Both
// httpclient.Client and httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Completer requests a single text completion for a prompt.
type Completer interface {
	// Complete sends the prompt as one user message and returns the raw
	// completion text. One attempt only; failures surface to the caller.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client calls an OpenAI-compatible chat-completion endpoint.
type Client struct {
	client HTTPDoer
	url    string
	apiKey string
	model  string
}

// NewClient creates a chat-completion client. url is the full completions
// endpoint, model is the fixed model identifier.
func NewClient(client HTTPDoer, url, apiKey, model string) *Client {
	return &Client{
		client: client,
		url:    url,
		apiKey: apiKey,
		model:  model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends a single-user-message chat completion request and returns
// the text content of the first choice.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(ctx, req)
	if err != nil {
		return "", apperrors.ServiceUnavailable("completion endpoint unreachable: " + err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", apperrors.BadGateway(fmt.Sprintf("completion endpoint returned undecodable response (status %d)", resp.StatusCode))
	}

	if decoded.Error != nil && decoded.Error.Message != "" {
		return "", apperrors.BadGateway("completion endpoint error: " + decoded.Error.Message)
	}
	if resp.StatusCode >= 400 {
		return "", apperrors.BadGateway(fmt.Sprintf("completion endpoint returned status %d", resp.StatusCode))
	}
	if len(decoded.Choices) == 0 {
		return "", apperrors.BadGateway("completion endpoint returned no choices")
	}

	return decoded.Choices[0].Message.Content, nil
}
