// Package llm talks to a local Ollama server.
package llm

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

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type chatResponse struct {
	Message Message `json:"message"`
	Error   string  `json:"error,omitempty"`
}

// Client calls the Ollama /api/chat endpoint without streaming.
type Client struct {
	host   string
	model  string
	system string
	http   *http.Client
}

// NewClient creates a Client. A zero timeout means no client-side timeout.
func NewClient(host, model, system string, timeout time.Duration) *Client {
	return &Client{
		host:   strings.TrimRight(host, "/"),
		model:  model,
		system: system,
		http:   &http.Client{Timeout: timeout},
	}
}

// Model returns the model name sent with every request.
func (c *Client) Model() string { return c.model }

// Complete sends prompt with the client's default system message.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	return c.Chat(ctx, c.system, prompt)
}

// Chat sends a system and a user message and returns the assistant reply.
func (c *Client) Chat(ctx context.Context, system, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("llm: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("llm: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm: calling %s: %w", c.host, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("llm: reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("llm: %s: %s", resp.Status, strings.TrimSpace(string(data)))
	}

	var out chatResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("llm: decoding response: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("llm: %s", out.Error)
	}
	return out.Message.Content, nil
}
