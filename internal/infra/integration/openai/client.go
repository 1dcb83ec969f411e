package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tradestack/tradestack-api/internal/infra/textgen"
)

const defaultModel = "gpt-4o-mini"

// Client is the secondary text-generation provider, attempted first only
// when a caller prefers it.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		baseURL: "https://api.openai.com/v1",
		apiKey:  apiKey,
		model:   defaultModel,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

func (c *Client) Name() string { return "openai" }

func (c *Client) Available() bool { return c.apiKey != "" }

func (c *Client) Generate(ctx context.Context, system, prompt string, opts textgen.Options) (string, error) {
	payload := chatRequest{Model: c.model, Temperature: opts.Temperature, MaxTokens: opts.MaxOutputTokens}
	if system != "" {
		payload.Messages = append(payload.Messages, chatMessage{Role: "system", Content: system})
	}
	payload.Messages = append(payload.Messages, chatMessage{Role: "user", Content: prompt})

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &textgen.ProviderError{Provider: c.Name(), Err: err}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != 200 {
		return "", &textgen.ProviderError{
			Provider: c.Name(),
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody)),
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &textgen.ProviderError{Provider: c.Name(), Err: err}
	}

	if len(parsed.Choices) == 0 {
		return "", textgen.ErrEmptyResponse
	}
	return parsed.Choices[0].Message.Content, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}
