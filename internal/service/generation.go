package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/chattermate/chattermate-backend/internal/config"
)

// Generator is the text-generation collaborator: prompt in, text out.
// Calls have variable latency and are fallible; no streaming.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// OpenAIGenerator calls an OpenAI-format /chat/completions endpoint.
type OpenAIGenerator struct {
	baseURL    string
	apiKey     string
	model      string
	maxTokens  int
	httpClient *http.Client
}

// NewOpenAIGenerator creates a Generator from the generation config.
func NewOpenAIGenerator(cfg config.GenerationConfig) *OpenAIGenerator {
	return &OpenAIGenerator{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		httpClient: &http.Client{
			Timeout: cfg.Timeout() + 5*time.Second,
		},
	}
}

// Generate sends the prompt and returns the first choice's text.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"model":      g.model,
		"max_tokens": g.maxTokens,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := g.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading generation response failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation API error (%d): %s", resp.StatusCode, truncateStr(string(respBody), 200))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("parsing generation response failed: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("generation response contained no text")
	}
	// Trim before the emptiness check; a whitespace-only completion is
	// as useless as a missing one and must not become a message body.
	reply := strings.TrimSpace(result.Choices[0].Message.Content)
	if reply == "" {
		return "", fmt.Errorf("generation response contained no text")
	}

	return reply, nil
}

// truncateStr truncates a string to maxLen bytes
func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
