package genmeta

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
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o"
	requestTimeout = 60 * time.Second
)

const systemPrompt = "You are a specialized assistant that generates YAML front matter " +
	"for markdown vault notes. You strictly follow the conventions provided and output " +
	"only the requested YAML content, without the triple-dash markers."

// Client calls an OpenAI-compatible chat completion endpoint to generate
// front matter. It implements Generator.
type Client struct {
	// BaseURL overrides the API base, e.g. for a local compatible server.
	BaseURL string

	// Model names the chat model; defaults to gpt-4o.
	Model string

	// APIKey is sent as a bearer token.
	APIKey string

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate implements Generator over the chat completion API. Any transport
// or shape failure is returned to the caller, which substitutes the local
// fallback block.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := c.Model
	if model == "" {
		model = defaultModel
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}

	body, err := json.Marshal(chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(req)},
		},
		Temperature: 0.2,
		MaxTokens:   600,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimSuffix(baseURL, "/")+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call generator: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("generator returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("generator returned no choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("generator returned empty content")
	}
	return content, nil
}

func buildPrompt(req Request) string {
	folders := "Root directory"
	if len(req.Folders) > 0 {
		folders = strings.Join(req.Folders, ", ")
	}

	var b strings.Builder
	b.WriteString("Analyze the following markdown note and generate front matter ")
	b.WriteString("consistent with the provided rules.\n\n")
	fmt.Fprintf(&b, "NOTE INFORMATION:\nFilename: %s\nLocated in: %s\nFolder structure: %s\n\n",
		req.FileName, req.RelPath, folders)
	fmt.Fprintf(&b, "EXISTING FRONT MATTER (if any):\n%s\n\n", req.ExistingFrontMatter)
	fmt.Fprintf(&b, "RULES:\n%s\n\n", req.Rules)
	fmt.Fprintf(&b, "NOTE CONTENT:\n%s\n\n", req.ContentSummary)
	b.WriteString("TASK:\nGenerate front matter for this note following the rules exactly. ")
	b.WriteString("Update existing front matter when present, create new otherwise. ")
	b.WriteString("Output only the YAML content, without the triple-dash markers.")
	return b.String()
}
