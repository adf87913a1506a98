package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	DefaultEndpoint    = "https://api.groq.com/openai/v1/chat/completions"
	DefaultModel       = "mixtral-8x7b-32768"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 256
)

const promptTemplate = `Based on the topic "%s", generate %d highly refined and semantically rich questions.
Ensure the questions:
1. Are detailed and specific to the topic.
2. Use terminology that reflects developer concerns or priorities related to the topic.
3. Emphasize actionable insights or solutions that developers can implement.
4. Are designed to cover different facets of the topic to ensure breadth and depth of coverage.`

type Settings struct {
	APIKey      string
	Endpoint    string
	Model       string
	Temperature float64
	MaxTokens   int
	HTTPClient  *http.Client
}

// Generator asks an OpenAI-compatible chat-completions backend to phrase one
// developer-facing question about a topic. The model runs at a nonzero
// temperature, so repeated calls for the same topic may differ.
type Generator struct {
	settings Settings
}

func NewGenerator(settings Settings) *Generator {
	if settings.Endpoint == "" {
		settings.Endpoint = DefaultEndpoint
	}
	if settings.Model == "" {
		settings.Model = DefaultModel
	}
	if settings.Temperature == 0 {
		settings.Temperature = DefaultTemperature
	}
	if settings.MaxTokens == 0 {
		settings.MaxTokens = DefaultMaxTokens
	}
	if settings.HTTPClient == nil {
		settings.HTTPClient = http.DefaultClient
	}
	return &Generator{settings: settings}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages    []chatMessage `json:"messages"`
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Question generates one concise question about topic and returns the first
// non-empty line of the completion.
func (g *Generator) Question(ctx context.Context, topic string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Messages:    []chatMessage{{Role: "user", Content: fmt.Sprintf(promptTemplate, topic, 1)}},
		Model:       g.settings.Model,
		Temperature: g.settings.Temperature,
		MaxTokens:   g.settings.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("insight: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.settings.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("insight: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.settings.APIKey)

	resp, err := g.settings.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("insight: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("insight: failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("insight: unexpected status %d: %s", resp.StatusCode, body)
	}

	var completion chatResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("insight: failed to decode response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("insight: completion contained no choices")
	}

	question := firstNonEmptyLine(completion.Choices[0].Message.Content)
	if question == "" {
		return "", fmt.Errorf("insight: completion was empty")
	}
	return question, nil
}

func firstNonEmptyLine(content string) string {
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
