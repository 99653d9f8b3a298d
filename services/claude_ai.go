package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"expense-api/models"
)

// AIClient is the language-model capability consumed by the expense core.
// Handlers and the insight generator depend on this interface so tests can
// substitute a fake instead of a live API.
type AIClient interface {
	// ExtractFields turns free-form expense text into a field suggestion.
	// A malformed model response degrades to defaults; only a failed
	// external call returns an error.
	ExtractFields(ctx context.Context, text string) (*models.ParsedExpense, error)

	// SummarizeInsights asks the model for short insights on a spending
	// summary and returns the non-empty response lines.
	SummarizeInsights(ctx context.Context, summary string) ([]string, error)
}

type ClaudeAIService struct {
	apiKey     string
	baseURL    string
	model      string
	maxTokens  int
	httpClient *http.Client
}

func NewClaudeAIService() *ClaudeAIService {
	baseURL := os.Getenv("ANTHROPIC_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}

	return &ClaudeAIService{
		apiKey:     os.Getenv("ANTHROPIC_API_KEY"),
		baseURL:    baseURL,
		model:      "claude-3-5-sonnet-latest",
		maxTokens:  1000,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	System    string          `json:"system,omitempty"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Model string `json:"model"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func (s *ClaudeAIService) ExtractFields(ctx context.Context, text string) (*models.ParsedExpense, error) {
	prompt := fmt.Sprintf(`Parse the following expense text into a JSON object with these fields:
- category (string, keep it short, e.g., 'Food', 'Transport', 'Utilities')
- description (string)
- amount (number, in CENTS. e.g., $10.00 is 1000)
- date (ISO 8601 string, assume current year if missing)

Respond with ONLY the JSON object, no other text.

Text: %q`, text)

	content, err := s.complete(ctx, claudeRequest{
		Model:     s.model,
		MaxTokens: s.maxTokens,
		Messages:  []claudeMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, err
	}

	suggestion := parseFieldSuggestion(content, text, time.Now())
	return &suggestion, nil
}

func (s *ClaudeAIService) SummarizeInsights(ctx context.Context, summary string) ([]string, error) {
	prompt := fmt.Sprintf("Analyze this expense summary and give 3 short, helpful insights or tips for the user. One insight per line, no preamble. Summary: %s", summary)

	content, err := s.complete(ctx, claudeRequest{
		Model:     s.model,
		MaxTokens: s.maxTokens,
		Messages:  []claudeMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, err
	}

	return splitInsights(content, 3), nil
}

func (s *ClaudeAIService) complete(ctx context.Context, requestBody claudeRequest) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("ANTHROPIC_API_KEY not set")
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		"POST",
		s.baseURL+"/v1/messages",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var claudeResp claudeResponse
	if err := json.Unmarshal(body, &claudeResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(claudeResp.Content) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	return claudeResp.Content[0].Text, nil
}

// rawSuggestion mirrors the JSON shape we ask the model for. Every field is
// optional: the model is not guaranteed to honor the schema.
type rawSuggestion struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Amount      *int64 `json:"amount"`
	Date        string `json:"date"`
}

// parseFieldSuggestion parses model output defensively. Missing or
// unparseable fields fall back to defaults; the suggestion never fails.
func parseFieldSuggestion(content, inputText string, now time.Time) models.ParsedExpense {
	suggestion := models.ParsedExpense{
		Category:    "Uncategorized",
		Description: inputText,
		Amount:      0,
		Date:        now,
		Source:      models.SourceAIParsed,
	}

	var raw rawSuggestion
	if err := json.Unmarshal([]byte(stripCodeFences(content)), &raw); err != nil {
		return suggestion
	}

	if raw.Category != "" {
		suggestion.Category = raw.Category
	}
	if raw.Description != "" {
		suggestion.Description = raw.Description
	}
	if raw.Amount != nil {
		suggestion.Amount = *raw.Amount
	}
	if raw.Date != "" {
		if parsed, err := parseDate(raw.Date); err == nil {
			suggestion.Date = parsed
		}
	}

	return suggestion
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", value)
}

// stripCodeFences removes markdown fences the model sometimes wraps JSON in.
func stripCodeFences(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.Trim(content, "`")
	return strings.TrimSpace(content)
}

// splitInsights keeps the first max non-empty lines of the model response.
func splitInsights(content string, max int) []string {
	insights := []string{}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		insights = append(insights, line)
		if len(insights) == max {
			break
		}
	}
	return insights
}
