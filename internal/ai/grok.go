package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go-applyninja-automation/internal/models"
)

const grokURL = "https://api.groq.com/openai/v1/chat/completions"

type grokClient struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGrokClient creates a Groq chat-completions client
func NewGrokClient(apiKey string) Client {
	return &grokClient{
		apiKey:     apiKey,
		model:      "llama-3.3-70b-versatile", // Using Groq's super fast Llama-3 model
		httpClient: &http.Client{},
	}
}

type grokMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type grokRequest struct {
	Model       string        `json:"model"`
	Messages    []grokMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type grokResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// chat sends one completion request and returns the raw assistant content
func (c *grokClient) chat(ctx context.Context, messages []grokMessage, maxTokens int) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("missing groq api key")
	}

	reqBody := grokRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0, // Deterministic output (better for form answers)
		MaxTokens:   maxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal grok request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", grokURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create http request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("grok API returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var grokResp grokResponse
	if err := json.Unmarshal(bodyBytes, &grokResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if grokResp.Error != nil {
		return "", fmt.Errorf("API error: %s", grokResp.Error.Message)
	}

	if len(grokResp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from grok API")
	}

	return grokResp.Choices[0].Message.Content, nil
}

// ExtractProfile sends the resume text to Grok and parses the structured reply
func (c *grokClient) ExtractProfile(ctx context.Context, resumeText string) (*models.CandidateProfile, error) {
	content, err := c.chat(ctx, []grokMessage{
		{Role: "system", Content: buildExtractionPrompt()},
		{Role: "user", Content: "Here is the resume text:\n\n" + resumeText},
	}, 500)
	if err != nil {
		return nil, err
	}

	// Clean the response from potential markdown wrappers
	cleanedJSON := cleanMarkdownJSON(content)

	var profile models.CandidateProfile
	if err := json.Unmarshal([]byte(cleanedJSON), &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal AI response to CandidateProfile (raw length: %d): %w", len(cleanedJSON), err)
	}

	return &profile, nil
}

func (c *grokClient) AnswerQuestion(ctx context.Context, question string, profile *models.CandidateProfile, priorError string) (string, error) {
	content, err := c.chat(ctx, []grokMessage{
		{Role: "user", Content: buildAnswerPrompt(question, profile, priorError)},
	}, 50)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

func (c *grokClient) ChooseOption(ctx context.Context, question string, options []string, profile *models.CandidateProfile) (string, error) {
	content, err := c.chat(ctx, []grokMessage{
		{Role: "user", Content: buildChoicePrompt(question, options, profile)},
	}, 50)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

// cleanMarkdownJSON removes backticks and "json" prefix if the AI model tries to be helpful
func cleanMarkdownJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}
