// Package ai provides the OpenAI-compatible LLM client used for transcript
// summarization and OASIS Section G extraction.
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/homescribe/homescribe-engine/pkg/models"
	"github.com/homescribe/homescribe-engine/pkg/prompts"
)

// ExtractionClient defines the LLM operations the note pipeline depends on.
// Use this interface for dependency injection to enable mocking in tests.
type ExtractionClient interface {
	// Summarize produces a clinical summary of the visit transcript.
	Summarize(ctx context.Context, transcript string) (string, error)

	// ExtractAssessment extracts the OASIS Section G assessment from the
	// visit transcript.
	ExtractAssessment(ctx context.Context, transcript string) (*models.OasisAssessment, error)

	// ListModels returns the model names available at the endpoint.
	ListModels(ctx context.Context) ([]string, error)

	// GetModel returns the configured model name.
	GetModel() string
}

// Config holds configuration for creating an LLM client.
type Config struct {
	Endpoint       string        // Base URL, e.g. "http://localhost:11434/v1"
	Model          string        // Model name, e.g. "llama3.1"
	APIKey         string        // Optional for local endpoints
	RequestTimeout time.Duration // Per-request timeout; zero means DefaultTimeout

	SummaryTemperature    float64
	SummaryMaxTokens      int
	ExtractionTemperature float64
	ExtractionMaxTokens   int
}

// DefaultTimeout bounds a single completion request.
const DefaultTimeout = 60 * time.Second

// Client provides access to an OpenAI-compatible chat-completion endpoint.
type Client struct {
	client  *openai.Client
	cfg     Config
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient creates a new OpenAI-compatible LLM client.
func NewClient(cfg *Config, logger *zap.Logger) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimSuffix(cfg.Endpoint, "/")

	return &Client{
		client:  openai.NewClientWithConfig(clientConfig),
		cfg:     *cfg,
		timeout: timeout,
		logger:  logger.Named("ai"),
	}, nil
}

// Summarize generates a clinical summary of the transcript.
// Returns the trimmed summary text or an error; no retries.
func (c *Client) Summarize(ctx context.Context, transcript string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.logger.Debug("Summary request",
		zap.String("model", c.cfg.Model),
		zap.Int("transcript_len", len(transcript)))

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompts.SummarySystemPersona},
			{Role: openai.ChatMessageRoleUser, Content: prompts.BuildSummaryPrompt(transcript)},
		},
		Temperature: float32(c.cfg.SummaryTemperature),
		MaxTokens:   c.cfg.SummaryMaxTokens,
	})
	if err != nil {
		c.logger.Error("Summary request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", fmt.Errorf("generate summary: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("generate summary: no choices in response")
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)

	c.logger.Info("Summary generated",
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("elapsed", time.Since(start)))

	return summary, nil
}

// ExtractAssessment extracts the OASIS Section G assessment from the
// transcript. The request constrains the response format to JSON; the raw
// content is additionally sliced to its outermost braces to tolerate models
// that wrap JSON in prose. A response that still fails to parse is a hard
// error; absent item fields degrade to 0 and are recorded in the
// assessment's DegradedFields.
func (c *Client) ExtractAssessment(ctx context.Context, transcript string) (*models.OasisAssessment, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.logger.Debug("Extraction request",
		zap.String("model", c.cfg.Model),
		zap.Int("transcript_len", len(transcript)))

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompts.ExtractionSystemPersona},
			{Role: openai.ChatMessageRoleUser, Content: prompts.BuildExtractionPrompt(transcript)},
		},
		Temperature: float32(c.cfg.ExtractionTemperature),
		MaxTokens:   c.cfg.ExtractionMaxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		c.logger.Error("Extraction request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, fmt.Errorf("extract assessment: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("extract assessment: no choices in response")
	}

	assessment, err := parseAssessment(resp.Choices[0].Message.Content, c.logger)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Assessment extracted",
		zap.String("confidence", assessment.Confidence),
		zap.Strings("degraded_fields", assessment.DegradedFields),
		zap.Duration("elapsed", time.Since(start)))

	return assessment, nil
}

// ListModels returns the model names available at the endpoint.
// Also used as the LLM reachability probe by the health endpoint.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}

	names := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		names = append(names, m.ID)
	}
	return names, nil
}

// GetModel returns the configured model name.
func (c *Client) GetModel() string {
	return c.cfg.Model
}

// Ensure Client implements ExtractionClient at compile time.
var _ ExtractionClient = (*Client)(nil)
