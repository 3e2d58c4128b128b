// Package transcription provides a client for the Whisper ASR web service.
package transcription

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/homescribe/homescribe-engine/pkg/apperrors"
)

// Transcriber converts an audio stream into recognized text.
// Use this interface for dependency injection to enable mocking in tests.
type Transcriber interface {
	// Transcribe sends the audio stream to the ASR service and returns the
	// recognized text with leading/trailing whitespace trimmed.
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)

	// HealthCheck reports whether the ASR service is reachable.
	HealthCheck(ctx context.Context) bool
}

// Config holds configuration for creating a transcription client.
type Config struct {
	BaseURL        string        // e.g. "http://localhost:9010"
	RequestTimeout time.Duration // Per-request timeout; zero means DefaultTimeout
}

// DefaultTimeout bounds a single transcription request. Audio transcription
// is slow relative to other upstream calls, so the default is generous.
const DefaultTimeout = 120 * time.Second

// Client calls a Whisper ASR web service over HTTP.
// One attempt per call, no retries: any failure is surfaced immediately as a
// typed error so the caller can decide what to persist.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient creates a new Whisper ASR client.
func NewClient(cfg *Config, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		logger:     logger.Named("transcription"),
	}, nil
}

// Transcribe posts the audio stream to the ASR endpoint and returns the
// plain-text transcript. The service is asked for an English plain-text
// transcription; the response body is the transcript itself.
func (c *Client) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("audio_file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, audio); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	endpoint := c.baseURL + "/asr?encode=true&task=transcribe&language=en&output=txt"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, pr)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	c.logger.Debug("Transcription request", zap.String("filename", filename))
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Transcription request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", fmt.Errorf("%w: %v", apperrors.ErrTranscriptionFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", apperrors.ErrTranscriptionFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("Transcription service returned error",
			zap.Int("status", resp.StatusCode),
			zap.String("body", snippet(body)))
		return "", fmt.Errorf("%w: whisper returned HTTP %d: %s",
			apperrors.ErrTranscriptionFailed, resp.StatusCode, snippet(body))
	}

	c.logger.Info("Transcription completed",
		zap.Int("transcript_len", len(body)),
		zap.Duration("elapsed", time.Since(start)))

	return strings.TrimSpace(string(body)), nil
}

// HealthCheck probes the service's docs page, which the Whisper ASR web
// service serves without side effects.
func (c *Client) HealthCheck(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/docs", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Whisper health check failed", zap.Error(err))
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode == http.StatusOK
}

// snippet truncates an upstream response body for error messages and logs.
func snippet(body []byte) string {
	const max = 200
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

// Ensure Client implements Transcriber at compile time.
var _ Transcriber = (*Client)(nil)
