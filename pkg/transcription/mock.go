package transcription

import (
	"context"
	"io"
)

// MockTranscriber is a configurable mock for testing transcription consumers.
// Set the function fields to control behavior in tests.
type MockTranscriber struct {
	// TranscribeFunc is called when Transcribe is invoked.
	// If nil, returns empty string and nil error.
	TranscribeFunc func(ctx context.Context, audio io.Reader, filename string) (string, error)

	// Healthy is returned by HealthCheck.
	Healthy bool

	// Call tracking for verification
	TranscribeCalls int
}

// Transcribe implements Transcriber.
func (m *MockTranscriber) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	m.TranscribeCalls++
	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, audio, filename)
	}
	return "", nil
}

// HealthCheck implements Transcriber.
func (m *MockTranscriber) HealthCheck(ctx context.Context) bool {
	return m.Healthy
}

var _ Transcriber = (*MockTranscriber)(nil)
