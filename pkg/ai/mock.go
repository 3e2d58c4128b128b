package ai

import (
	"context"

	"github.com/homescribe/homescribe-engine/pkg/models"
)

// MockExtractionClient is a configurable mock for testing LLM consumers.
// Set the function fields to control behavior in tests.
type MockExtractionClient struct {
	// SummarizeFunc is called when Summarize is invoked.
	// If nil, returns empty string and nil error.
	SummarizeFunc func(ctx context.Context, transcript string) (string, error)

	// ExtractAssessmentFunc is called when ExtractAssessment is invoked.
	// If nil, returns an empty assessment and nil error.
	ExtractAssessmentFunc func(ctx context.Context, transcript string) (*models.OasisAssessment, error)

	// ListModelsFunc is called when ListModels is invoked.
	// If nil, returns nil slice and nil error.
	ListModelsFunc func(ctx context.Context) ([]string, error)

	// Model is returned by GetModel. Defaults to "mock-model".
	Model string

	// Call tracking for verification
	SummarizeCalls         int
	ExtractAssessmentCalls int
	ListModelsCalls        int
}

// Summarize implements ExtractionClient.
func (m *MockExtractionClient) Summarize(ctx context.Context, transcript string) (string, error) {
	m.SummarizeCalls++
	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, transcript)
	}
	return "", nil
}

// ExtractAssessment implements ExtractionClient.
func (m *MockExtractionClient) ExtractAssessment(ctx context.Context, transcript string) (*models.OasisAssessment, error) {
	m.ExtractAssessmentCalls++
	if m.ExtractAssessmentFunc != nil {
		return m.ExtractAssessmentFunc(ctx, transcript)
	}
	return &models.OasisAssessment{}, nil
}

// ListModels implements ExtractionClient.
func (m *MockExtractionClient) ListModels(ctx context.Context) ([]string, error) {
	m.ListModelsCalls++
	if m.ListModelsFunc != nil {
		return m.ListModelsFunc(ctx)
	}
	return nil, nil
}

// GetModel implements ExtractionClient.
func (m *MockExtractionClient) GetModel() string {
	if m.Model == "" {
		return "mock-model"
	}
	return m.Model
}

var _ ExtractionClient = (*MockExtractionClient)(nil)
