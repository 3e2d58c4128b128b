package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/homescribe/homescribe-engine/pkg/apperrors"
	"github.com/homescribe/homescribe-engine/pkg/models"
)

// extractionResponse mirrors the JSON object the model is asked to produce.
// Pointer fields distinguish an item the model scored 0 from an item it
// omitted entirely; omitted items are defaulted and reported as degraded.
type extractionResponse struct {
	M1800      *int   `json:"M1800"`
	M1810      *int   `json:"M1810"`
	M1820      *int   `json:"M1820"`
	M1830      *int   `json:"M1830"`
	M1840      *int   `json:"M1840"`
	M1845      *int   `json:"M1845"`
	M1850      *int   `json:"M1850"`
	M1860      *int   `json:"M1860"`
	Confidence string `json:"confidence"`
	Notes      string `json:"notes"`
}

// sliceJSON cuts the raw model output down to the span between the first '{'
// and the last '}', tolerating models that wrap the JSON object in prose.
func sliceJSON(raw string) (string, error) {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("%w: no JSON object in model output", apperrors.ErrExtractionParseFailed)
	}
	return raw[start : end+1], nil
}

// parseAssessment parses the model output into an OasisAssessment.
// A malformed response is a hard error. Absent or null items degrade to 0
// with a logged warning; confidence and notes get fixed defaults when absent.
func parseAssessment(raw string, logger *zap.Logger) (*models.OasisAssessment, error) {
	jsonStr, err := sliceJSON(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}

	var resp extractionResponse
	if err := json.Unmarshal([]byte(jsonStr), &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExtractionParseFailed, err)
	}

	assessment := &models.OasisAssessment{
		Confidence: resp.Confidence,
		Notes:      resp.Notes,
	}
	if assessment.Confidence == "" {
		assessment.Confidence = models.ConfidenceMedium
	}
	if assessment.Notes == "" {
		assessment.Notes = models.DefaultAssessmentNotes
	}

	items := map[string]struct {
		value *int
		dst   *int
	}{
		"M1800": {resp.M1800, &assessment.M1800},
		"M1810": {resp.M1810, &assessment.M1810},
		"M1820": {resp.M1820, &assessment.M1820},
		"M1830": {resp.M1830, &assessment.M1830},
		"M1840": {resp.M1840, &assessment.M1840},
		"M1845": {resp.M1845, &assessment.M1845},
		"M1850": {resp.M1850, &assessment.M1850},
		"M1860": {resp.M1860, &assessment.M1860},
	}

	// All eight items go through the same defaulting path so a zero that
	// came from an omission is always distinguishable via DegradedFields.
	for _, item := range models.OasisItems {
		entry := items[item]
		if entry.value == nil {
			logger.Warn("Assessment item missing from model output, using default 0",
				zap.String("item", item))
			assessment.DegradedFields = append(assessment.DegradedFields, item)
			continue
		}
		*entry.dst = *entry.value
	}

	return assessment, nil
}
