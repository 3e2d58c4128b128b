package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/homescribe/homescribe-engine/pkg/models"
)

func TestBuildSummaryPrompt_IncludesTranscript(t *testing.T) {
	prompt := BuildSummaryPrompt("the patient transcript")
	assert.Contains(t, prompt, "the patient transcript")
	assert.Contains(t, prompt, "functional status")
}

func TestBuildExtractionPrompt_CoversAllItems(t *testing.T) {
	prompt := BuildExtractionPrompt("the patient transcript")

	for _, item := range models.OasisItems {
		assert.Contains(t, prompt, item)
	}
	assert.Contains(t, prompt, "the patient transcript")
	// Scoring ranges come from the item definitions, not hardcoded prose.
	assert.Contains(t, prompt, "M1830 (0-5)")
	assert.Contains(t, prompt, "M1800 (0-3)")
}
