// Package prompts builds the LLM prompts for visit-note summarization and
// OASIS Section G extraction.
package prompts

import (
	"fmt"
	"strings"

	"github.com/homescribe/homescribe-engine/pkg/models"
)

// SummarySystemPersona is the system role for summarization requests.
const SummarySystemPersona = "You are a medical assistant specialized in clinical documentation."

// ExtractionSystemPersona is the system role for extraction requests.
// The persona demands JSON-only output; the response format constraint on
// the request enforces it mechanically.
const ExtractionSystemPersona = "You are a specialist in OASIS assessments for Home Health Care. You respond ONLY with valid JSON, no additional text."

// oasisItemDescriptions documents each Section G item for the extraction prompt.
var oasisItemDescriptions = map[string]string{
	"M1800": "Grooming: ability to tend safely to personal hygiene needs",
	"M1810": "Ability to Dress Upper Body: dressing the upper body, including fasteners",
	"M1820": "Ability to Dress Lower Body: dressing the lower body, including shoes",
	"M1830": "Bathing: ability to wash entire body safely",
	"M1840": "Toilet Transferring: ability to get to and from the toilet",
	"M1845": "Toileting Hygiene: ability to manage toileting hygiene and clothing",
	"M1850": "Transferring: ability to move safely from bed to chair",
	"M1860": "Ambulation/Locomotion: ability to walk safely once standing",
}

// BuildSummaryPrompt creates the user prompt for transcript summarization.
func BuildSummaryPrompt(transcript string) string {
	var prompt strings.Builder

	prompt.WriteString("Summarize the following home health visit transcript as a concise clinical note. ")
	prompt.WriteString("Focus on the patient's functional status, observed limitations, assistance required, ")
	prompt.WriteString("and any changes since the previous visit. Use professional clinical language.\n\n")
	prompt.WriteString(transcript)

	return prompt.String()
}

// BuildExtractionPrompt creates the user prompt for OASIS Section G extraction.
// The expected response is a single JSON object with one integer per item,
// a confidence label and a free-text notes field.
func BuildExtractionPrompt(transcript string) string {
	var prompt strings.Builder

	prompt.WriteString("Extract the OASIS Section G functional assessment from the home health visit transcript below.\n\n")
	prompt.WriteString("Score each item as an integer where 0 means fully independent and the maximum means fully dependent:\n\n")

	for _, item := range models.OasisItems {
		prompt.WriteString(fmt.Sprintf("- %s (0-%d): %s\n", item, models.OasisItemMax[item], oasisItemDescriptions[item]))
	}

	prompt.WriteString("\nRespond with a single JSON object of this exact shape:\n")
	prompt.WriteString(`{"M1800": 0, "M1810": 0, "M1820": 0, "M1830": 0, "M1840": 0, "M1845": 0, "M1850": 0, "M1860": 0, "confidence": "high|medium|low", "notes": "brief explanation of the scores"}`)
	prompt.WriteString("\n\nSet confidence to how well the transcript supports the scores. Transcript:\n\n")
	prompt.WriteString(transcript)

	return prompt.String()
}
