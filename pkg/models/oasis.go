package models

// Confidence labels attached to an automatically extracted assessment.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// DefaultAssessmentNotes is used when the model omits the notes field.
const DefaultAssessmentNotes = "Assessment generated automatically"

// OasisItems lists the Section G item codes in document order.
var OasisItems = []string{"M1800", "M1810", "M1820", "M1830", "M1840", "M1845", "M1850", "M1860"}

// OasisItemMax maps each Section G item to its maximum ordinal score.
var OasisItemMax = map[string]int{
	"M1800": 3, // Grooming
	"M1810": 3, // Dress Upper Body
	"M1820": 3, // Dress Lower Body
	"M1830": 5, // Bathing
	"M1840": 4, // Toilet Transferring
	"M1845": 3, // Toileting Hygiene
	"M1850": 5, // Transferring
	"M1860": 5, // Ambulation/Locomotion
}

// OasisAssessment is the structured OASIS Section G functional assessment
// extracted from a visit transcript. Each item is an ordinal score from 0
// (independent) up to the item-specific maximum (fully dependent).
//
// DegradedFields names every item that was absent from the model output and
// substituted with 0, so downstream consumers can distinguish "model said 0"
// from "model omitted the field".
type OasisAssessment struct {
	M1800 int `json:"M1800"` // Grooming
	M1810 int `json:"M1810"` // Dress Upper Body
	M1820 int `json:"M1820"` // Dress Lower Body
	M1830 int `json:"M1830"` // Bathing
	M1840 int `json:"M1840"` // Toilet Transferring
	M1845 int `json:"M1845"` // Toileting Hygiene
	M1850 int `json:"M1850"` // Transferring
	M1860 int `json:"M1860"` // Ambulation/Locomotion

	Confidence     string   `json:"confidence"`
	Notes          string   `json:"notes"`
	DegradedFields []string `json:"degraded_fields,omitempty"`
}

// FallbackAssessment returns the assessment persisted when extraction fails
// outright: every item zero, low confidence, and all items marked degraded.
func FallbackAssessment() *OasisAssessment {
	degraded := make([]string, len(OasisItems))
	copy(degraded, OasisItems)
	return &OasisAssessment{
		Confidence:     ConfidenceLow,
		Notes:          "OASIS extraction failed, default values assigned",
		DegradedFields: degraded,
	}
}
