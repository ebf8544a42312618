package models

// Submitted answer payloads, one shape per item type. The session handler
// decodes the raw response into the shape matching the item before grading;
// the raw JSON is what gets stored on the attempt row.

type SingleChoiceAnswer struct {
	Selected string `json:"selected"`
}

type MultiChoiceAnswer struct {
	Selected []string `json:"selected"`
}

type TrueFalseAnswer struct {
	Answer bool `json:"answer"`
}

type FillBlankAnswer struct {
	Text string `json:"text"`
}

type OrderingAnswer struct {
	Order []string `json:"order"` // steps in the submitted order
}

type MatchingAnswer struct {
	Pairs map[string]string `json:"pairs"` // left -> chosen right
}

type FreeTextAnswer struct {
	Text string `json:"text"`
}

// GradeResult is what grading an answer yields: a continuous score in [0,1]
// and the boolean reduction stored on the attempt.
type GradeResult struct {
	Score       float64 `json:"score"`
	Correct     bool    `json:"correct"`
	Explanation string  `json:"explanation,omitempty"`
	Rubric      string  `json:"rubric,omitempty"`
}
