package grammar

import "time"

// Request is one analysis invocation.
type Request struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	UserID   string `json:"userId,omitempty"`
}

// Replacement is a candidate fix. Order is the provider's ranking.
type Replacement struct {
	Value            string `json:"value"`
	ShortDescription string `json:"shortDescription,omitempty"`
}

// Category groups rules under a stable id and a display name.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Rule identifies what produced an error.
type Rule struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	IssueType   string   `json:"issueType"`
}

// ErrorType carries the folded type label.
type ErrorType struct {
	TypeName string `json:"typeName"`
}

// Error is one detected issue in the canonical shape shared by every provider.
// Offset and Length are measured in UTF-16 code units of the input text.
type Error struct {
	Message      string        `json:"message"`
	ShortMessage string        `json:"shortMessage"`
	Offset       int           `json:"offset"`
	Length       int           `json:"length"`
	Replacements []Replacement `json:"replacements"`
	Rule         Rule          `json:"rule"`
	Sentence     string        `json:"sentence"`
	Type         ErrorType     `json:"type"`
}

// Result is what an analysis returns to the caller.
type Result struct {
	Errors         []Error `json:"errors"`
	TotalErrors    int     `json:"totalErrors"`
	Language       string  `json:"language"`
	ProcessingTime int64   `json:"processingTime"`
	TextLength     int     `json:"textLength"`
}

// NewResult builds a Result, keeping TotalErrors in step with Errors.
func NewResult(errs []Error, language string, processingTime int64, textLength int) Result {
	if errs == nil {
		errs = []Error{}
	}
	return Result{
		Errors:         errs,
		TotalErrors:    len(errs),
		Language:       language,
		ProcessingTime: processingTime,
		TextLength:     textLength,
	}
}

// Record is a persisted analysis. Records are written once and never updated.
type Record struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId,omitempty"`
	Text           string    `json:"text"`
	Language       string    `json:"language"`
	Provider       string    `json:"provider"`
	TotalErrors    int       `json:"totalErrors"`
	ProcessingTime int64     `json:"processingTime"`
	TextLength     int       `json:"textLength"`
	Errors         []Error   `json:"errors"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CategoryCount is one row of the most-common-errors ranking.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Summary is derived on every analytics query and never stored.
type Summary struct {
	TotalAnalyses         int             `json:"totalAnalyses"`
	AverageErrors         float64         `json:"averageErrors"`
	AverageProcessingTime int64           `json:"averageProcessingTime"`
	MostCommonErrors      []CategoryCount `json:"mostCommonErrors"`
}
