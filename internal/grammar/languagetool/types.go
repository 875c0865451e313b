package languagetool

// Response is the provider-native body of a successful check.
type Response struct {
	Software Software  `json:"software"`
	Warnings *Warnings `json:"warnings,omitempty"`
	Language Language  `json:"language"`
	Matches  []Match   `json:"matches"`
}

type Software struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	BuildDate  string `json:"buildDate"`
	APIVersion int    `json:"apiVersion"`
	Premium    bool   `json:"premium"`
	Status     string `json:"status"`
}

// Warnings flags partial results.
type Warnings struct {
	IncompleteResults bool `json:"incompleteResults"`
}

type Language struct {
	Name             string            `json:"name"`
	Code             string            `json:"code"`
	DetectedLanguage *DetectedLanguage `json:"detectedLanguage,omitempty"`
}

type DetectedLanguage struct {
	Name       string  `json:"name"`
	Code       string  `json:"code"`
	Confidence float64 `json:"confidence"`
}

// Match is one finding. Offset and Length count UTF-16 code units.
type Match struct {
	Message      string        `json:"message"`
	ShortMessage string        `json:"shortMessage"`
	Offset       int           `json:"offset"`
	Length       int           `json:"length"`
	Replacements []Replacement `json:"replacements"`
	Context      Context       `json:"context"`
	Sentence     string        `json:"sentence"`
	Type         MatchType     `json:"type"`
	Rule         Rule          `json:"rule"`
}

type Replacement struct {
	Value            string `json:"value"`
	ShortDescription string `json:"shortDescription,omitempty"`
}

type Context struct {
	Text   string `json:"text"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
}

type MatchType struct {
	TypeName string `json:"typeName"`
}

type Rule struct {
	ID          string   `json:"id"`
	SubID       string   `json:"subId,omitempty"`
	Description string   `json:"description"`
	IssueType   string   `json:"issueType"`
	Category    Category `json:"category"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
