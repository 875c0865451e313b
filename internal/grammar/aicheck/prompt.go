package aicheck

import (
	_ "embed"
	"strings"

	"grammar-backend/internal/llm"
)

var (
	//go:embed prompts/system.txt
	systemPrompt string
	//go:embed prompts/check_v1.txt
	checkPromptV1 string
)

// BuildMessages returns the system persona and the user prompt for text. The
// language label is used verbatim except that "en" reads as English.
func BuildMessages(text, language string) []llm.Message {
	label := language
	if language == "en" {
		label = "English"
	}
	user := strings.NewReplacer("{{LANGUAGE}}", label, "{{TEXT}}", text).Replace(checkPromptV1)
	return []llm.Message{
		{Role: llm.RoleSystem, Content: strings.TrimSpace(systemPrompt)},
		{Role: llm.RoleUser, Content: strings.TrimSpace(user)},
	}
}
