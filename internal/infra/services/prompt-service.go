package services

import (
	"fmt"
	"strings"
	"techbot/internal/domain/entities"
)

const NoHistoryMarker = "No User History"

const promptInstructionsTail = `Instructions:
- First element of "answer" = summary paragraph.
- Bullet points start with "• ".
- Each element must not exceed 50 words.
- Include 1-3 short actionable "future_actions" only when there is a true next step.
- Do NOT use "future_actions" to ask the user for information.
- If confidential info is requested, respond: "I'm sorry, I cannot share sensitive information."`

// PromptService renders conversation history and retrieved documents into
// the final prompt. Base instructions come from configuration so tone and
// policy can change without redeploying the pipeline.
type PromptService struct {
	BaseInstructions string
}

func NewPromptService(baseInstructions string) *PromptService {
	return &PromptService{BaseInstructions: baseInstructions}
}

// BuildHistory serializes the last `window` messages as "role: content"
// lines, newest last.
func (ps *PromptService) BuildHistory(chat entities.BotChat, window int) string {
	messages := chat.LastMessages(window)
	if len(messages) == 0 {
		return NoHistoryMarker
	}

	var sb strings.Builder
	for i, message := range messages {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(message.Role)
		sb.WriteString(": ")
		sb.WriteString(strings.Join(message.Content, " "))
	}
	return sb.String()
}

// BuildContext renders filtered retrieval results as enumerated blocks in
// rank order. Empty input yields an empty block.
func (ps *PromptService) BuildContext(results []entities.RetrievalResult) string {
	if len(results) == 0 {
		return ""
	}

	blocks := make([]string, len(results))
	for i, result := range results {
		blocks[i] = fmt.Sprintf("Doc%d: %s", i+1, result.Content)
	}
	return strings.Join(blocks, "\n\n")
}

// BuildPrompt selects the with-context or without-context template based
// on whether any documents survived filtering.
func (ps *PromptService) BuildPrompt(historyBlock string, contextBlock string, query string) string {
	if contextBlock == "" {
		return fmt.Sprintf("%s\n\nCustomer Question: %s\n\n%s", ps.BaseInstructions, query, promptInstructionsTail)
	}

	return fmt.Sprintf("%s\n\nHistory:\n%s\n\nContext:\n%s\n\nCustomer Question: %s\n\n%s",
		ps.BaseInstructions, historyBlock, contextBlock, query, promptInstructionsTail)
}
