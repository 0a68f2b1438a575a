package Iservices

import (
	"techbot/internal/domain/entities"
)

type IPromptService interface {
	BuildHistory(chat entities.BotChat, window int) string
	BuildContext(results []entities.RetrievalResult) string
	BuildPrompt(historyBlock string, contextBlock string, query string) string
}
