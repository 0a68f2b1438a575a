package services

import (
	"context"
	"fmt"
	"techbot/internal/domain/entities"
	"techbot/internal/domain/interfaces/repository"
	repocontants "techbot/internal/domain/interfaces/repository/contants"
	"techbot/internal/infra/logger"
	client "techbot/internal/pkg"
	"time"
)

// ConversationService is the service responsible for conversation
// persistence. Two concurrent requests for the same user would otherwise
// both read the history, append independently and lose an update, so the
// read-append-save cycle runs under a per-user lock.
type ConversationService struct {
	ConversationRepository repository.ConversationRepository
	Logger                 *logger.Logger
	locks                  *client.KeyMutex
}

// NewConversationService creates a new instance of the service.
func NewConversationService(conversationRepository repository.ConversationRepository, logger *logger.Logger) *ConversationService {
	return &ConversationService{
		ConversationRepository: conversationRepository,
		Logger:                 logger,
		locks:                  client.NewKeyMutex(),
	}
}

func (cs *ConversationService) LockUser(userID string) (unlock func()) {
	return cs.locks.Lock(userID)
}

// FindOrCreate retrieves a conversation by userID, starting a fresh one
// when none exists or the store cannot be read.
func (cs *ConversationService) FindOrCreate(ctx context.Context, userID string) entities.BotChat {
	chat, err := cs.ConversationRepository.FindByUserID(ctx, repocontants.BOT_CHAT_COLLECTION, userID)
	if err != nil {
		cs.Logger.Warn(fmt.Sprintf("Conversation not found for user '%s'. Initializing new conversation.", userID))
		return entities.BotChat{
			UserID:   userID,
			Messages: []entities.ChatMessage{},
		}
	}
	return chat
}

// Save upserts the conversation by userID.
func (cs *ConversationService) Save(ctx context.Context, chat entities.BotChat) error {
	chat.UpdatedAt = time.Now()
	_, err := cs.ConversationRepository.Save(ctx, repocontants.BOT_CHAT_COLLECTION, chat)
	if err != nil {
		cs.Logger.Error(fmt.Sprintf("Failed to save conversation for user '%s': %v", chat.UserID, err))
		return err
	}
	return nil
}
