package Iservices

import (
	"context"
	"techbot/internal/domain/entities"
)

// IConversationService owns durable per-user history. LockUser serializes
// the read-append-save cycle for a userId across concurrent requests; the
// returned function releases the lock.
type IConversationService interface {
	LockUser(userID string) (unlock func())
	FindOrCreate(ctx context.Context, userID string) entities.BotChat
	Save(ctx context.Context, chat entities.BotChat) error
}
