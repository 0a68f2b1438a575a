package repository

import (
	"context"
	"techbot/internal/domain/entities"
)

type ConversationRepository interface {
	FindByUserID(ctx context.Context, collectionName string, userID string) (entities.BotChat, error)
	Save(ctx context.Context, collectionName string, chat entities.BotChat) (entities.BotChat, error)
}

type DocRepository interface {
	Insert(ctx context.Context, collectionName string, doc entities.Doc) (entities.Doc, error)
	VectorSearch(ctx context.Context, collectionName string, vector []float64, limit int, numCandidates int) ([]entities.RetrievalResult, error)
}
