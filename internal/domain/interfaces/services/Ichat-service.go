package Iservices

import (
	"context"
	"techbot/internal/domain/dto"
)

type IChatService interface {
	Chat(ctx context.Context, request dto.ChatRequest) (dto.ChatResponse, error)
	AddDoc(ctx context.Context, content string) error
}
