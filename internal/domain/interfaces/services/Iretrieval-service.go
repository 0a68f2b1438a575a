package Iservices

import (
	"context"
	"techbot/internal/domain/entities"
)

type IRetrievalService interface {
	Retrieve(ctx context.Context, query string, queryHash string) ([]entities.RetrievalResult, error)
}
