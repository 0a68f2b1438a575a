package services

import (
	"context"
	"fmt"
	"strings"
	"techbot/internal/domain/apperrors"
	"techbot/internal/domain/dto"
	"techbot/internal/domain/entities"
	"techbot/internal/domain/interfaces/repository"
	repocontants "techbot/internal/domain/interfaces/repository/contants"
	Iservices "techbot/internal/domain/interfaces/services"
	"techbot/internal/infra/logger"
	"techbot/internal/infra/provider"
	"time"

	"github.com/sirupsen/logrus"
)

// ChatService sequences the pipeline per request: classify, check the
// response cache, retrieve, build the prompt, generate, persist the
// exchange and populate the caches. All cross-request state lives in the
// external stores.
type ChatService struct {
	Logger        *logger.Logger
	Classifier    Iservices.IClassifierService
	Cache         Iservices.ICacheCoordinator
	Retrieval     Iservices.IRetrievalService
	Prompt        Iservices.IPromptService
	Generation    Iservices.IGenerationService
	Conversation  Iservices.IConversationService
	Provider      provider.IGenerationProvider
	DocRepository repository.DocRepository
	HistoryWindow int
}

func NewChatService(
	logger *logger.Logger,
	classifier Iservices.IClassifierService,
	cache Iservices.ICacheCoordinator,
	retrieval Iservices.IRetrievalService,
	prompt Iservices.IPromptService,
	generation Iservices.IGenerationService,
	conversation Iservices.IConversationService,
	generationProvider provider.IGenerationProvider,
	docRepository repository.DocRepository,
	historyWindow int,
) *ChatService {
	if historyWindow <= 0 {
		historyWindow = 6
	}
	return &ChatService{
		Logger:        logger,
		Classifier:    classifier,
		Cache:         cache,
		Retrieval:     retrieval,
		Prompt:        prompt,
		Generation:    generation,
		Conversation:  conversation,
		Provider:      generationProvider,
		DocRepository: docRepository,
		HistoryWindow: historyWindow,
	}
}

func (cs *ChatService) Chat(ctx context.Context, request dto.ChatRequest) (dto.ChatResponse, error) {
	if strings.TrimSpace(request.Query) == "" || strings.TrimSpace(request.UserID) == "" {
		return dto.ChatResponse{}, apperrors.ErrValidation
	}

	switch cs.Classifier.Classify(request.Query) {
	case Iservices.ClassificationGreeting:
		return cannedResponse(WelcomeMessage), nil
	case Iservices.ClassificationForbidden:
		return cannedResponse(DeflectionMessage), nil
	}

	hash := cs.Cache.QueryHash(request.Query)

	if output, ok := cs.Cache.ResponseLookup(ctx, hash); ok {
		cs.Logger.Debug("Response cache hit", logrus.Fields{"hash": hash})
		cs.persistExchange(ctx, request.UserID, request.Query, &output)
		return dto.ChatResponse{
			Answer:        output.Answer,
			FutureActions: output.FutureActions,
			CacheHit:      true,
		}, nil
	}

	unlock := cs.Conversation.LockUser(request.UserID)
	defer unlock()

	chat := cs.Conversation.FindOrCreate(ctx, request.UserID)
	chat.Messages = append(chat.Messages, userMessage(request.Query))

	results, err := cs.Retrieval.Retrieve(ctx, request.Query, hash)
	if err != nil {
		// The user's message must not be silently lost; only the
		// assistant turn is missing.
		if saveErr := cs.Conversation.Save(ctx, chat); saveErr != nil {
			cs.Logger.Error(fmt.Sprintf("Failed to persist user message after retrieval failure: %s", saveErr.Error()))
		}
		return dto.ChatResponse{}, err
	}

	historyBlock := cs.Prompt.BuildHistory(chat, cs.HistoryWindow)
	contextBlock := cs.Prompt.BuildContext(results)
	prompt := cs.Prompt.BuildPrompt(historyBlock, contextBlock, request.Query)

	output := cs.Generation.Generate(ctx, prompt)

	chat.Messages = append(chat.Messages, assistantMessage(output.Answer))
	if err := cs.Conversation.Save(ctx, chat); err != nil {
		cs.Logger.Error(fmt.Sprintf("Failed to persist conversation for user '%s': %s", request.UserID, err.Error()))
	}

	// Only a full pipeline run writes the response cache, and never a
	// request that was cancelled mid-flight.
	if ctx.Err() == nil {
		cs.Cache.ResponseStore(hash, output)
	}

	return dto.ChatResponse{
		Answer:        output.Answer,
		FutureActions: output.FutureActions,
		Context:       results,
		CacheHit:      false,
	}, nil
}

// AddDoc embeds the content and stores it in the document collection.
func (cs *ChatService) AddDoc(ctx context.Context, content string) error {
	embedding, err := cs.Provider.EmbedText(ctx, content)
	if err != nil {
		cs.Logger.Error(fmt.Sprintf("Failed to embed document: %s", err.Error()))
		return fmt.Errorf("%w: embedding failed: %v", apperrors.ErrUpstreamUnavailable, err)
	}

	doc := entities.Doc{Content: content, Embedding: embedding}
	if _, err := cs.DocRepository.Insert(ctx, repocontants.DOC_COLLECTION, doc); err != nil {
		cs.Logger.Error(fmt.Sprintf("Failed to store document: %s", err.Error()))
		return err
	}
	return nil
}

// persistExchange records a cached exchange in the conversation so a
// response-cache hit still leaves a complete history.
func (cs *ChatService) persistExchange(ctx context.Context, userID string, query string, output *dto.GenerationOutput) {
	unlock := cs.Conversation.LockUser(userID)
	defer unlock()

	chat := cs.Conversation.FindOrCreate(ctx, userID)
	chat.Messages = append(chat.Messages, userMessage(query))
	chat.Messages = append(chat.Messages, assistantMessage(output.Answer))
	if err := cs.Conversation.Save(ctx, chat); err != nil {
		cs.Logger.Error(fmt.Sprintf("Failed to persist cached exchange for user '%s': %s", userID, err.Error()))
	}
}

func cannedResponse(message string) dto.ChatResponse {
	return dto.ChatResponse{
		Answer:        []string{message},
		FutureActions: []string{},
	}
}

func userMessage(query string) entities.ChatMessage {
	return entities.ChatMessage{
		Role:      entities.RoleUser,
		Content:   []string{query},
		Timestamp: time.Now(),
	}
}

func assistantMessage(lines []string) entities.ChatMessage {
	return entities.ChatMessage{
		Role:      entities.RoleAssistant,
		Content:   lines,
		Timestamp: time.Now(),
	}
}
