package services

import (
	"context"
	"strings"
	"techbot/internal/domain/dto"
	"techbot/internal/domain/entities"
)

// Hand-rolled fakes over the service interfaces, so pipeline tests can
// assert exactly which stages ran.

type fakeCache struct {
	embeddings map[string][]float64
	responses  map[string]dto.GenerationOutput

	responseLookups  int
	embeddingLookups int
	responseStores   int
	embeddingStores  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		embeddings: make(map[string][]float64),
		responses:  make(map[string]dto.GenerationOutput),
	}
}

func (f *fakeCache) QueryHash(query string) string {
	return "hash:" + strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

func (f *fakeCache) ResponseLookup(ctx context.Context, hash string) (dto.GenerationOutput, bool) {
	f.responseLookups++
	output, ok := f.responses[hash]
	return output, ok
}

func (f *fakeCache) ResponseStore(hash string, output dto.GenerationOutput) {
	f.responseStores++
	f.responses[hash] = output
}

func (f *fakeCache) EmbeddingLookup(ctx context.Context, hash string) ([]float64, bool) {
	f.embeddingLookups++
	vector, ok := f.embeddings[hash]
	return vector, ok
}

func (f *fakeCache) EmbeddingStore(hash string, vector []float64) {
	f.embeddingStores++
	f.embeddings[hash] = vector
}

type fakeProvider struct {
	embedResult    []float64
	embedErr       error
	embedCalls     int
	generateResult string
	generateErr    error
	generateCalls  int
	lastPrompt     string
}

func (f *fakeProvider) GenerateStructured(ctx context.Context, prompt string, schema *dto.GeminiSchema) (string, error) {
	f.generateCalls++
	f.lastPrompt = prompt
	return f.generateResult, f.generateErr
}

func (f *fakeProvider) EmbedText(ctx context.Context, text string) ([]float64, error) {
	f.embedCalls++
	return f.embedResult, f.embedErr
}

type fakeDocRepo struct {
	results     []entities.RetrievalResult
	searchErr   error
	searchCalls int
	inserted    []entities.Doc
}

func (f *fakeDocRepo) Insert(ctx context.Context, collectionName string, doc entities.Doc) (entities.Doc, error) {
	f.inserted = append(f.inserted, doc)
	return doc, nil
}

func (f *fakeDocRepo) VectorSearch(ctx context.Context, collectionName string, vector []float64, limit int, numCandidates int) ([]entities.RetrievalResult, error) {
	f.searchCalls++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.results, nil
}

type fakeRetrieval struct {
	results []entities.RetrievalResult
	err     error
	calls   int
}

func (f *fakeRetrieval) Retrieve(ctx context.Context, query string, queryHash string) ([]entities.RetrievalResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

type fakeGeneration struct {
	output dto.GenerationOutput
	calls  int
}

func (f *fakeGeneration) Generate(ctx context.Context, prompt string) dto.GenerationOutput {
	f.calls++
	return f.output
}

type fakeConversation struct {
	chats     map[string]entities.BotChat
	saveCalls int
	lockCalls int
}

func newFakeConversation() *fakeConversation {
	return &fakeConversation{chats: make(map[string]entities.BotChat)}
}

func (f *fakeConversation) LockUser(userID string) (unlock func()) {
	f.lockCalls++
	return func() {}
}

func (f *fakeConversation) FindOrCreate(ctx context.Context, userID string) entities.BotChat {
	if chat, ok := f.chats[userID]; ok {
		return chat
	}
	return entities.BotChat{UserID: userID, Messages: []entities.ChatMessage{}}
}

func (f *fakeConversation) Save(ctx context.Context, chat entities.BotChat) error {
	f.saveCalls++
	f.chats[chat.UserID] = chat
	return nil
}
