package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"techbot/internal/domain/apperrors"
	"techbot/internal/domain/dto"
	Iservices "techbot/internal/domain/interfaces/services"
	"techbot/internal/infra/logger"
)

type HttpHandlers struct {
	Logger      *logger.Logger
	ChatService Iservices.IChatService
}

func NewHttpHandlers(logger *logger.Logger, chatService Iservices.IChatService) *HttpHandlers {
	return &HttpHandlers{Logger: logger, ChatService: chatService}
}

// Chat handles POST /chat. Every pipeline failure surfaces here as either
// a validation error (400), an upstream error (500) or a degraded 200.
func (th *HttpHandlers) Chat(w http.ResponseWriter, r *http.Request) {
	var request dto.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}
	defer r.Body.Close()

	response, err := th.ChatService.Chat(r.Context(), request)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Query or userId is missing"})
			return
		}
		th.Logger.Error(fmt.Sprintf("Chat pipeline failed: %s", err.Error()))
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Server error", Details: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// AddDoc handles POST /add-doc: embeds the content and stores it in the
// document collection.
func (th *HttpHandlers) AddDoc(w http.ResponseWriter, r *http.Request) {
	var request dto.AddDocRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(request.Content) == "" {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Content is required"})
		return
	}

	if err := th.ChatService.AddDoc(r.Context(), request.Content); err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to add document: %s", err.Error()))
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Server error", Details: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Document saved"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
