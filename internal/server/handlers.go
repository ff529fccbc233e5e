// internal/server/handlers.go
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"storebot/internal/chatbot"
	"storebot/internal/common/errors"
	"storebot/internal/common/logger"
	"storebot/internal/models"
)

var validate = validator.New()

// ChatRequest is the POST /api/chat payload.
type ChatRequest struct {
	UserID  string `json:"userId"`
	Message string `json:"message" validate:"required"`
}

// ChatResponse mirrors chatbot.ResolutionResult on the wire.
type ChatResponse struct {
	Reply    string                  `json:"reply"`
	Products []models.ProductSummary `json:"products"`
}

// HistoryReader replays conversation turns for the history endpoint.
type HistoryReader interface {
	Replay(ctx context.Context, userID string) ([]models.ConversationTurn, error)
}

type Handlers struct {
	resolver       *chatbot.Resolver
	history        HistoryReader
	logger         logger.Logger
	requestTimeout time.Duration
}

func NewHandlers(resolver *chatbot.Resolver, history HistoryReader, log logger.Logger, requestTimeout time.Duration) *Handlers {
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}
	return &Handlers{
		resolver:       resolver,
		history:        history,
		logger:         log.WithFields(map[string]interface{}{"component": "http"}),
		requestTimeout: requestTimeout,
	}
}

func (h *Handlers) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteHTTP(w, errors.NewInvalidChatRequestError("invalid JSON body"))
		return
	}

	if err := validate.Struct(req); err != nil {
		errors.WriteHTTP(w, errors.NewEmptyMessageError())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		errors.WriteHTTP(w, errors.NewEmptyMessageError())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	result, err := h.resolver.Resolve(ctx, req.UserID, req.Message)
	if err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Reply:    result.ReplyText,
		Products: result.Products,
	})
}

func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if userID == "" {
		errors.WriteHTTP(w, errors.NewInvalidChatRequestError("userId is required"))
		return
	}

	if h.history == nil {
		writeJSON(w, http.StatusOK, []models.ConversationTurn{})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	turns, err := h.history.Replay(ctx, userID)
	if err != nil {
		h.logger.Error("history replay failed", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
		errors.WriteHTTP(w, errors.NewHistoryReadFailedError(userID, err))
		return
	}

	writeJSON(w, http.StatusOK, turns)
}

func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
