package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/flashsync/internal/server/storage"
	"github.com/iudanet/flashsync/internal/server/sync"
	"github.com/iudanet/flashsync/pkg/api"
)

// maxSyncBody ограничивает размер тела запроса синхронизации
const maxSyncBody = 8 << 20

// Syncer runs sync requests for an account
type Syncer interface {
	Sync(ctx context.Context, accountID string, req api.SyncRequest) (*api.SyncResponse, error)
	Status(ctx context.Context, accountID string) (int64, error)
}

// SyncHandler handles synchronization requests
type SyncHandler struct {
	logger *slog.Logger
	syncer Syncer
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(logger *slog.Logger, syncer Syncer) *SyncHandler {
	return &SyncHandler{
		logger: logger,
		syncer: syncer,
	}
}

// Sync обрабатывает POST /api/v1/sync
// Принимает локальные изменения клиента и возвращает изменения, которых у него нет
func (h *SyncHandler) Sync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Получаем user_id из контекста (установлен AuthMiddleware)
	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "User ID not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req api.SyncRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSyncBody))
	if err := dec.Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "Failed to decode sync request", "error", err)
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	h.logger.InfoContext(ctx, "POST sync request",
		"user_id", userID,
		"last_sync", req.LastSync,
		"operations_count", len(req.Operations))

	resp, err := h.syncer.Sync(ctx, userID, req)
	if err != nil {
		h.handleError(ctx, w, userID, err)
		return
	}

	sendJSON(h.logger, w, resp, http.StatusOK)

	h.logger.InfoContext(ctx, "POST sync completed",
		"user_id", userID,
		"remote_count", len(resp.Remote),
		"local_count", len(resp.Local))
}

// Status обрабатывает GET /api/v1/sync/status
// Возвращает максимальный server_seq хранилища аккаунта
func (h *SyncHandler) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "User ID not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	maxSeq, err := h.syncer.Status(ctx, userID)
	if err != nil {
		h.handleError(ctx, w, userID, err)
		return
	}

	sendJSON(h.logger, w, api.SyncStatusResponse{MaxSeq: maxSeq}, http.StatusOK)
}

func (h *SyncHandler) handleError(ctx context.Context, w http.ResponseWriter, userID string, err error) {
	switch {
	case sync.IsMalformedBatch(err):
		h.logger.WarnContext(ctx, "Sync rejected", "user_id", userID, "error", err)
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, storage.ErrInvalidAccountID):
		// Токен подписан нами, но account id не UUID - сессия недействительна
		h.logger.WarnContext(ctx, "Invalid account id in token", "user_id", userID)
		w.WriteHeader(http.StatusUnauthorized)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// Транзакция откатилась; если клиент еще ждет, он должен увидеть отказ, а не пустой 200
		h.logger.InfoContext(ctx, "Sync canceled", "user_id", userID, "error", err)
		sendError(h.logger, w, "sync canceled, nothing was applied", http.StatusServiceUnavailable)
	default:
		h.logger.ErrorContext(ctx, "Sync failed", "user_id", userID, "error", err)
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
	}
}
