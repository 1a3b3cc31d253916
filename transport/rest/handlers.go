package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type uState interface {
	GetState(ctx context.Context, sessionID string) (entity.Snapshot, error)
}

type stateHandler struct {
	logger *slog.Logger
	uState uState
}

func newStateHandler(logger *slog.Logger, uState uState) *stateHandler {
	return &stateHandler{
		logger: logger.With("component", "rest"),
		uState: uState,
	}
}

// ServeHTTP - returns the render snapshot of a live session.
func (that *stateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	snapshot, err := that.uState.GetState(r.Context(), sessionID)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	if err != nil {
		that.logger.Error("failed to get state", "session", sessionID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(snapshot); err != nil {
		that.logger.Error("failed to encode state", "session", sessionID, "error", err)
	}
}
