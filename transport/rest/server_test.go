package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

func newTestHandler(t *testing.T) (http.Handler, *usecase.SessionManager) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := usecase.NewSessionManager(logger, service.NewBotService(rand.NewSource(1)), nil, false)

	return Handler(logger, manager, []string{"http://localhost:3000"}), manager
}

func TestHandler_PingAndHealth(t *testing.T) {
	handler, _ := newTestHandler(t)

	for path, body := range map[string]string{"/ping": "pong", "/health": "OK"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, body, rec.Body.String(), path)
	}
}

func TestHandler_SessionState(t *testing.T) {
	handler, manager := newTestHandler(t)

	t.Run("Returns the snapshot of a live session", func(t *testing.T) {
		// Given: a session where the human played the centre
		ctx := context.Background()
		sessionID, _ := manager.CreateSession(ctx)
		_, _, err := manager.PlayMove(ctx, sessionID, 5)
		require.NoError(t, err)

		// When: the state is requested
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions/"+sessionID, nil))

		// Then: the board shows X in the centre
		require.Equal(t, http.StatusOK, rec.Code)
		var snapshot entity.Snapshot
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
		assert.Equal(t, entity.MarkX, snapshot.Board[4])
		assert.Equal(t, entity.ModeVsBot, snapshot.Mode)
	})

	t.Run("Unknown session is 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions/missing", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandler_CORS(t *testing.T) {
	handler, _ := newTestHandler(t)

	// When: an allowed origin pings
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// Then: the origin is echoed back
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	// When: a foreign origin pings
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// Then: no CORS header is granted
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
