package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
)

type uSession interface {
	CreateSession(ctx context.Context) (string, entity.Snapshot)
	SelectMode(ctx context.Context, sessionID string, mode entity.Mode) (entity.Snapshot, error)
	PlayMove(ctx context.Context, sessionID string, cell int) (tictactoe.MoveResult, entity.Snapshot, error)
	ResetRound(ctx context.Context, sessionID string) (entity.Snapshot, error)
	GetState(ctx context.Context, sessionID string) (entity.Snapshot, error)
	CloseSession(ctx context.Context, sessionID string)
}

type handlerFunc func(ctx context.Context, conn *connection, message *Message) error

type Server struct {
	logger   *slog.Logger
	uSession uSession
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

// New - allowedOrigins empty or containing "*" accepts every origin.
func New(logger *slog.Logger, uSession uSession, allowedOrigins []string) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		uSession: uSession,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionMode] = server.handleSelectMode
	server.handlers[actionTurn] = server.handleTurn
	server.handlers[actionRestart] = server.handleRestart
	server.handlers[actionState] = server.handleState

	return server
}

func checkOrigin(allowedOrigins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
			return true
		}
		return slices.Contains(allowedOrigins, origin)
	}
}

// Handler - the http handler serving /ws.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(ctx, w, r)
	})
	return mux
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown websocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

type connection struct {
	ws        *websocket.Conn
	sessionID string
}

// serveConnection - upgrades the request and plays one session until the client leaves.
func (that *Server) serveConnection(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveConnection")

	ws, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer ws.Close()

	ws.SetReadLimit(maxMessageSize)

	sessionID, snapshot := that.uSession.CreateSession(ctx)
	defer that.uSession.CloseSession(ctx, sessionID)

	conn := &connection{ws: ws, sessionID: sessionID}
	log = log.With("session", sessionID)
	log.Info("WebSocket connection established")

	if err = that.sendMessage(conn, actionSession, ResponsePayload{SessionID: sessionID, Game: &snapshot}); err != nil {
		log.Error("failed to send session", "error", err)
		return
	}

	if err = that.handleMessages(ctx, conn); err != nil {
		log.Info("WebSocket connection closed", "reason", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, conn *connection) error {
	log := that.logger.With("method", "handleMessages", "session", conn.sessionID)

	for {
		var message Message
		if err := conn.ws.ReadJSON(&message); err != nil {
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				log.Warn("failed to unmarshal message", "error", err)
				if err = that.sendError(conn, actionError, "malformed message"); err != nil {
					return err
				}
				continue
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err := that.sendError(conn, message.Action, "unknown action"); err != nil {
				return err
			}
			continue
		}

		if err := handler(ctx, conn, &message); err != nil {
			return fmt.Errorf("failed to process %s: %w", message.Action, err)
		}
	}
}

func (that *Server) sendMessage(conn *connection, action string, payload ResponsePayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = conn.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = conn.ws.WriteJSON(Message{Action: action, Payload: payloadJSON}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendError(conn *connection, action, reason string) error {
	return that.sendMessage(conn, action, ResponsePayload{Error: reason})
}
