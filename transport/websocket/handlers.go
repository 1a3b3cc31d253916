package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

func decodePayload(message *Message) (RequestPayload, error) {
	var payload RequestPayload
	if len(message.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return payload, nil
}

func (that *Server) handleSelectMode(ctx context.Context, conn *connection, message *Message) error {
	log := that.logger.With("method", "handleSelectMode", "session", conn.sessionID)

	payload, err := decodePayload(message)
	if err != nil {
		return that.sendError(conn, message.Action, "malformed payload")
	}

	mode, err := entity.ParseMode(payload.Mode)
	if err != nil {
		return that.sendError(conn, message.Action, "unknown mode")
	}

	snapshot, err := that.uSession.SelectMode(ctx, conn.sessionID, mode)
	if err != nil {
		log.Error("failed to select mode", "error", err)
		return that.sendError(conn, message.Action, "failed to select mode")
	}

	return that.sendMessage(conn, message.Action, ResponsePayload{Game: &snapshot})
}

func (that *Server) handleTurn(ctx context.Context, conn *connection, message *Message) error {
	log := that.logger.With("method", "handleTurn", "session", conn.sessionID)

	payload, err := decodePayload(message)
	if err != nil {
		return that.sendError(conn, message.Action, "malformed payload")
	}

	result, snapshot, err := that.uSession.PlayMove(ctx, conn.sessionID, payload.Cell)
	if err != nil {
		if errors.Is(err, apperror.ErrInvalidMove) {
			log.Debug("move rejected", "cell", payload.Cell, "error", err)
			return that.sendMessage(conn, message.Action, ResponsePayload{Game: &snapshot, Error: rejectReason(err)})
		}

		log.Error("failed to play move", "error", err)
		return that.sendError(conn, message.Action, "failed to play move")
	}

	if err = that.sendMessage(conn, message.Action, ResponsePayload{Game: &snapshot, Moves: result.Moves}); err != nil {
		return err
	}

	if !result.Outcome.IsTerminal() {
		return nil
	}

	outcome := result.Outcome
	return that.sendMessage(conn, actionOver, ResponsePayload{
		Game:    &snapshot,
		Outcome: &outcome,
		Message: outcome.Message(snapshot.Mode),
	})
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, apperror.ErrGameFinished):
		return apperror.ErrGameFinished.Error()
	case errors.Is(err, apperror.ErrCellOccupied):
		return apperror.ErrCellOccupied.Error()
	case errors.Is(err, apperror.ErrInvalidCell):
		return apperror.ErrInvalidCell.Error()
	default:
		return apperror.ErrInvalidMove.Error()
	}
}

func (that *Server) handleRestart(ctx context.Context, conn *connection, message *Message) error {
	snapshot, err := that.uSession.ResetRound(ctx, conn.sessionID)
	if err != nil {
		that.logger.Error("failed to reset round", "session", conn.sessionID, "error", err)
		return that.sendError(conn, message.Action, "failed to reset round")
	}

	return that.sendMessage(conn, message.Action, ResponsePayload{Game: &snapshot})
}

func (that *Server) handleState(ctx context.Context, conn *connection, message *Message) error {
	snapshot, err := that.uSession.GetState(ctx, conn.sessionID)
	if err != nil {
		that.logger.Error("failed to get state", "session", conn.sessionID, "error", err)
		return that.sendError(conn, message.Action, "failed to get state")
	}

	return that.sendMessage(conn, message.Action, ResponsePayload{Game: &snapshot})
}
