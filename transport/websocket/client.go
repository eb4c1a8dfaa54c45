package websocket

import (
	"context"
	"log/slog"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/usecase"
)

const writeTimeout = 5 * time.Second

// client is one connection. It receives the notifications of its match and pushes them to the peer.
type client struct {
	logger  *slog.Logger
	conn    *websocket.Conn
	session *usecase.Session
}

func newClient(logger *slog.Logger, conn *websocket.Conn) *client {
	return &client{
		logger: logger.With("component", "client"),
		conn:   conn,
	}
}

func (that *client) send(ctx context.Context, action string, payload ResponsePayload) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	message := Message{
		Action:  action,
		Payload: mustMarshal(payload),
	}

	if err := wsjson.Write(ctx, that.conn, message); err != nil {
		that.logger.Error("failed to send message", "action", action, "error", err)
	}
}

func (that *client) sendError(ctx context.Context, request, reason string) {
	that.send(ctx, actionError, ResponsePayload{Request: request, Error: reason})
}

func (that *client) push(action string, payload ResponsePayload) {
	that.send(context.Background(), action, payload)
}

func (that *client) OnCellChanged(cell int, mark entity.Mark) {
	that.push(actionCellChanged, ResponsePayload{Cell: &cell, Mark: &mark})
}

func (that *client) OnTurnChanged(mark entity.Mark) {
	that.push(actionTurnChanged, ResponsePayload{Mark: &mark})
}

func (that *client) OnGameFinished(outcome entity.Outcome) {
	that.push(actionMatchFinished, ResponsePayload{Outcome: &outcome})
}

func (that *client) OnHint(cell int, ok bool) {
	payload := ResponsePayload{Found: &ok}
	if ok {
		payload.Cell = &cell
	}

	that.push(actionMatchHint, payload)
}

func (that *client) OnStatsChanged(stats entity.Stats) {
	that.push(actionStatsChanged, ResponsePayload{Stats: &stats})
}
