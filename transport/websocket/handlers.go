package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

var errCellRequired = errors.New("cell is required")

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

func (that *Server) handleNewMatch(ctx context.Context, client *client, message *Message) error {
	payload, err := decodePayload(message)
	if err != nil {
		return err
	}

	if payload.Mode == "" {
		payload.Mode = entity.AIMode
	}

	if payload.Difficulty == "" {
		payload.Difficulty = that.defaultDifficulty
	}

	state, err := client.session.NewMatch(ctx, payload.Mode, payload.Difficulty)
	if err != nil {
		return err
	}

	client.send(ctx, message.Action, ResponsePayload{Match: &state})

	return nil
}

func (that *Server) handleMove(ctx context.Context, client *client, message *Message) error {
	payload, err := decodePayload(message)
	if err != nil {
		return err
	}

	if payload.Cell == nil {
		return errCellRequired
	}

	state, err := client.session.HumanMove(*payload.Cell)
	if err != nil {
		return err
	}

	client.send(ctx, message.Action, ResponsePayload{Match: &state})

	return nil
}

func (that *Server) handleUndo(ctx context.Context, client *client, message *Message) error {
	state, err := client.session.Undo()
	if err != nil {
		return err
	}

	client.send(ctx, message.Action, ResponsePayload{Match: &state})

	return nil
}

// handleHint answers through the match notification, so nothing is sent here on success.
func (that *Server) handleHint(_ context.Context, client *client, _ *Message) error {
	_, _, err := client.session.Hint()

	return err
}

func (that *Server) handleRestart(ctx context.Context, client *client, message *Message) error {
	state, err := client.session.Restart()
	if err != nil {
		return err
	}

	client.send(ctx, message.Action, ResponsePayload{Match: &state})

	return nil
}

func (that *Server) handleState(ctx context.Context, client *client, message *Message) error {
	state, err := client.session.State()
	if err != nil {
		return err
	}

	client.send(ctx, message.Action, ResponsePayload{Match: &state})

	return nil
}
