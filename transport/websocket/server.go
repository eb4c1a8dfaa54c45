package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"nhooyr.io/websocket"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

type profileStore interface {
	Stats(ctx context.Context) (entity.Stats, error)
	RecordOutcome(ctx context.Context, outcome entity.Outcome) (entity.Stats, error)
}

type handlerFunc func(ctx context.Context, client *client, message *Message) error

type Server struct {
	logger  *slog.Logger
	profile profileStore

	options           usecase.MatchOptions
	defaultDifficulty entity.Difficulty

	handlers map[string]handlerFunc
}

// New creates a WebSocket server. Every connection owns one local match built from options.
func New(logger *slog.Logger, profile profileStore, options usecase.MatchOptions, defaultDifficulty entity.Difficulty) *Server {
	server := &Server{
		logger:  logger.With("component", "websocket"),
		profile: profile,

		options:           options,
		defaultDifficulty: defaultDifficulty,

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionMatchNew] = server.handleNewMatch
	server.handlers[actionMatchMove] = server.handleMove
	server.handlers[actionMatchUndo] = server.handleUndo
	server.handlers[actionMatchHint] = server.handleHint
	server.handlers[actionMatchRestart] = server.handleRestart
	server.handlers[actionMatchState] = server.handleState

	return server
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", that)

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// ServeHTTP upgrades the request and serves the connection until the client leaves.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := websocket.Accept(writer, req, nil)
	if err != nil {
		log.Error("failed to accept websocket connection", "error", err)
		return
	}

	defer conn.CloseNow()

	client := newClient(that.logger, conn)
	client.session = usecase.NewSession(that.logger, that.profile, that.options, client)
	defer client.session.Close()

	log.Info("WebSocket connection established")

	if err = that.handleMessages(req.Context(), client); err != nil {
		log.Error("error handling messages", "error", err)
		return
	}

	_ = conn.Close(websocket.StatusNormalClosure, "")
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, client *client) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, data, err := client.conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				log.Info("WebSocket connection closed")
				return nil
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Debug("failed to unmarshal message", "error", err)
			client.sendError(ctx, "", "malformed message")
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Debug("unknown action", "action", message.Action)
			client.sendError(ctx, message.Action, "unknown action")
			continue
		}

		if err = handler(ctx, client, &message); err != nil {
			log.Debug("error processing message", "action", message.Action, "error", err)
			client.sendError(ctx, message.Action, err.Error())
		}
	}
}
