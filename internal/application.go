package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/transport/redis"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-engine/transport/console"
	"github.com/rocketscienceinc/tictactoe-engine/transport/rest"
	"github.com/rocketscienceinc/tictactoe-engine/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	bot := service.NewBotService(newBotSource(conf.Bot.Seed))

	if conf.Frontend == config.FrontendConsole {
		return runConsole(ctx, logger, conf, bot, os.Stdin, os.Stdout)
	}

	manager, closeRedis, err := newSessionManager(ctx, logger, conf, bot)
	if err != nil {
		return err
	}
	defer closeRedis()

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		handler := rest.Handler(logger, manager, conf.AllowedOrigins)
		if httpErr := rest.Start(ctx, conf.HTTPPort, handler); httpErr != nil {
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, manager, conf.AllowedOrigins)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func newBotSource(seed int64) rand.Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.NewSource(seed)
}

// newSessionManager - wires the optional redis outcome publisher into the session manager.
func newSessionManager(ctx context.Context, logger *slog.Logger, conf *config.Config, bot service.BotService) (*usecase.SessionManager, func(), error) {
	if !conf.Redis.Enabled {
		return usecase.NewSessionManager(logger, bot, nil, conf.StrictInvariants), func() {}, nil
	}

	redisClient, err := redis.Connect(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis: %w", err)
	}

	closeRedis := func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("could not close redis client", "error", err)
		}
	}

	publisher := redis.New(redisClient, conf.Redis.Channel)

	return usecase.NewSessionManager(logger, bot, publisher, conf.StrictInvariants), closeRedis, nil
}

func runConsole(ctx context.Context, logger *slog.Logger, conf *config.Config, bot service.BotService, in io.Reader, out io.Writer) error {
	engine := tictactoe.NewEngine(logger, bot, conf.StrictInvariants)

	if err := console.New(logger, engine, in, out).Run(ctx); err != nil {
		return fmt.Errorf("console error: %w", err)
	}

	return nil
}
