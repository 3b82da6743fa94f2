package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	mqttbroker "github.com/mochi-mqtt/server/v2"
	"github.com/mochi-mqtt/server/v2/hooks/auth"
	"github.com/mochi-mqtt/server/v2/listeners"

	"telemetry-api/internal/api"
	"telemetry-api/internal/config"
	mqttapi "telemetry-api/internal/mqtt"
	"telemetry-api/internal/services"
	apicommon "telemetry-api/internal/shared/api"
	"telemetry-api/internal/store"
	"telemetry-api/pkg/dialect"
	"telemetry-api/pkg/migrator"
	"telemetry-api/pkg/mqtt"
	"telemetry-api/pkg/router"
	"telemetry-api/pkg/utils"
)

const startupPingTimeout = 5 * time.Second

func main() {
	sigCtx, sigCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer sigCancel()

	// Load .env if present, real environment variables win
	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		fatalIfErr(slog.Default(), fmt.Errorf("failed to create config: %w", err))
	}

	defer utils.LogOnError(slog.Default(), cfg.Close, "failed to close config")

	// Initialize logger
	logger := getLogger(cfg)

	// Apply schema migrations before anything touches the database
	if cfg.Dialect != dialect.Memory {
		m, err := migrator.New(logger, cfg.Dialect, cfg.Database, cfg.Dialect.MigrationFS())
		fatalIfErr(logger, err)
		fatalIfErr(logger, m.Migrate())
	}

	st, err := getStore(sigCtx, logger, cfg)
	fatalIfErr(logger, err)

	defer utils.LogOnError(logger, st.Close, "failed to close store")

	// An unreachable store at startup is not fatal; requests fail
	// individually until connectivity is restored.
	pingCtx, pingCancel := context.WithTimeout(sigCtx, startupPingTimeout)
	if err := st.Ping(pingCtx); err != nil {
		logger.Error("store unreachable at startup, continuing", utils.ErrAttr(err))
	}

	pingCancel()

	// Builders
	rb := router.NewRouteBuilder(logger)

	mb, err := mqtt.NewMQTTBuilder(logger, mqtt.MQTTClientOptions{
		BrokerURL: cfg.MQTTBroker,
		ClientID:  cfg.MQTTClientID,
		Username:  cfg.MQTTUsername,
		Password:  cfg.MQTTPassword,
	})
	fatalIfErr(logger, err)

	// Now create services with the initialized MQTT client
	publisher := mqttapi.NewPublisher(logger, mb.Client())
	svc := services.NewServices(logger, st, mb.Client(), publisher)
	apiHandler := api.NewHandler(logger, svc)
	mqttHandler := mqttapi.NewMQTTHandler(logger, svc)

	registerHTTPHandlers(logger, rb, apiHandler)
	registerMQTTHandlers(logger, mb, mqttHandler)

	// Embedded MQTT broker
	mqttAddr := fmt.Sprintf(":%d", cfg.MQTTBrokerPort)
	broker, err := getMQTTServer(logger, mqttAddr)
	fatalIfErr(logger, err)

	go func() {
		logger.Info("MQTT broker listening", slog.String("address", mqttAddr))

		if err := broker.Serve(); err != nil {
			logger.Error("MQTT broker failed", utils.ErrAttr(err))
			sigCancel()
		}
	}()

	go func() {
		if err := mb.Connect(); err != nil {
			logger.Error("Failed to connect to MQTT broker", utils.ErrAttr(err))
		}
	}()

	// HTTP Server
	httpServer := apicommon.NewHTTPServer(logger, fmt.Sprintf(":%d", cfg.Port), rb.Router())
	httpServer.StartOnBackground(sigCancel)

	// Wait for signal (either OS or some failure)
	<-sigCtx.Done()
	logger.Info("received signal, shutting down...")

	// Shutdown HTTP server
	logger.Info("http server shutting down...")

	if err := httpServer.ShutdownWithDefaultTimeout(); err != nil {
		logger.Error("http server shutdown failed", utils.ErrAttr(err))
	}

	logger.Info("disconnecting from MQTT broker...")
	mb.Disconnect()

	// Shutdown MQTT broker
	logger.Info("mqtt broker shutting down...")

	if err := broker.Close(); err != nil {
		logger.Error("mqtt broker shutdown failed", utils.ErrAttr(err))
	}

	logger.Info("server exited gracefully")
}

func getMQTTServer(l *slog.Logger, addr string) (*mqttbroker.Server, error) {
	server := mqttbroker.New(&mqttbroker.Options{
		Logger: l.With(slog.String("component", "mqtt-broker")),
	})
	tcp := listeners.NewTCP(listeners.Config{ID: "tcp", Address: addr})

	err := server.AddListener(tcp)
	if err != nil {
		return nil, err
	}

	if err := server.AddHook(new(auth.AllowHook), nil); err != nil {
		return nil, err
	}

	return server, nil
}

// getStore creates the store backing the configured dialect.
//
//nolint:ireturn // Returns Store interface
func getStore(ctx context.Context, l *slog.Logger, cfg *config.Config) (store.Store, error) {
	switch cfg.Dialect {
	case dialect.SQLite:
		return store.NewSQLiteStore(l, cfg.Database)
	case dialect.PostgreSQL:
		return store.NewPostgresStore(ctx, l, cfg.Database)
	case dialect.Memory:
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported dialect: %s", cfg.Dialect)
	}
}

// registerHTTPHandlers registers all HTTP handlers.
func registerHTTPHandlers(l *slog.Logger, rb *router.RouteBuilder, h *api.Handler) {
	l.Info("Registering HTTP handlers...")

	mw := apicommon.NewMiddlewareHandler(l)

	rb.Route("/api", func(rb *router.RouteBuilder) {
		// Add request ID
		rb.Use(mw.RequestIDMiddleware)
		// Add request logger
		rb.Use(mw.LoggerMiddleware)
		// Recover panics
		rb.Use(mw.RecoveryMiddleware)

		h.RegisterPing("/ping", rb)
		h.RegisterHealth("/health", rb)

		rb.Route("/readings", func(rb *router.RouteBuilder) {
			h.RegisterListReadings("/", rb)
			h.RegisterCreateReading("/", rb)
			h.RegisterSearchReadings("/search", rb)
			h.RegisterGetReading("/{readingID}", rb)
			h.RegisterUpdateReading("/{readingID}", rb)
			h.RegisterDeleteReading("/{readingID}", rb)
		})
	})

	l.Info("HTTP handlers registered successfully")
}

// registerMQTTHandlers registers all MQTT handlers.
func registerMQTTHandlers(l *slog.Logger, mb *mqtt.MQTTBuilder, h *mqttapi.Handler) {
	l.Info("Registering MQTT handlers...")

	h.RegisterNewReadingSubscribe(mb)
	h.RegisterReadingCreatedPublish(mb)
	h.RegisterReadingDeletedPublish(mb)

	l.Info("MQTT handlers registered successfully")
}

func getLogger(cfg *config.Config) *slog.Logger {
	logOptions := slog.HandlerOptions{
		Level:       cfg.LogLevel,
		ReplaceAttr: utils.SlogReplacer,
	}

	logHandler := slog.NewJSONHandler(cfg.LogOutput, &logOptions)

	return slog.New(logHandler).With(slog.String("version", utils.GetVersionShort()))
}

func fatalIfErr(l *slog.Logger, err error) {
	if err == nil {
		return
	}

	l.Error("error", utils.ErrAttr(err))
	os.Exit(1)
}
