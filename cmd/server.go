package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"

	"bayes-go/internal/config"
	"bayes-go/internal/controller"
	"bayes-go/internal/handler"
	"bayes-go/internal/service"
	"bayes-go/internal/service/tokenizer"
	"bayes-go/pkg/mcp"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	cfgZap := zap.NewProductionConfig()
	cfgZap.Level.SetLevel(level)
	cfgZap.OutputPaths = cfg.OutputPaths
	return cfgZap.Build()
}

func newClassifier(cfg *config.Config, logger *zap.Logger) (*service.Classifier, error) {
	registry := tokenizer.DefaultRegistry()
	if err := tokenizer.RegisterCodeTokenizers(registry); err != nil {
		return nil, err
	}
	tok, ok := registry.Get(cfg.Classifier.Tokenizer)
	if !ok {
		return nil, fmt.Errorf("unknown tokenizer %q, available: %v", cfg.Classifier.Tokenizer, registry.Names())
	}

	classifier := service.NewClassifier(tok, logger)
	if cfg.Persistence.LoadOnStart {
		err := classifier.LoadFromFile(cfg.Persistence.Path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			logger.Info("No persisted model found, starting empty", zap.String("path", cfg.Persistence.Path))
		case err != nil:
			return nil, fmt.Errorf("failed to load model: %w", err)
		}
	}
	return classifier, nil
}

func runServer(ctx context.Context, cfg *config.Config) error {
	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("Configuration loaded successfully",
		zap.String("address", cfg.Address()),
		zap.String("tokenizer", cfg.Classifier.Tokenizer),
		zap.String("model_path", cfg.Persistence.Path),
		zap.Bool("auth", cfg.App.AuthToken != ""),
		zap.Bool("mcp", cfg.MCP.Enabled))

	readiness := service.NewReadiness()
	readiness.MarkNotReady()

	classifier, err := newClassifier(cfg, logger)
	if err != nil {
		return err
	}

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	if cfg.Persistence.Watch {
		watcher, err := service.NewModelWatcher(cfg.Persistence.Path, classifier, logger)
		if err != nil {
			return err
		}
		go watcher.Start(watchCtx)
	}

	opts := handler.RouterOptions{
		AuthToken:    cfg.App.AuthToken,
		MaxBodyBytes: cfg.App.MaxBodyBytes,
		RateLimit:    cfg.App.RateLimit,
		RateBurst:    cfg.App.RateBurst,
	}
	if cfg.MCP.Enabled {
		opts.MCPHandler = mcp.NewClassifierServer(classifier, version, logger).Handler()
	}
	classifierController := controller.NewClassifierController(classifier, readiness, logger)
	router := handler.SetupRouter(classifierController, opts, logger)

	srv := &http.Server{
		Addr:    cfg.Address(),
		Handler: router,
	}

	ln, err := listen(srv.Addr, readiness)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting server", zap.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		readiness.MarkNotReady()
		logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown failed", zap.Error(err))
		}

		stopWatch()
		if cfg.Persistence.SaveOnShutdown {
			if err := classifier.SaveToFile(cfg.Persistence.Path); err != nil {
				logger.Error("Failed to save model on shutdown", zap.Error(err))
			}
		}
		return nil
	})

	return g.Wait()
}

// listen binds addr and marks the server ready only once the port is held
func listen(addr string, readiness *service.Readiness) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	readiness.MarkReady()
	return ln, nil
}
