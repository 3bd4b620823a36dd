package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"realestate-agent/internal/handler"
	"realestate-agent/internal/llm"
	"realestate-agent/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port > 0 {
				a.cfg.Server.Port = port
			}
			return a.serve(cmd.Context())
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Override SERVER_PORT")
	return cmd
}

func (a *app) serve(parent context.Context) error {
	cfg := a.cfg
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log.Info().Str("version", Version).Str("build_time", BuildTime).Str("git_commit", GitCommit).Msg("Real-estate assistant")

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gin.SetMode(cfg.Server.GinMode)

	repo, err := a.openRepository()
	if err != nil {
		return err
	}
	defer repo.Close()

	store, closeStore, err := a.sessionStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	orchestrator, err := a.orchestrator(ctx, store)
	if err != nil {
		return err
	}

	embedder, err := llm.NewEmbedder(ctx, cfg.LLM, cfg.Embedding)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	tokens := service.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if embedder != nil {
		log.Info().Str("model", cfg.Embedding.Model).Int("dimensions", embedder.Dimensions()).Msg("Embeddings enabled")
	} else {
		log.Warn().Msg("Embeddings disabled, chat context uses available listings")
	}
	chatService := service.NewChatService(repo, orchestrator, embedder, cfg.Chat.PropertyContextLimit)
	propertyService := service.NewPropertyService(repo, embedder, cfg.Embedding.Dimensions, cfg.Embedding.BatchSize)
	authService := service.NewAuthService(repo, tokens)

	router := handler.NewRouter(handler.Handlers{
		Chat:       handler.NewChatHandler(chatService),
		Properties: handler.NewPropertyHandler(propertyService),
		Embeddings: handler.NewEmbeddingHandler(propertyService),
		Auth:       handler.NewAuthHandler(authService),
		Tokens:     tokens,
	}, cfg.Server, handler.BuildInfo{Version: Version, BuildTime: BuildTime, GitCommit: GitCommit})

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info().Msg("Server stopped")
	return nil
}
