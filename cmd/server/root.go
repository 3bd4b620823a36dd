package main

import (
	"context"
	"fmt"

	"realestate-agent/internal/agent"
	"realestate-agent/internal/config"
	"realestate-agent/internal/llm"
	"realestate-agent/internal/logger"
	"realestate-agent/internal/repository"
	"realestate-agent/internal/session"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// app carries the loaded configuration into subcommands
type app struct {
	cfg *config.Config
}

func newRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "realestate-agent",
		Short: "Multilingual Dubai real-estate assistant",
		Long: `realestate-agent answers property questions in English, Arabic and Tamil,
backed by a hosted language model and a PostgreSQL listing store.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				cfg.Logging.Level = "debug"
			}
			logger.Setup(cfg.Logging)
			a.cfg = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	serveCmd := newServeCommand(a)
	rootCmd.RunE = serveCmd.RunE
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newMigrateCommand(a))
	rootCmd.AddCommand(newReindexCommand(a))
	rootCmd.AddCommand(newChatCommand(a))

	return rootCmd
}

func (a *app) openRepository() (*repository.PostgresRepository, error) {
	repo, err := repository.NewPostgresRepository(
		a.cfg.GetPostgreSQLDSN(),
		a.cfg.PostgreSQL.MaxConnections,
		a.cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		return nil, err
	}
	log.Info().Str("host", a.cfg.PostgreSQL.Host).Str("database", a.cfg.PostgreSQL.Database).Msg("Connected to PostgreSQL")
	return repo, nil
}

// sessionStore builds the configured memory backend. The returned func
// releases its resources.
func (a *app) sessionStore(ctx context.Context) (session.Store, func(), error) {
	sc := a.cfg.Session
	if sc.Backend != config.SessionBackendRedis {
		return session.NewMemoryStore(sc.Retention), func() {}, nil
	}

	client, err := session.DialRedis(ctx, sc.RedisAddr, sc.RedisPassword, sc.RedisDB)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("addr", sc.RedisAddr).Msg("Using Redis session store")

	store := session.NewRedisStore(client, session.RedisOpts{
		KeyPrefix: sc.KeyPrefix,
		TTL:       sc.TTL,
		Retention: sc.Retention,
	})
	return store, func() { client.Close() }, nil
}

func (a *app) orchestrator(ctx context.Context, store session.Store) (*agent.Orchestrator, error) {
	gen, err := llm.NewGenerator(ctx, a.cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	log.Info().
		Str("provider", a.cfg.LLM.Provider).
		Str("model", a.cfg.LLM.ChatModel).
		Dur("timeout", a.cfg.LLM.Timeout).
		Msg("LLM client initialized")

	return agent.NewOrchestrator(agent.OrchestratorDeps{
		Generator: gen,
		Store:     store,
		Composer:  agent.NewComposer(generationParams(a.cfg.LLM)),
	}, agent.OrchestratorOpts{Timeout: a.cfg.LLM.Timeout})
}

func generationParams(cfg config.LLMConfig) agent.GenerationParams {
	params := agent.DefaultGenerationParams()
	if cfg.Temperature > 0 {
		params.Temperature = cfg.Temperature
	}
	if cfg.TopP > 0 {
		params.TopP = cfg.TopP
	}
	if cfg.TopK > 0 {
		params.TopK = cfg.TopK
	}
	if cfg.MaxOutputTokens > 0 {
		params.MaxOutputTokens = cfg.MaxOutputTokens
	}
	return params
}
