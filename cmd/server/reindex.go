package main

import (
	"fmt"

	"realestate-agent/internal/llm"
	"realestate-agent/internal/service"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newReindexCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Compute embeddings for listings that have none",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !a.cfg.Embedding.Enabled {
				return fmt.Errorf("embeddings are disabled, set EMBEDDING_ENABLED=true")
			}

			embedder, err := llm.NewEmbedder(ctx, a.cfg.LLM, a.cfg.Embedding)
			if err != nil {
				return fmt.Errorf("failed to create embedder: %w", err)
			}

			repo, err := a.openRepository()
			if err != nil {
				return err
			}
			defer repo.Close()

			n, err := service.NewPropertyService(repo, embedder, a.cfg.Embedding.Dimensions, a.cfg.Embedding.BatchSize).Reindex(ctx)
			if err != nil {
				return fmt.Errorf("reindex stopped after %d properties: %w", n, err)
			}

			embedded, err := repo.CountEmbedded(ctx)
			if err != nil {
				return err
			}
			log.Info().Int("indexed", n).Int("embedded_total", embedded).Msg("Reindex complete")
			return nil
		},
	}
}
