package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newMigrateCommand(a *app) *cobra.Command {
	var dims int

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dims <= 0 {
				dims = a.cfg.Embedding.Dimensions
			}

			repo, err := a.openRepository()
			if err != nil {
				return err
			}
			defer repo.Close()

			if err := repo.Migrate(cmd.Context(), dims); err != nil {
				return err
			}
			log.Info().Int("embedding_dimensions", dims).Msg("Schema applied")
			return nil
		},
	}

	cmd.Flags().IntVar(&dims, "dimensions", 0, "Embedding vector size (default EMBEDDING_DIMENSIONS)")
	return cmd
}
