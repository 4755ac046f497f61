package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/holawaleh/dreamspacefrontend/internal/seed"
	"github.com/holawaleh/dreamspacefrontend/internal/store"
	"github.com/spf13/cobra"
)

var seedForce bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo catalog into the database",
	Long:  "Inserts the demo tech posts, tutorials, software and products. Skips a database that already holds catalog data unless --force is given.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}

		s, backend, err := store.Open(cmd.Context(), storeOptions(cfg))
		if err != nil {
			return err
		}
		defer s.Close()
		if backend == store.BackendMemory {
			return errors.New("seed requires DATABASE_URL; the memory store is seeded at startup")
		}

		if !seedForce {
			empty, err := seed.Empty(cmd.Context(), s)
			if err != nil {
				return fmt.Errorf("check catalog: %w", err)
			}
			if !empty {
				slog.Info("catalog already populated, skipping seed", "backend", string(backend))
				fmt.Fprintln(cmd.OutOrStdout(), "catalog already populated; use --force to seed anyway")
				return nil
			}
		}

		counts, err := seed.Seed(cmd.Context(), s)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d tech posts, %d tutorials, %d software, %d products\n",
			counts.TechPosts, counts.Tutorials, counts.Software, counts.Products)
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "Seed even when the catalog already has data")
}
