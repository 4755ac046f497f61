package main

import (
	"errors"
	"fmt"

	"github.com/holawaleh/dreamspacefrontend/internal/store"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long:  "Connects to DATABASE_URL, applies pending migrations and prints the schema version.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}
		backend, err := store.SelectBackend(cfg.Database.URL, cfg.Database.UseMocks)
		if err != nil {
			return err
		}
		if backend == store.BackendMemory {
			return errors.New("migrate requires DATABASE_URL and USE_MOCKS unset")
		}

		// Opening a SQL store applies any pending migrations.
		s, err := store.OpenSQLStore(cmd.Context(), cfg.Database.URL, storeOptions(cfg).Pool)
		if err != nil {
			return err
		}
		defer s.Close()

		version, err := store.MigrationVersion(s.DB(), s.Dialect())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s schema at version %d\n", backend, version)
		return nil
	},
}
