package main

import (
	"fmt"

	"github.com/OWDB/OWDB-Backend/internal/seeds"
	"github.com/OWDB/OWDB-Backend/internal/wrestlers"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the wrestlers table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, closeDB, err := a.openDB()
			if err != nil {
				return err
			}
			defer closeDB()

			if err := wrestlers.Migrate(conn); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrated wrestlers table")
			return nil
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	var (
		csvPath   string
		namespace string
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "seed-wrestlers",
		Short: "Create bare profiles for roster names missing from the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if namespace == "" {
				namespace = a.cfg.RosterNamespace
			}
			ns, err := uuid.Parse(namespace)
			if err != nil {
				return fmt.Errorf("invalid --namespace: %w", err)
			}

			rows, err := seeds.ParseRosterFile(csvPath)
			if err != nil {
				return fmt.Errorf("parse %s: %w", csvPath, err)
			}

			conn, closeDB, err := a.openDB()
			if err != nil {
				return err
			}
			defer closeDB()

			_, err = seeds.SeedRoster(cmd.Context(), wrestlers.NewRepository(conn), rows, ns, dryRun, cmd.OutOrStdout(), a.logger)
			return err
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "Roster CSV with a name column (required)")
	cmd.Flags().StringVar(&namespace, "namespace", "", "UUID namespace for wrestler ids (default ROSTER_NAMESPACE)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be created without writing")
	_ = cmd.MarkFlagRequired("csv")
	return cmd
}
