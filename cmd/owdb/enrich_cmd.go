package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/OWDB/OWDB-Backend/internal/enrich"
	"github.com/OWDB/OWDB-Backend/internal/wrestlers"
	"github.com/spf13/cobra"
)

func newEnrichCmd(a *app) *cobra.Command {
	var (
		batch  int
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "enrich-wrestlers",
		Short: "Fill in missing wrestler profile details from the batch catalogue",
		Long: `Runs every batch in catalogue order, or only the batch given with --batch.
Existing values are kept; only blank fields are filled, except "about" which
is always replaced. Wrestlers that are not in the database are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogue, err := enrich.OpenCatalogue(a.cfg.DataDir)
			if err != nil {
				return err
			}

			conn, closeDB, err := a.openDB()
			if err != nil {
				return err
			}
			defer closeDB()

			repo := wrestlers.NewRepository(conn)
			engine := enrich.NewEngine(repo,
				enrich.WithLogger(a.logger),
				enrich.WithWriteRate(a.cfg.WritesPerSecond),
				enrich.WithDryRun(dryRun),
			)

			_, err = enrich.NewDriver(engine, repo, catalogue, cmd.OutOrStdout(), a.logger).Run(cmd.Context(), batch)
			return err
		},
	}

	cmd.Flags().IntVar(&batch, "batch", 0, "Run only this batch (0 runs all)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would change without saving")
	return cmd
}

func newBatchesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "batches",
		Short: "List the enrichment batches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogue, err := enrich.OpenCatalogue(a.cfg.DataDir)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tKEY\tLABEL\tRECORDS")
			for _, b := range catalogue.Batches() {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", b.ID, b.Key, b.Label, len(b.Records))
			}
			return tw.Flush()
		},
	}
}
