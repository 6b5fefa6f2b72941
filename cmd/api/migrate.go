package api

import (
	"fmt"

	"github.com/scienceol/equivalents/internal/boot"
	"github.com/scienceol/equivalents/internal/config"
	"github.com/scienceol/equivalents/pkg/core/reagent"
	"github.com/scienceol/equivalents/pkg/middleware/db"
	"github.com/scienceol/equivalents/pkg/middleware/logger"
	"github.com/scienceol/equivalents/pkg/repo/library"
	"github.com/scienceol/equivalents/pkg/repo/migrate"
	reagentRepo "github.com/scienceol/equivalents/pkg/repo/reagent"
	"github.com/spf13/cobra"
)

func NewMigrate() *cobra.Command {
	var importPath string
	cmd := &cobra.Command{
		Use:          "migrate",
		Long:         "Create the reagent table and optionally seed it from a JSON library",
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			boot.InitPostgres(cmd.Context(), config.Global())
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			gdb := db.DB().DBIns()
			if err := migrate.Table(ctx, gdb); err != nil {
				return err
			}
			if importPath == "" {
				return nil
			}

			rows, err := library.New(importPath).Load(ctx)
			if err != nil {
				return err
			}
			// every row must decode before anything is written
			for _, row := range rows {
				if _, err := reagent.FromRow(row); err != nil {
					return fmt.Errorf("import %s: reagent %q: %w", importPath, row.Name, err)
				}
			}
			if err := reagentRepo.NewReagentRepo(gdb).Save(ctx, rows); err != nil {
				return err
			}
			logger.Infof(ctx, "imported %d reagents from %s", len(rows), importPath)
			fmt.Printf("imported %d reagents\n", len(rows))
			return nil
		},
		PostRunE: func(cmd *cobra.Command, _ []string) error {
			db.ClosePostgres(cmd.Context())
			return nil
		},
	}
	cmd.Flags().StringVar(&importPath, "import", "", "seed the table from a library.json file, replacing its rows")
	return cmd
}
