package commands

import (
	"github.com/spf13/cobra"

	"simplifytour/internal/infra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.close()

			if err := infra.Migrate(rt.db); err != nil {
				return err
			}
			rt.log.Info("database schema is up to date")
			return nil
		},
	}
}
