package commands

import (
	"fmt"

	"github.com/SscSPs/bookkeeping_app/internal/platform/config"
	"github.com/SscSPs/bookkeeping_app/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand(cfg func() *config.Config, d deps) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the database schema",
	}

	for _, dir := range []database.Direction{database.Up, database.Down} {
		dir := dir
		migrateCmd.AddCommand(&cobra.Command{
			Use:   string(dir),
			Short: fmt.Sprintf("Run all %s migrations", dir),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				applied, err := d.migrate(cfg(), dir)
				if err != nil {
					return err
				}
				if applied {
					fmt.Fprintf(cmd.OutOrStdout(), "migrations %s applied\n", dir)
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "no change")
				}
				return nil
			},
		})
	}
	return migrateCmd
}
