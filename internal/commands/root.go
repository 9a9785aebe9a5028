package commands

import (
	"context"
	"fmt"

	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/core/services"
	"github.com/SscSPs/bookkeeping_app/internal/platform/config"
	"github.com/SscSPs/bookkeeping_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/bookkeeping_app/pkg/database"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time with -ldflags.
var Version = "dev"

// deps are the collaborators a command needs once configuration is loaded.
type deps struct {
	// reporting opens a reporting service. The returned func releases it.
	reporting func(ctx context.Context, cfg *config.Config) (portssvc.ReportingService, func(), error)
	// migrate applies schema migrations.
	migrate func(cfg *config.Config, dir database.Direction) (bool, error)
}

func defaultDeps() deps {
	return deps{
		reporting: func(ctx context.Context, cfg *config.Config) (portssvc.ReportingService, func(), error) {
			pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
			if err != nil {
				return nil, nil, err
			}
			repos := pgsql.NewRepositoryProvider(pool)
			svc := services.NewReportingService(repos.AccountRepo, repos.LedgerRepo)
			return svc, func() { database.ClosePgxPool(pool) }, nil
		},
		migrate: func(cfg *config.Config, dir database.Direction) (bool, error) {
			return database.Migrate(cfg.DatabaseURL, cfg.MigrationsPath, dir)
		},
	}
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	return newRootCommand(viper.New(), defaultDeps())
}

func newRootCommand(v *viper.Viper, d deps) *cobra.Command {
	var cfg *config.Config

	rootCmd := &cobra.Command{
		Use:     "ledgerctl",
		Short:   "Operator tools for the bookkeeping ledger",
		Version: Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.SetDefaults(v)
			v.AutomaticEnv()
			cfg = config.FromViper(v)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("database-url", "", "PostgreSQL connection URL (env PGSQL_URL)")
	flags.String("migrations-path", "", "migration source (env MIGRATIONS_PATH)")
	for key, flag := range map[string]string{
		"PGSQL_URL":       "database-url",
		"MIGRATIONS_PATH": "migrations-path",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", flag, err))
		}
	}

	getConfig := func() *config.Config { return cfg }
	rootCmd.AddCommand(newMigrateCommand(getConfig, d))
	rootCmd.AddCommand(newReportCommand(getConfig, d))

	return rootCmd
}
