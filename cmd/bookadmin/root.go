package main

import (
	"context"
	"fmt"
	"io"

	"github.com/raywall/book-library-toolkit/envloader"
	"github.com/raywall/book-library-toolkit/library"
	"github.com/raywall/book-library-toolkit/pkg/admin"
	"github.com/raywall/book-library-toolkit/pkg/config"
	"github.com/raywall/book-library-toolkit/pkg/console"
	"github.com/raywall/book-library-toolkit/pkg/logger"
	"github.com/raywall/book-library-toolkit/pkg/metrics"
	"github.com/raywall/book-library-toolkit/pkg/observability"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// cli guarda as flags globais e o estado montado no PersistentPreRunE.
type cli struct {
	stdout, stderr io.Writer
	lookup         envloader.LookupFunc

	cfgFile   string
	logLevel  string
	logFormat string

	cfg     *config.AppConfig
	logger  zerolog.Logger
	metrics observability.Provider
	console *console.Console

	// openStore é substituído nos testes.
	openStore func(ctx context.Context) (library.DocumentStore, error)
}

func newRootCmd(stdout, stderr io.Writer, lookup envloader.LookupFunc) *cobra.Command {
	c := &cli{stdout: stdout, stderr: stderr, lookup: lookup}
	c.openStore = c.defaultStore

	root := &cobra.Command{
		Use:   "bookadmin",
		Short: "Administrative tasks for the book library document database",
		Long: `bookadmin seeds, cleans and inspects the book library collections.

Available commands:
  insert  - Insert book###.json files into a collection
  cleanup - Delete every document (or those matching --where) from collections
  remove  - Delete a range of book ids
  blank   - Write placeholder book files to the data directory
  list    - List the books of a collection sorted by title
  sign    - Print the authorization token of a REST request`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.metrics != nil {
				return c.metrics.Close()
			}
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "YAML configuration file (environment variables override it)")
	flags.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&c.logFormat, "log-format", "", "log format: json or console")

	root.AddCommand(
		c.insertCmd(),
		c.cleanupCmd(),
		c.removeCmd(),
		c.blankCmd(),
		c.listCmd(),
		c.signCmd(),
	)
	return root
}

// setup carrega a configuração e monta logger, métricas e console.
// Qualquer erro aqui encerra o processo com status 1.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithLookup(c.cfgFile, c.lookup)
	if err != nil {
		return fmt.Errorf("configuração inválida: %w", err)
	}
	if c.logLevel != "" {
		cfg.Logging.Level = c.logLevel
	}
	if c.logFormat != "" {
		cfg.Logging.Format = c.logFormat
	}
	c.cfg = cfg
	c.logger = logger.Configure(cfg.Logging, c.stderr)

	provider, err := observability.SetupMetrics(cfg.Metrics, c.logger)
	if err != nil {
		return err
	}
	c.metrics = provider
	c.console = console.New(c.stdout)

	c.logger.Debug().
		Str("command", cmd.Name()).
		Str("driver", cfg.Store.Driver).
		Str("database", cfg.Cosmos.Database).
		Msg("configuração carregada")
	return nil
}

// newAdmin monta o Admin. Sem store, apenas operações locais funcionam.
func (c *cli) newAdmin(store library.DocumentStore) *admin.Admin {
	return admin.New(admin.Options{
		Store:   store,
		Console: c.console,
		Logger:  c.logger,
		Batch: batchOptions(c.cfg.Batch,
			metrics.NewRecorder(c.metrics, c.logger)),
		PartitionKeyFields: c.cfg.Cosmos.PartitionKeyFields,
	})
}
