package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/optica/backend/internal/infrastructure/config"
	"github.com/optica/backend/internal/infrastructure/locale"
	"github.com/optica/backend/internal/infrastructure/logger"
	"github.com/optica/backend/internal/infrastructure/postalcode"
)

// app holds what the subcommands share; it is filled by the root pre-run
type app struct {
	logLevel string
	cfg      *config.Config
	log      *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "optica",
		Short: "Front desk tools for the optical store",
		Long: `Front desk tools for the optical store.

Available subcommands:
  mask     - Format CPF, phone and CEP values
  format   - Render currency and dates in the store locale
  cep      - Look up the address of a postal code
  register - Register a customer interactively`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				logger.Sync(a.log)
			}
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newMaskCmd(),
		newFormatCmd(a),
		newCEPCmd(a),
		newRegisterCmd(a),
	)
	return root
}

func (a *app) setup(*cobra.Command, []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(&logger.Config{
		Level:      a.logLevel,
		Format:     "console",
		Output:     "stderr",
		TimeFormat: cfg.Log.TimeFormat,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.cfg, a.log = cfg, log
	return nil
}

func (a *app) formatter(timezone string) (*locale.Formatter, error) {
	lc := locale.Config{
		Language: a.cfg.Locale.Language,
		Currency: a.cfg.Locale.Currency,
		Timezone: a.cfg.Locale.Timezone,
	}
	if timezone != "" {
		lc.Timezone = timezone
	}
	return locale.New(lc)
}

func (a *app) postalCodeClient(baseURL string) (*postalcode.Client, error) {
	if baseURL == "" {
		baseURL = a.cfg.PostalCode.BaseURL
	}
	return postalcode.NewClient(&postalcode.Config{BaseURL: baseURL}, a.log)
}
