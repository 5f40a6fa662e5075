package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	partnerapp "github.com/optica/backend/internal/application/partner"
	"github.com/optica/backend/internal/infrastructure/event"
	"github.com/optica/backend/internal/infrastructure/logger"
	"github.com/optica/backend/internal/infrastructure/persistence"
	"github.com/optica/backend/internal/interfaces/tui"
)

func newRegisterCmd(a *app) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a customer interactively",
		Long: `Open the registration form.

CPF, phone and CEP are masked as you type. Completing the CEP looks up
the address and fills the street, neighborhood, city and state that are
still empty. Requires database access (OPTICA_DATABASE_*).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := persistence.NewDatabaseWithLogger(&a.cfg.Database,
				logger.NewGormLogger(a.log, logger.GormLevel(a.logLevel), 200*time.Millisecond))
			if err != nil {
				return err
			}
			defer db.Close()

			cepClient, err := a.postalCodeClient("")
			if err != nil {
				return err
			}

			bus := event.NewInMemoryEventBus(a.log)
			bus.Subscribe(event.NewAuditHandler(a.log))
			if err := bus.Start(cmd.Context()); err != nil {
				return err
			}
			defer func() {
				if err := bus.Stop(cmd.Context()); err != nil {
					a.log.Warn("Failed to stop event bus", zap.Error(err))
				}
			}()

			service := partnerapp.NewCustomerService(
				persistence.NewGormCustomerRepository(db.DB),
				partnerapp.WithAddressLookup(cepClient),
				partnerapp.WithEventPublisher(bus),
				partnerapp.WithLogger(a.log.Named("customers")),
			)

			form := tui.NewRegisterForm(cepClient, service, tui.WithRequestTimeout(timeout))
			final, err := tea.NewProgram(form,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			if err != nil {
				return err
			}

			if created := final.(tui.RegisterForm).Created(); created != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (%s) as %s\n",
					created.Name, created.TaxIDMasked, created.ID)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Timeout for each lookup and save")
	return cmd
}
