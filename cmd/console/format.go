package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/optica/backend/internal/infrastructure/locale"
)

func newFormatCmd(a *app) *cobra.Command {
	var timezone string

	cmd := &cobra.Command{
		Use:   "format",
		Short: "Render currency and dates in the store locale",
		Long: `Render values the way receipts and screens show them.

Available subcommands:
  currency - Amount with two fraction digits, e.g. R$ 1.234,50
  date     - dd/mm/yyyy
  datetime - dd/mm/yyyy HH:MM

Dates accept ISO-8601 text or Unix milliseconds.`,
	}
	cmd.PersistentFlags().StringVar(&timezone, "timezone", "", "IANA zone dates are rendered in (default from configuration)")

	render := func(fn func(*locale.Formatter, string) string) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			f, err := a.formatter(timezone)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), fn(f, args[0]))
			return nil
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:     "currency <amount>",
			Short:   "Format a monetary amount",
			Example: "  optica format currency 1234.5",
			Args:    cobra.ExactArgs(1),
			RunE: render(func(f *locale.Formatter, v string) string {
				return f.FormatCurrency(v)
			}),
		},
		&cobra.Command{
			Use:     "date <value>",
			Short:   "Format a date as dd/mm/yyyy",
			Example: "  optica format date 2024-03-15\n  optica format date 1710460800000",
			Args:    cobra.ExactArgs(1),
			RunE: render(func(f *locale.Formatter, v string) string {
				return f.FormatDate(locale.DateInput(v))
			}),
		},
		&cobra.Command{
			Use:     "datetime <value>",
			Short:   "Format a timestamp as dd/mm/yyyy HH:MM",
			Example: "  optica format datetime 2024-03-15T14:30:00Z",
			Args:    cobra.ExactArgs(1),
			RunE: render(func(f *locale.Formatter, v string) string {
				return f.FormatDateTime(locale.DateInput(v))
			}),
		},
	)
	return cmd
}
