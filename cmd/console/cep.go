package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/optica/backend/internal/domain/shared/mask"
	"github.com/optica/backend/internal/infrastructure/postalcode"
)

// errLookupFailed marks a lookup that did not return an address; the reason
// was already printed
var errLookupFailed = errors.New("postal code lookup failed")

func newCEPCmd(a *app) *cobra.Command {
	var (
		baseURL string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:     "cep <code>",
		Short:   "Look up the address of a postal code",
		Example: "  optica cep 01001-000",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.postalCodeClient(baseURL)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			out := cmd.OutOrStdout()
			res := client.Resolve(ctx, args[0])
			switch {
			case res.Found():
				addr := res.Address
				fmt.Fprintf(out, "CEP:          %s\n", addr.FormattedPostalCode())
				fmt.Fprintf(out, "Street:       %s\n", addr.Street())
				if addr.Complement() != "" {
					fmt.Fprintf(out, "Complement:   %s\n", addr.Complement())
				}
				fmt.Fprintf(out, "Neighborhood: %s\n", addr.Neighborhood())
				fmt.Fprintf(out, "City:         %s/%s\n", addr.City(), addr.State())
				return nil
			case res.Status == postalcode.StatusNotFound:
				if errors.Is(res.Err, postalcode.ErrInvalidCode) {
					fmt.Fprintf(out, "%s: postal code must have 8 digits\n", mask.FormatCEP(args[0]))
				} else {
					fmt.Fprintf(out, "%s: not found\n", mask.FormatCEP(args[0]))
				}
			default:
				fmt.Fprintf(out, "%s: address service unavailable\n", mask.FormatCEP(args[0]))
			}
			return errLookupFailed
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "Lookup service URL (default from configuration)")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	return cmd
}
