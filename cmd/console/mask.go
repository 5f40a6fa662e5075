package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/optica/backend/internal/domain/shared/mask"
	"github.com/optica/backend/internal/interfaces/tui"
)

func newMaskCmd() *cobra.Command {
	var (
		unmask      bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "mask <cpf|phone|cep> [value]",
		Short: "Format a CPF, phone or CEP value",
		Long: `Format a value with the mask for its kind.

Non-digits are dropped and excess digits truncated, so partial input
renders a valid prefix. With --interactive the value is typed into a
masked input instead of passed as an argument.`,
		Example: `  optica mask cpf 52998224725
  optica mask phone "11 98765 4321" --unmask
  optica mask cep -i`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := mask.ParseKind(args[0])
			if err != nil {
				return err
			}

			var value string
			switch {
			case interactive:
				p, err := tea.NewProgram(tui.NewPrompt(kind.Label(), tui.NewMaskedInput(kind.Label(), kind)),
					tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.ErrOrStderr())).Run()
				if err != nil {
					return err
				}
				prompt := p.(tui.Prompt)
				if prompt.Cancelled() {
					return nil
				}
				value = prompt.Input().Display()
			case len(args) == 2:
				value = args[1]
			default:
				return fmt.Errorf("a value is required unless --interactive is set")
			}

			masked := mask.Format(kind, value)
			out := masked
			if unmask {
				out = mask.Unmask(masked)
			}
			if !mask.IsComplete(kind, masked) {
				out += " (incomplete)"
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&unmask, "unmask", false, "Print digits only")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Type the value into a masked input")
	return cmd
}
