package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newMachinesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "machines",
		Short:   "単価マスタの人件費単価と機械一覧を表示する",
		Aliases: []string{"rates"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			bold := color.New(color.Bold).SprintFunc()
			fmt.Fprintf(out, "%s %s/h\n", bold("人件費単価:"), yen(rates.PersonnelRate()))
			for _, m := range rates.Machines() {
				fmt.Fprintf(out, "  %-24s %s/h\n", m.Name, color.CyanString(yen(m.HourlyRate)))
			}
			return nil
		},
	}
}
