package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/halu23489/genba/internal/progress"
	"github.com/spf13/cobra"
)

func newCostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cost",
		Short: "1 日分の人件費・機械費を計算する",
		Example: `  genbactl cost --personnel 2 --hours 3 --machine 0.2m3バックホウ
  genbactl cost -p 4 -t 7.5 -m 4tダンプ -m 振動ローラー`,
		Args: cobra.NoArgs,
		RunE: runCost,
	}
	cmd.Flags().StringP("personnel", "p", "0", "作業人数")
	cmd.Flags().StringP("hours", "t", "0", "作業時間 (h)")
	cmd.Flags().StringArrayP("machine", "m", nil, "使用機械 (複数指定可)")
	return cmd
}

func runCost(cmd *cobra.Command, args []string) error {
	personnelStr, err := cmd.Flags().GetString("personnel")
	if err != nil {
		return fmt.Errorf("failed to get personnel flag: %w", err)
	}
	hoursStr, err := cmd.Flags().GetString("hours")
	if err != nil {
		return fmt.Errorf("failed to get hours flag: %w", err)
	}
	machines, err := cmd.Flags().GetStringArray("machine")
	if err != nil {
		return fmt.Errorf("failed to get machine flag: %w", err)
	}
	machines = progress.CleanList(machines)

	cost := progress.ComputeCost(rates, progress.NonNegInt(personnelStr), progress.NonNegFloat(hoursStr), machines)

	out := cmd.OutOrStdout()
	for _, m := range machines {
		if _, ok := rates.MachineRate(m); !ok {
			fmt.Fprintln(out, color.YellowString("warning: %q は単価マスタに無いため 0 円で計算", m))
		}
	}
	fmt.Fprintf(out, "人件費: %s\n", yen(cost.Personnel))
	fmt.Fprintf(out, "機械費: %s\n", yen(cost.Machinery))
	fmt.Fprintf(out, "合計:   %s\n", color.New(color.Bold).Sprint(yen(cost.Total)))
	return nil
}
