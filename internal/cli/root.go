package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/halu23489/genba/internal/masterdata"
	"github.com/spf13/cobra"
)

// masterFile is set from --master flag.
var masterFile string

// noColor toggles ANSI color output off when set via --no-color flag.
var noColor bool

// rates is the master data loaded once per invocation.
var rates *masterdata.Table

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "genbactl",
		Short: "genbactl は日報の原価・出来高をオフラインで計算する",
		Long: `genbactl は単価マスタを使って日報の原価を計算し、
日報一覧からプロジェクトの進捗率・工事段階を集計する。`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				color.NoColor = true
			}
			t, err := masterdata.Load(masterFile)
			if err != nil {
				return fmt.Errorf("failed to load master data from %q: %w", masterFile, err)
			}
			rates = t
			return nil
		},
	}
	root.PersistentFlags().StringVar(&masterFile, "master", os.Getenv("MASTER_DATA_FILE"), "単価マスタ YAML (未指定なら組み込みの既定値)")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI color output")

	root.AddCommand(newMachinesCmd(), newCostCmd(), newRollupCmd())
	return root
}

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
