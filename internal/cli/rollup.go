package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/halu23489/genba/internal/model"
	"github.com/halu23489/genba/internal/progress"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// rollupInput は rollup コマンドが読む YAML
//
//	project:
//	  site_name: 〇〇地区造成工事
//	  planned_quantity: 100
//	records:
//	  - date: "2024-05-01"
//	    personnel: 2
//	    work_time: 3
//	    machinery: [0.2m3バックホウ]
//	    progress_value: 30
type rollupInput struct {
	Project model.Project       `yaml:"project"`
	Records []model.DailyRecord `yaml:"records"`
}

func newRollupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rollup <file.yaml|->",
		Short: "日報一覧から原価と進捗を集計する",
		Long: `YAML の日報一覧を順に追加したときの原価・累計出来高・進捗率・工事段階を表示する。
日報の原価はファイルの値ではなく単価マスタから計算し直す。`,
		Args: cobra.ExactArgs(1),
		RunE: runRollup,
	}
}

func runRollup(cmd *cobra.Command, args []string) error {
	in, err := readRollupInput(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}

	p := in.Project
	if p.ProgressMode == "" {
		p.ProgressMode = model.ProgressModeIncremental
	}
	if !p.ProgressMode.Valid() {
		return fmt.Errorf("unknown progress_mode %q", p.ProgressMode)
	}
	p = progress.Rollup(p, nil)

	out := cmd.OutOrStdout()
	var records []model.DailyRecord
	for _, rec := range in.Records {
		p, records = progress.Append(p, records, rec, rates)
		added := records[len(records)-1]
		fmt.Fprintf(out, "#%-3d %-10s %10s  累計 %8.2f  %5.1f%%  %s\n",
			added.Seq, added.Date, yen(added.CostTotal), p.CumulativeQty, p.ProgressPct, phaseColor(p.Phase))
	}

	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", bold("現場:"), p.SiteName)
	fmt.Fprintf(out, "%s %s / 予算 %s\n", bold("実績原価:"), yen(p.ActualCost), yen(p.Budget.Total()))
	fmt.Fprintf(out, "%s %.1f%% (%s)\n", bold("進捗率:"), p.ProgressPct, phaseColor(p.Phase))
	return nil
}

func readRollupInput(stdin io.Reader, path string) (*rollupInput, error) {
	var b []byte
	var err error
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var in rollupInput
	if err := yaml.Unmarshal(b, &in); err != nil {
		return nil, fmt.Errorf("yaml parsing error: %w", err)
	}
	return &in, nil
}

func phaseColor(phase model.Phase) string {
	switch phase {
	case model.PhaseComplete:
		return color.GreenString(string(phase))
	case model.PhaseInProgress:
		return color.CyanString(string(phase))
	default:
		return color.New(color.Faint).Sprint(string(phase))
	}
}
