package progress

import (
	"math"

	"github.com/halu23489/genba/internal/model"
)

// Rollup は日報一覧からプロジェクトの累計出来高・進捗率・工事段階・実績原価を再計算する。
//
// PlannedQuantity が 0 の場合は最新日報の ProgressTotal を計画数量とし、
// その値を PlannedQuantity に書き戻す（以降の集計でも使われ続ける）。
func Rollup(p model.Project, records []model.DailyRecord) model.Project {
	cumulative := CumulativeQuantity(p.ProgressMode, records)

	planned := p.PlannedQuantity
	if planned == 0 && len(records) > 0 {
		planned = records[len(records)-1].ProgressTotal
	}

	pct := 0.0
	if planned != 0 {
		pct = roundTenth(clamp(cumulative/planned*100, 0, 100))
	}

	actual := 0
	for _, r := range records {
		actual = addYen(actual, r.CostTotal)
	}

	p.PlannedQuantity = planned
	p.CumulativeQty = cumulative
	p.ProgressPct = pct
	p.Phase = PhaseFor(pct, cumulative)
	p.ActualCost = actual
	return p
}

// CumulativeQuantity returns the quantity completed so far under the given mode.
func CumulativeQuantity(mode model.ProgressMode, records []model.DailyRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	if mode == model.ProgressModeCumulative {
		return records[len(records)-1].ProgressValue
	}
	var sum float64
	for _, r := range records {
		sum += r.ProgressValue
	}
	return sum
}

// PhaseFor derives the project phase from the rolled-up values.
func PhaseFor(pct, cumulative float64) model.Phase {
	switch {
	case pct >= 100:
		return model.PhaseComplete
	case cumulative > 0:
		return model.PhaseInProgress
	default:
		return model.PhasePreConstruction
	}
}

// Append は日報の費用を計算して一覧の末尾に追加し、集計し直した結果を返す。
// 引数の records は変更しない。
func Append(p model.Project, records []model.DailyRecord, rec model.DailyRecord, rates RateTable) (model.Project, []model.DailyRecord) {
	cost := ComputeCost(rates, rec.Personnel, rec.WorkTime, rec.Machinery)
	rec.CostPersonnel = cost.Personnel
	rec.CostMachinery = cost.Machinery
	rec.CostTotal = cost.Total
	if rec.ProgressTotal == 0 {
		rec.ProgressTotal = p.PlannedQuantity
	}
	rec.ProjectID = p.ID
	rec.Seq = len(records) + 1

	out := make([]model.DailyRecord, len(records), len(records)+1)
	copy(out, records)
	out = append(out, rec)

	return Rollup(p, out), out
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
