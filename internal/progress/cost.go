// Package progress is the daily-progress cost and aggregation engine.
// Everything here is a pure function of its inputs and the master data; the
// callers own persistence.
package progress

import "math"

// RateTable is the master data the cost calculator reads.
type RateTable interface {
	PersonnelRate() int
	MachineRate(name string) (int, bool)
}

// 1 件の日報で受け付ける人数・作業時間の上限
const (
	MaxPersonnel = 1000
	MaxWorkHours = 24
)

// Cost は 1 日分の労務費・機械費・合計（円）
type Cost struct {
	Personnel int `json:"personnel"`
	Machinery int `json:"machinery"`
	Total     int `json:"total"`
}

// ComputeCost は人数・作業時間・使用重機から費用を計算する。
// マスタにない重機名は 0 円として扱う（エラーにしない）。
// 労務費・機械費はそれぞれ円未満を四捨五入し、合計はその和。
func ComputeCost(rates RateTable, personnel int, hours float64, machines []string) Cost {
	if personnel < 0 {
		personnel = 0
	}
	if hours < 0 || math.IsNaN(hours) || math.IsInf(hours, 0) {
		hours = 0
	}

	personnelCost := roundYen(float64(personnel) * hours * float64(rates.PersonnelRate()))

	var machineYen float64
	for _, name := range machines {
		rate, ok := rates.MachineRate(name)
		if !ok {
			continue
		}
		machineYen += hours * float64(rate)
	}
	machineCost := roundYen(machineYen)

	return Cost{
		Personnel: personnelCost,
		Machinery: machineCost,
		Total:     addYen(personnelCost, machineCost),
	}
}

// MaxYen は 1 項目あたりの費用の上限。float64 で整数を正確に表せる範囲に収め、
// 合計や累計が int64 を超えないようにする。
const MaxYen = 1 << 53

// roundYen rounds half away from zero, which is half-up for the
// non-negative amounts produced here. Results saturate at [0, MaxYen].
func roundYen(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= MaxYen {
		return MaxYen
	}
	return int(math.Round(v))
}

// addYen は負の値を無視し、math.MaxInt64 で飽和する加算
func addYen(a, b int) int {
	if b <= 0 {
		return a
	}
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}
