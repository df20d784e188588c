package progress

import (
	"math"
	"strconv"
	"strings"

	"github.com/halu23489/genba/internal/model"
	"golang.org/x/text/width"
)

// normalizeNumber trims spaces, narrows full-width characters typed with a
// Japanese IME ("１２．５" -> "12.5") and drops thousands separators.
func normalizeNumber(s string) string {
	s = width.Narrow.String(strings.TrimSpace(s))
	return strings.ReplaceAll(s, ",", "")
}

// FloatOr parses s as a float. Blank, non-numeric, NaN and Inf input yields def.
func FloatOr(s string, def float64) float64 {
	s = normalizeNumber(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// IntOr parses s as an integer. "3.0" style input is truncated to 3.
// Anything unparsable yields def.
func IntOr(s string, def int) int {
	if v, ok := parseInt(s); ok {
		return v
	}
	return def
}

func parseInt(s string) (int, bool) {
	s = normalizeNumber(s)
	if s == "" {
		return 0, false
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > math.MaxInt32 {
		return 0, false
	}
	return int(math.Trunc(v)), true
}

// NonNegFloat is FloatOr with negative results clamped to 0.
func NonNegFloat(s string) float64 {
	return math.Max(FloatOr(s, 0), 0)
}

// NonNegInt is IntOr with negative results clamped to 0.
func NonNegInt(s string) int {
	return max(IntOr(s, 0), 0)
}

// OptionalInt returns nil for blank or unparsable input.
func OptionalInt(s string) *int {
	v, ok := parseInt(s)
	if !ok {
		return nil
	}
	return &v
}

// OptionalFloat returns nil for blank or unparsable input.
func OptionalFloat(s string) *float64 {
	s = normalizeNumber(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ParseCycleEntries は並列に送られた工程名・回数・進捗率から CycleEntry を作る。
// 工程名が空の位置は捨てる。回数・進捗率が空なら nil（未記録）。
// 配列の長さが揃っていない場合、足りない位置は空として扱う。
func ParseCycleEntries(steps, counts, progresses []string) []model.CycleEntry {
	entries := make([]model.CycleEntry, 0, len(steps))
	for i, step := range steps {
		step = strings.TrimSpace(step)
		if step == "" {
			continue
		}
		entries = append(entries, model.CycleEntry{
			Step:     step,
			Count:    OptionalInt(at(counts, i)),
			Progress: OptionalFloat(at(progresses, i)),
		})
	}
	return entries
}

// ParseMaterials は並列に送られた材料名・数量から Material を作る。
// 材料名が空の位置は捨て、数量は NonNegFloat で解釈する。
func ParseMaterials(names, quantities []string) []model.Material {
	out := make([]model.Material, 0, len(names))
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, model.Material{Name: name, Quantity: NonNegFloat(at(quantities, i))})
	}
	return out
}

// CleanList trims each value and drops blanks, keeping order.
func CleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}
