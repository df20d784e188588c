package progress

import (
	"math"
	"testing"

	"github.com/halu23489/genba/internal/masterdata"
	"github.com/halu23489/genba/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRates(t *testing.T) *masterdata.Table {
	t.Helper()
	tbl, err := masterdata.New(6000, []model.Machine{
		{ID: "bh02", Name: "0.2m3バックホウ", HourlyRate: 12000},
		{ID: "dt4", Name: "4tダンプ", HourlyRate: 8000},
		{ID: "pc", Name: "プレートコンパクター", HourlyRate: 2333},
	})
	require.NoError(t, err)
	return tbl
}

func TestComputeCost_BackhoeScenario(t *testing.T) {
	c := ComputeCost(testRates(t), 2, 3, []string{"0.2m3バックホウ"})

	assert.Equal(t, 36000, c.Personnel)
	assert.Equal(t, 36000, c.Machinery)
	assert.Equal(t, 72000, c.Total)
}

func TestComputeCost_ZeroPersonnel(t *testing.T) {
	rates := testRates(t)
	for _, hours := range []float64{0, 1.5, 8} {
		c := ComputeCost(rates, 0, hours, []string{"4tダンプ"})
		assert.Equal(t, 0, c.Personnel)
		assert.Equal(t, c.Machinery, c.Total)
		assert.Equal(t, int(hours*8000), c.Machinery)
	}
}

func TestComputeCost_UnknownMachineCostsNothing(t *testing.T) {
	c := ComputeCost(testRates(t), 3, 2.5, []string{"UnknownMachine"})

	assert.Equal(t, 45000, c.Personnel)
	assert.Equal(t, 0, c.Machinery)
	assert.Equal(t, 45000, c.Total)
}

func TestComputeCost_MultipleMachinesAndDuplicates(t *testing.T) {
	c := ComputeCost(testRates(t), 1, 2, []string{"0.2m3バックホウ", "4tダンプ", "4tダンプ"})

	assert.Equal(t, 12000, c.Personnel)
	assert.Equal(t, 2*12000+2*8000+2*8000, c.Machinery)
}

func TestComputeCost_RoundsHalfUp(t *testing.T) {
	// 0.5h * 2333 = 1166.5 -> 1167
	c := ComputeCost(testRates(t), 0, 0.5, []string{"プレートコンパクター"})
	assert.Equal(t, 1167, c.Machinery)

	// 1 * 0.25h * 6000 = 1500 exactly
	c = ComputeCost(testRates(t), 1, 0.25, nil)
	assert.Equal(t, 1500, c.Personnel)
}

func TestComputeCost_TotalIsSumOfParts(t *testing.T) {
	rates := testRates(t)
	machines := []string{"0.2m3バックホウ", "プレートコンパクター", "UnknownMachine"}
	for p := 0; p <= 7; p++ {
		for _, hours := range []float64{0, 0.1, 0.33, 1.75, 7.9, 12} {
			c := ComputeCost(rates, p, hours, machines)
			assert.Equal(t, c.Personnel+c.Machinery, c.Total, "p=%d hours=%v", p, hours)
			assert.GreaterOrEqual(t, c.Personnel, 0)
			assert.GreaterOrEqual(t, c.Machinery, 0)
		}
	}
}

func TestComputeCost_NegativeInputsClampToZero(t *testing.T) {
	c := ComputeCost(testRates(t), -3, -2, []string{"0.2m3バックホウ"})
	assert.Equal(t, Cost{}, c)
}

func TestComputeCost_HugeHoursSaturate(t *testing.T) {
	c := ComputeCost(testRates(t), 2, NonNegFloat("1e15"), []string{"0.2m3バックホウ"})

	assert.Equal(t, MaxYen, c.Personnel)
	assert.Equal(t, MaxYen, c.Machinery)
	assert.Equal(t, 2*MaxYen, c.Total)
}

func TestRollup_ActualCostSaturates(t *testing.T) {
	p := model.NewProject("p1")
	records := []model.DailyRecord{
		{Seq: 1, CostTotal: math.MaxInt64 - 10},
		{Seq: 2, CostTotal: 100},
	}

	got := Rollup(*p, records)
	assert.Equal(t, math.MaxInt64, got.ActualCost)
}
