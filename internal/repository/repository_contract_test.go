package repository

import (
	"context"
	"testing"

	"github.com/halu23489/genba/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runProjectRepositoryContract exercises the behaviour every ProjectRepository must share.
func runProjectRepositoryContract(t *testing.T, repo ProjectRepository, projectID string) {
	ctx := context.Background()

	t.Run("get missing returns ErrNotFound", func(t *testing.T) {
		_, err := repo.Get(ctx, projectID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("save then get", func(t *testing.T) {
		p := model.NewProject(projectID)
		p.SiteName = "〇〇地区造成工事"
		p.TaskName = "掘削工"
		p.PlannedQuantity = 120
		p.PlannedUnit = "m3"
		p.CycleSteps = []string{"掘削", "積込"}
		p.Budget = model.Budget{Labor: 100000, Machine: 200000, Materials: 50000}
		require.NoError(t, repo.Save(ctx, p))

		got, err := repo.Get(ctx, projectID)
		require.NoError(t, err)
		assert.Equal(t, "〇〇地区造成工事", got.SiteName)
		assert.Equal(t, 120.0, got.PlannedQuantity)
		assert.Equal(t, []string{"掘削", "積込"}, got.CycleSteps)
		assert.Equal(t, []string{}, got.CycleChecks)
		assert.Equal(t, 350000, got.Budget.Total())
		assert.Equal(t, model.PhasePreConstruction, got.Phase)
		assert.Equal(t, model.ProgressModeIncremental, got.ProgressMode)
	})

	t.Run("list records empty", func(t *testing.T) {
		records, err := repo.ListRecords(ctx, projectID)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("append record persists record and project together", func(t *testing.T) {
		p, err := repo.Get(ctx, projectID)
		require.NoError(t, err)
		p.CumulativeQty = 10
		p.ProgressPct = 8.3
		p.Phase = model.PhaseInProgress
		p.ActualCost = 72000

		count := 3
		rec := &model.DailyRecord{
			ProjectID:     projectID,
			Seq:           1,
			Date:          "2024-05-01",
			Personnel:     2,
			Machinery:     []string{"0.2m3バックホウ"},
			WorkTime:      3,
			WorkContent:   []string{"掘削"},
			ProgressUnit:  "m3",
			ProgressValue: 10,
			ProgressTotal: 120,
			Cycles:        []model.CycleEntry{{Step: "掘削", Count: &count}},
			Weather:       "晴れ",
			CostPersonnel: 36000,
			CostMachinery: 36000,
			CostTotal:     72000,
		}
		require.NoError(t, repo.AppendRecord(ctx, p, rec))
		assert.NotEmpty(t, rec.ID)

		records, err := repo.ListRecords(ctx, projectID)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, 72000, records[0].CostTotal)
		assert.Equal(t, []string{"0.2m3バックホウ"}, records[0].Machinery)
		require.Len(t, records[0].Cycles, 1)
		require.NotNil(t, records[0].Cycles[0].Count)
		assert.Equal(t, 3, *records[0].Cycles[0].Count)
		assert.Nil(t, records[0].Cycles[0].Progress)

		got, err := repo.Get(ctx, projectID)
		require.NoError(t, err)
		assert.Equal(t, model.PhaseInProgress, got.Phase)
		assert.Equal(t, 72000, got.ActualCost)
	})

	t.Run("append with stale seq is a conflict and writes nothing", func(t *testing.T) {
		p, err := repo.Get(ctx, projectID)
		require.NoError(t, err)
		p.ActualCost = 999999

		err = repo.AppendRecord(ctx, p, &model.DailyRecord{ProjectID: projectID, Seq: 1})
		assert.ErrorIs(t, err, ErrConflict)

		records, err := repo.ListRecords(ctx, projectID)
		require.NoError(t, err)
		assert.Len(t, records, 1)
		got, err := repo.Get(ctx, projectID)
		require.NoError(t, err)
		assert.Equal(t, 72000, got.ActualCost)
	})

	t.Run("save rollup checks the stored record count", func(t *testing.T) {
		p, err := repo.Get(ctx, projectID)
		require.NoError(t, err)

		p.TaskName = "床掘り"
		assert.ErrorIs(t, repo.SaveRollup(ctx, p, 0), ErrConflict)
		got, err := repo.Get(ctx, projectID)
		require.NoError(t, err)
		assert.Equal(t, "掘削工", got.TaskName)

		require.NoError(t, repo.SaveRollup(ctx, p, 1))
		got, err = repo.Get(ctx, projectID)
		require.NoError(t, err)
		assert.Equal(t, "床掘り", got.TaskName)
	})
}

func runCycleTimeRepositoryContract(t *testing.T, repo CycleTimeRepository, projectID string) {
	ctx := context.Background()

	list, err := repo.List(ctx, projectID)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, repo.Add(ctx, &model.CycleTimeRecord{ProjectID: projectID, Step: "掘削", Duration: "00:42.5", Seconds: 42.5}))
	require.NoError(t, repo.Add(ctx, &model.CycleTimeRecord{ProjectID: projectID, Step: "旋回", Duration: "00:10.0", Seconds: 10}))

	list, err = repo.List(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "掘削", list[0].Step)
	assert.Equal(t, "旋回", list[1].Step)
	assert.NotEmpty(t, list[0].ID)

	require.NoError(t, repo.Clear(ctx, projectID))
	list, err = repo.List(ctx, projectID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func runWorkMasterRepositoryContract(t *testing.T, repo WorkMasterRepository, projectID string) {
	ctx := context.Background()

	_, err := repo.Get(ctx, projectID)
	assert.ErrorIs(t, err, ErrNotFound)

	wm := model.NewWorkMaster(projectID)
	wm.Basic = model.WorkMasterBasic{SiteName: "〇〇地区造成工事", Period: "2024/05-2024/09", Contractor: "〇〇建設"}
	wm.Detail = model.WorkMasterDetail{
		Materials:    []model.Material{{Name: "砕石 RC-40", Quantity: 12.5}},
		HeavyMachine: "0.2m3バックホウ",
		PersonCount:  3,
		WorkUnit:     "m3",
	}
	require.NoError(t, repo.Save(ctx, wm))

	got, err := repo.Get(ctx, projectID)
	require.NoError(t, err)
	assert.Equal(t, wm.Basic, got.Basic)
	assert.Equal(t, wm.Detail, got.Detail)

	wm.Detail.Materials = nil
	wm.Detail.PersonCount = 5
	require.NoError(t, repo.Save(ctx, wm))
	got, err = repo.Get(ctx, projectID)
	require.NoError(t, err)
	assert.Equal(t, []model.Material{}, got.Detail.Materials)
	assert.Equal(t, 5, got.Detail.PersonCount)
}
