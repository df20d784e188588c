package service

import (
	"context"
	"errors"
	"testing"

	"github.com/halu23489/genba/internal/model"
	"github.com/halu23489/genba/internal/repository"
)

func TestProjectService_Get_ReturnsExisting(t *testing.T) {
	mock := &mockProjectRepository{
		getFunc: func(_ context.Context, id string) (*model.Project, error) {
			return configuredProject(id, 10), nil
		},
		saveFunc: func(_ context.Context, _ *model.Project) error {
			t.Error("save must not be called for an existing project")
			return nil
		},
	}
	svc := NewProjectService(mock)

	p, err := svc.Get(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.SiteName != "〇〇地区造成工事" {
		t.Errorf("unexpected project: %+v", p)
	}
}

func TestProjectService_Get_StoreError(t *testing.T) {
	mock := &mockProjectRepository{
		getFunc: func(_ context.Context, _ string) (*model.Project, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewProjectService(mock)

	if _, err := svc.Get(context.Background(), "p1"); err == nil {
		t.Error("expected error")
	}
}

func TestProjectService_UpdateSettings_RollsUpExistingRecords(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryProjectRepository()
	p := configuredProject("p1", 0)
	_ = repo.Save(ctx, p)
	_ = repo.AppendRecord(ctx, p, &model.DailyRecord{ProjectID: "p1", Seq: 1, ProgressValue: 25, CostTotal: 1000})
	svc := NewProjectService(repo)

	got, err := svc.UpdateSettings(ctx, "p1", model.ProjectSettings{
		SiteName:        "△△線道路改良工事",
		TaskName:        "路盤工",
		PlannedQuantity: 50,
		PlannedUnit:     "m2",
		CycleSteps:      []string{"敷均し", "転圧"},
		Budget:          model.Budget{Labor: 1, Machine: 2, Materials: 3},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ProgressPct != 50 || got.Phase != model.PhaseInProgress || got.ActualCost != 1000 {
		t.Errorf("unexpected rollup: %+v", got)
	}

	stored, _ := repo.Get(ctx, "p1")
	if stored.SiteName != "△△線道路改良工事" || stored.PlannedUnit != "m2" || len(stored.CycleSteps) != 2 {
		t.Errorf("settings not stored: %+v", stored)
	}
}

func TestProjectService_UpdateSettings_Validation(t *testing.T) {
	svc := NewProjectService(&mockProjectRepository{})
	cases := []model.ProjectSettings{
		{SiteName: "  "},
		{SiteName: "A", PlannedQuantity: -1},
		{SiteName: "A", ProgressMode: "weekly"},
	}
	for _, c := range cases {
		_, err := svc.UpdateSettings(context.Background(), "p1", c)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("settings %+v: expected ErrInvalidInput, got %v", c, err)
		}
	}
}

func TestProjectService_SetDesignLink(t *testing.T) {
	var saved *model.Project
	mock := &mockProjectRepository{
		getFunc: func(_ context.Context, id string) (*model.Project, error) {
			return configuredProject(id, 10), nil
		},
		saveFunc: func(_ context.Context, p *model.Project) error {
			saved = p
			return nil
		},
	}
	svc := NewProjectService(mock)

	p, err := svc.SetDesignLink(context.Background(), "p1", "/uploads/designs/p1/a.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.DesignLink != "/uploads/designs/p1/a.pdf" || saved == nil || saved.DesignLink != p.DesignLink {
		t.Errorf("design link not saved: %+v", saved)
	}
}

func TestProjectService_UpdateSettings_ConflictWhenRecordsChanged(t *testing.T) {
	var gotCount int
	mock := &mockProjectRepository{
		getFunc: func(_ context.Context, id string) (*model.Project, error) {
			return configuredProject(id, 10), nil
		},
		listRecordsFunc: func(_ context.Context, _ string) ([]model.DailyRecord, error) {
			return []model.DailyRecord{{Seq: 1}, {Seq: 2}}, nil
		},
		saveRollupFunc: func(_ context.Context, _ *model.Project, recordCount int) error {
			gotCount = recordCount
			return repository.ErrConflict
		},
	}
	svc := NewProjectService(mock)

	_, err := svc.UpdateSettings(context.Background(), "p1", model.ProjectSettings{SiteName: "〇〇地区造成工事"})
	if !errors.Is(err, repository.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
	if gotCount != 2 {
		t.Errorf("expected rollup saved against 2 records, got %d", gotCount)
	}
}
