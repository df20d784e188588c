package handler

import (
	"net/http"

	"github.com/halu23489/genba/internal/model"
	"github.com/halu23489/genba/internal/progress"
	"github.com/halu23489/genba/internal/service"
)

// ProjectHandler は現場設定の HTTP ハンドラ
type ProjectHandler struct {
	projectService service.ProjectService
}

// NewProjectHandler は ProjectHandler を生成する
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type projectResponse struct {
	*model.Project
	BudgetTotal int `json:"budget_total"`
}

func newProjectResponse(p *model.Project) projectResponse {
	return projectResponse{Project: p, BudgetTotal: p.Budget.Total()}
}

// Get は GET /api/project を処理する
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionProjectID(w, r)
	if !ok {
		return
	}
	p, err := h.projectService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "project get", id)
		return
	}
	writeJSON(w, http.StatusOK, newProjectResponse(p))
}

// Update は PUT /api/project を処理する
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionProjectID(w, r)
	if !ok {
		return
	}
	if err := parseForm(r); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_form")
		return
	}

	settings := model.ProjectSettings{
		SiteName:        r.FormValue("site_name"),
		TaskName:        r.FormValue("task_name"),
		ToolList:        r.FormValue("tool_list"),
		PlannedQuantity: progress.FloatOr(r.FormValue("planned_quantity"), 0),
		PlannedUnit:     r.FormValue("planned_unit"),
		CycleSteps:      progress.CleanList(formList(r, "step")),
		CycleChecks:     progress.CleanList(formList(r, "check")),
		Budget: model.Budget{
			Labor:     progress.NonNegInt(r.FormValue("budget_labor")),
			Machine:   progress.NonNegInt(r.FormValue("budget_machine")),
			Materials: progress.NonNegInt(r.FormValue("budget_materials")),
		},
		ProgressMode: model.ProgressMode(r.FormValue("progress_mode")),
	}

	p, err := h.projectService.UpdateSettings(r.Context(), id, settings)
	if err != nil {
		writeServiceError(w, err, "project update", id)
		return
	}
	writeJSON(w, http.StatusOK, newProjectResponse(p))
}
