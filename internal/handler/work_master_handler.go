package handler

import (
	"net/http"

	"github.com/halu23489/genba/internal/model"
	"github.com/halu23489/genba/internal/progress"
	"github.com/halu23489/genba/internal/service"
)

// WorkMasterHandler は歩掛マスターの HTTP ハンドラ
type WorkMasterHandler struct {
	workMasterService service.WorkMasterService
}

// NewWorkMasterHandler は WorkMasterHandler を生成する
func NewWorkMasterHandler(workMasterService service.WorkMasterService) *WorkMasterHandler {
	return &WorkMasterHandler{workMasterService: workMasterService}
}

// Get は GET /api/workmaster を処理する
func (h *WorkMasterHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionProjectID(w, r)
	if !ok {
		return
	}
	wm, err := h.workMasterService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "work master get", id)
		return
	}
	writeJSON(w, http.StatusOK, wm)
}

// UpdateBasic は PUT /api/workmaster/basic を処理する
func (h *WorkMasterHandler) UpdateBasic(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionProjectID(w, r)
	if !ok {
		return
	}
	if err := parseForm(r); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_form")
		return
	}

	basic := model.WorkMasterBasic{
		SiteName:   r.FormValue("site_name"),
		TaskName:   r.FormValue("task_name"),
		Period:     r.FormValue("period"),
		Contractor: r.FormValue("contractor"),
		Machines:   r.FormValue("machines"),
	}
	wm, err := h.workMasterService.SaveBasic(r.Context(), id, basic)
	if err != nil {
		writeServiceError(w, err, "work master basic update", id)
		return
	}
	writeJSON(w, http.StatusOK, wm)
}

// UpdateDetail は PUT /api/workmaster/detail を処理する
func (h *WorkMasterHandler) UpdateDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionProjectID(w, r)
	if !ok {
		return
	}
	if err := parseForm(r); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_form")
		return
	}

	detail := model.WorkMasterDetail{
		Materials:    progress.ParseMaterials(formList(r, "material_name"), formList(r, "material_qty")),
		HeavyMachine: r.FormValue("heavy_machine"),
		PersonCount:  progress.NonNegInt(r.FormValue("person_count")),
		WorkUnit:     r.FormValue("work_unit"),
		WorkCycle:    r.FormValue("work_cycle"),
		CycleOptions: r.FormValue("cycle_options"),
	}
	wm, err := h.workMasterService.SaveDetail(r.Context(), id, detail)
	if err != nil {
		writeServiceError(w, err, "work master detail update", id)
		return
	}
	writeJSON(w, http.StatusOK, wm)
}
