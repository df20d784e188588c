package handler

import (
	"net/http"

	"github.com/halu23489/genba/internal/model"
	"github.com/halu23489/genba/internal/service"
)

// CycleTimeHandler はサイクルタイム計測の HTTP ハンドラ
type CycleTimeHandler struct {
	cycleTimeService service.CycleTimeService
}

// NewCycleTimeHandler は CycleTimeHandler を生成する
func NewCycleTimeHandler(cycleTimeService service.CycleTimeService) *CycleTimeHandler {
	return &CycleTimeHandler{cycleTimeService: cycleTimeService}
}

// List は GET /api/cycle-times を処理する
func (h *CycleTimeHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionProjectID(w, r)
	if !ok {
		return
	}
	list, err := h.cycleTimeService.List(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "cycle time list", id)
		return
	}
	if list == nil {
		list = []*model.CycleTimeRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"cycle_times": list})
}

// Create は POST /api/cycle-times を処理する
func (h *CycleTimeHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionProjectID(w, r)
	if !ok {
		return
	}
	if err := parseForm(r); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_form")
		return
	}
	rec, err := h.cycleTimeService.Add(r.Context(), id, r.FormValue("step_name"), r.FormValue("time_duration"))
	if err != nil {
		writeServiceError(w, err, "cycle time add", id)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// Clear は DELETE /api/cycle-times を処理する
func (h *CycleTimeHandler) Clear(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionProjectID(w, r)
	if !ok {
		return
	}
	if err := h.cycleTimeService.Clear(r.Context(), id); err != nil {
		writeServiceError(w, err, "cycle time clear", id)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
