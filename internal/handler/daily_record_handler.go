package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/halu23489/genba/internal/model"
	"github.com/halu23489/genba/internal/progress"
	"github.com/halu23489/genba/internal/service"
)

// DailyRecordHandler は日報の HTTP ハンドラ
type DailyRecordHandler struct {
	recordService service.DailyRecordService
	now           func() time.Time
}

// NewDailyRecordHandler は DailyRecordHandler を生成する
func NewDailyRecordHandler(recordService service.DailyRecordService) *DailyRecordHandler {
	return &DailyRecordHandler{recordService: recordService, now: time.Now}
}

type dailyRecordsResponse struct {
	Project projectResponse     `json:"project"`
	Records []model.DailyRecord `json:"records"`
}

type dailyRecordCreatedResponse struct {
	Project projectResponse    `json:"project"`
	Record  *model.DailyRecord `json:"record"`
}

// List は GET /api/daily-records を処理する
func (h *DailyRecordHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionProjectID(w, r)
	if !ok {
		return
	}
	p, records, err := h.recordService.List(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "daily record list", id)
		return
	}
	if records == nil {
		records = []model.DailyRecord{}
	}
	writeJSON(w, http.StatusOK, dailyRecordsResponse{Project: newProjectResponse(p), Records: records})
}

// Create は POST /api/daily-records を処理する
func (h *DailyRecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionProjectID(w, r)
	if !ok {
		return
	}
	if err := parseForm(r); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_form")
		return
	}

	p, rec, err := h.recordService.Submit(r.Context(), id, h.recordFromForm(r))
	if err != nil {
		writeServiceError(w, err, "daily record submit", id)
		return
	}
	writeJSON(w, http.StatusCreated, dailyRecordCreatedResponse{Project: newProjectResponse(p), Record: rec})
}

func (h *DailyRecordHandler) recordFromForm(r *http.Request) model.DailyRecord {
	date := strings.TrimSpace(r.FormValue("record_date"))
	if date == "" {
		date = h.now().Format(time.DateOnly)
	}
	return model.DailyRecord{
		Date:          date,
		Personnel:     progress.NonNegInt(r.FormValue("personnel")),
		Machinery:     progress.CleanList(formList(r, "machinery")),
		WorkTime:      progress.NonNegFloat(r.FormValue("work_time")),
		WorkContent:   progress.CleanList(formList(r, "work_content")),
		ProgressUnit:  strings.TrimSpace(r.FormValue("progress_unit")),
		ProgressValue: progress.NonNegFloat(r.FormValue("progress_value")),
		ProgressTotal: progress.NonNegFloat(r.FormValue("progress_total")),
		Cycles: progress.ParseCycleEntries(
			formList(r, "cycle_step"),
			formList(r, "cycle_count"),
			formList(r, "cycle_progress"),
		),
		Weather: strings.TrimSpace(r.FormValue("weather")),
		Remarks: r.FormValue("remarks"),
	}
}
