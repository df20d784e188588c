package handler

import (
	"net/http"

	"github.com/halu23489/genba/internal/model"
)

// MachineCatalog は単価マスタの参照
type MachineCatalog interface {
	PersonnelRate() int
	Machines() []model.Machine
}

// MachineHandler は GET /api/machines を処理する
type MachineHandler struct {
	catalog MachineCatalog
}

func NewMachineHandler(catalog MachineCatalog) *MachineHandler {
	return &MachineHandler{catalog: catalog}
}

type machinesResponse struct {
	PersonnelHourlyRate int             `json:"personnel_hourly_rate"`
	Machines            []model.Machine `json:"machines"`
}

func (h *MachineHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, machinesResponse{
		PersonnelHourlyRate: h.catalog.PersonnelRate(),
		Machines:            h.catalog.Machines(),
	})
}
