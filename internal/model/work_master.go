package model

import "time"

// WorkMasterBasic は歩掛マスターの基本情報
type WorkMasterBasic struct {
	SiteName   string `json:"site_name" yaml:"site_name"`
	TaskName   string `json:"task_name" yaml:"task_name"`
	Period     string `json:"period" yaml:"period"`
	Contractor string `json:"contractor" yaml:"contractor"`
	Machines   string `json:"machines" yaml:"machines"`
}

// Material は使用材料 1 行
type Material struct {
	Name     string  `json:"name" yaml:"name"`
	Quantity float64 `json:"quantity" yaml:"quantity"`
}

// WorkMasterDetail は歩掛マスターの詳細内容
type WorkMasterDetail struct {
	Materials    []Material `json:"materials" yaml:"materials"`
	HeavyMachine string     `json:"heavy_machine" yaml:"heavy_machine"`
	PersonCount  int        `json:"person_count" yaml:"person_count"`
	WorkUnit     string     `json:"work_unit" yaml:"work_unit"`
	WorkCycle    string     `json:"work_cycle" yaml:"work_cycle"`
	CycleOptions string     `json:"cycle_options" yaml:"cycle_options"`
}

// WorkMaster は現場ごとの歩掛マスター。基本情報と詳細内容は別々に保存される。
type WorkMaster struct {
	ProjectID string           `json:"project_id" yaml:"project_id"`
	Basic     WorkMasterBasic  `json:"basic" yaml:"basic"`
	Detail    WorkMasterDetail `json:"detail" yaml:"detail"`
	UpdatedAt time.Time        `json:"updated_at" yaml:"updated_at"`
}

// NewWorkMaster は空の歩掛マスターを返す
func NewWorkMaster(projectID string) *WorkMaster {
	return &WorkMaster{
		ProjectID: projectID,
		Detail:    WorkMasterDetail{Materials: []Material{}},
	}
}

// Normalize fills fields that older stored versions may lack.
func (w *WorkMaster) Normalize() {
	if w.Detail.Materials == nil {
		w.Detail.Materials = []Material{}
	}
}
