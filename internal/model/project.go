package model

import "time"

// Phase は工事の進捗段階。進捗率から導出され、単独では設定しない。
type Phase string

const (
	PhasePreConstruction Phase = "施工前"
	PhaseInProgress      Phase = "施工中"
	PhaseComplete        Phase = "竣工"
)

// ProgressMode は日報の progress_value をどう解釈するか。
//   - incremental: その日の出来高（増分）。累計は全日報の合計。
//   - cumulative: その日時点の累計出来高。累計は最新日報の値。
type ProgressMode string

const (
	ProgressModeIncremental ProgressMode = "incremental"
	ProgressModeCumulative  ProgressMode = "cumulative"
)

// Valid は既知のモードかどうかを返す
func (m ProgressMode) Valid() bool {
	return m == ProgressModeIncremental || m == ProgressModeCumulative
}

// CurrentSchemaVersion is bumped whenever Project gains fields that need a backfill.
const CurrentSchemaVersion = 1

// Budget は予算内訳（円）
type Budget struct {
	Labor     int `json:"labor" yaml:"labor"`
	Machine   int `json:"machine" yaml:"machine"`
	Materials int `json:"materials" yaml:"materials"`
}

// Total は予算合計を返す
func (b Budget) Total() int {
	return b.Labor + b.Machine + b.Materials
}

// Project は現場・作業の設定と、日報から集計した進捗状態
type Project struct {
	ID              string       `json:"id" yaml:"id"`
	SiteName        string       `json:"site_name" yaml:"site_name"`
	TaskName        string       `json:"task_name" yaml:"task_name"`
	ToolList        string       `json:"tool_list" yaml:"tool_list"`
	PlannedQuantity float64      `json:"planned_quantity" yaml:"planned_quantity"`
	PlannedUnit     string       `json:"planned_unit" yaml:"planned_unit"`
	CycleSteps      []string     `json:"cycle_steps" yaml:"cycle_steps"`
	CycleChecks     []string     `json:"cycle_checks" yaml:"cycle_checks"`
	Budget          Budget       `json:"budget" yaml:"budget"`
	DesignLink      string       `json:"design_link,omitempty" yaml:"design_link"`
	ProgressMode    ProgressMode `json:"progress_mode" yaml:"progress_mode"`
	SchemaVersion   int          `json:"schema_version" yaml:"schema_version"`

	// 以下は日報から集計される派生値
	Phase         Phase   `json:"phase" yaml:"phase"`
	ProgressPct   float64 `json:"progress_pct" yaml:"progress_pct"`
	CumulativeQty float64 `json:"cumulative_qty" yaml:"cumulative_qty"`
	ActualCost    int     `json:"actual_cost" yaml:"actual_cost"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// NewProject はデフォルト値で初期化した Project を返す
func NewProject(id string) *Project {
	now := time.Now()
	return &Project{
		ID:            id,
		CycleSteps:    []string{},
		CycleChecks:   []string{},
		ProgressMode:  ProgressModeIncremental,
		SchemaVersion: CurrentSchemaVersion,
		Phase:         PhasePreConstruction,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Configured reports whether the site settings have been saved at least once.
func (p *Project) Configured() bool {
	return p.SiteName != ""
}

// Normalize fills fields that older stored versions may lack.
func (p *Project) Normalize() {
	if p.CycleSteps == nil {
		p.CycleSteps = []string{}
	}
	if p.CycleChecks == nil {
		p.CycleChecks = []string{}
	}
	if !p.ProgressMode.Valid() {
		p.ProgressMode = ProgressModeIncremental
	}
	if p.Phase == "" {
		p.Phase = PhasePreConstruction
	}
	p.SchemaVersion = CurrentSchemaVersion
}

// ProjectSettings は利用者が編集できる項目
type ProjectSettings struct {
	SiteName        string
	TaskName        string
	ToolList        string
	PlannedQuantity float64
	PlannedUnit     string
	CycleSteps      []string
	CycleChecks     []string
	Budget          Budget
	ProgressMode    ProgressMode
}

// Apply copies the editable settings onto the project.
func (s ProjectSettings) Apply(p *Project) {
	p.SiteName = s.SiteName
	p.TaskName = s.TaskName
	p.ToolList = s.ToolList
	p.PlannedQuantity = s.PlannedQuantity
	p.PlannedUnit = s.PlannedUnit
	p.CycleSteps = append([]string{}, s.CycleSteps...)
	p.CycleChecks = append([]string{}, s.CycleChecks...)
	p.Budget = s.Budget
	if s.ProgressMode.Valid() {
		p.ProgressMode = s.ProgressMode
	}
}
