package model

import "time"

// CycleEntry は作業サイクルの 1 工程の記録。
// Count / Progress が nil の場合は「未記録」、0 は「0 として記録」を表す。
type CycleEntry struct {
	Step     string   `json:"step" yaml:"step"`
	Count    *int     `json:"count,omitempty" yaml:"count,omitempty"`
	Progress *float64 `json:"progress,omitempty" yaml:"progress,omitempty"`
}

// DailyRecord は 1 日分の作業記録。作成後は変更しない。
type DailyRecord struct {
	ID            string       `json:"id" yaml:"id"`
	ProjectID     string       `json:"project_id" yaml:"project_id"`
	Seq           int          `json:"seq" yaml:"seq"`
	Date          string       `json:"date" yaml:"date"`
	Personnel     int          `json:"personnel" yaml:"personnel"`
	Machinery     []string     `json:"machinery" yaml:"machinery"`
	WorkTime      float64      `json:"work_time" yaml:"work_time"`
	WorkContent   []string     `json:"work_content" yaml:"work_content"`
	ProgressUnit  string       `json:"progress_unit" yaml:"progress_unit"`
	ProgressValue float64      `json:"progress_value" yaml:"progress_value"`
	ProgressTotal float64      `json:"progress_total" yaml:"progress_total"`
	Cycles        []CycleEntry `json:"cycles" yaml:"cycles"`
	Weather       string       `json:"weather" yaml:"weather"`
	Remarks       string       `json:"remarks" yaml:"remarks"`

	CostPersonnel int `json:"cost_personnel" yaml:"cost_personnel"`
	CostMachinery int `json:"cost_machinery" yaml:"cost_machinery"`
	CostTotal     int `json:"cost_total" yaml:"cost_total"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// CycleTimeRecord はストップウォッチで計測したサイクルタイム
type CycleTimeRecord struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	Step       string    `json:"step"`
	Duration   string    `json:"duration"` // 入力そのまま（例: "01:23.4"）
	Seconds    float64   `json:"seconds"`
	RecordedAt time.Time `json:"recorded_at"`
}
