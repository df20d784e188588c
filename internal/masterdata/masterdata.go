// Package masterdata holds the static machine table and the personnel hourly
// rate. A Table is loaded once at process start and is read-only afterwards.
package masterdata

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/halu23489/genba/internal/model"
	"gopkg.in/yaml.v3"
)

// ErrInvalidTable is returned when a master data file fails validation.
var ErrInvalidTable = errors.New("invalid master data")

// DefaultPersonnelHourlyRate は作業員 1 人あたりの時間単価（円/時）
const DefaultPersonnelHourlyRate = 6000

// Table は重機マスタと労務単価
type Table struct {
	personnelRate int
	machines      []model.Machine
	byName        map[string]int
}

type fileFormat struct {
	PersonnelHourlyRate int             `yaml:"personnel_hourly_rate"`
	Machines            []model.Machine `yaml:"machines"`
}

// New validates the inputs and builds a Table. The machines slice is copied.
func New(personnelRate int, machines []model.Machine) (*Table, error) {
	if personnelRate < 0 {
		return nil, fmt.Errorf("%w: personnel_hourly_rate must be >= 0", ErrInvalidTable)
	}
	t := &Table{
		personnelRate: personnelRate,
		machines:      make([]model.Machine, 0, len(machines)),
		byName:        make(map[string]int, len(machines)),
	}
	for _, m := range machines {
		if strings.TrimSpace(m.Name) == "" {
			return nil, fmt.Errorf("%w: machine name is blank (id=%q)", ErrInvalidTable, m.ID)
		}
		if m.HourlyRate < 0 {
			return nil, fmt.Errorf("%w: machine %q has negative rate", ErrInvalidTable, m.Name)
		}
		if _, dup := t.byName[m.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate machine %q", ErrInvalidTable, m.Name)
		}
		t.byName[m.Name] = m.HourlyRate
		t.machines = append(t.machines, m)
	}
	return t, nil
}

// Default returns the built-in table used when no file is configured.
func Default() *Table {
	t, err := New(DefaultPersonnelHourlyRate, []model.Machine{
		{ID: "bh02", Name: "0.2m3バックホウ", HourlyRate: 12000},
		{ID: "bh045", Name: "0.45m3バックホウ", HourlyRate: 18000},
		{ID: "bh07", Name: "0.7m3バックホウ", HourlyRate: 24000},
		{ID: "dt4", Name: "4tダンプ", HourlyRate: 8000},
		{ID: "dt10", Name: "10tダンプ", HourlyRate: 12000},
		{ID: "cr25", Name: "25tラフタークレーン", HourlyRate: 30000},
		{ID: "rl", Name: "振動ローラー", HourlyRate: 7000},
		{ID: "pc", Name: "プレートコンパクター", HourlyRate: 2000},
	})
	if err != nil {
		panic(err)
	}
	return t
}

// Load reads a YAML master data file. An empty path yields Default().
//
//	personnel_hourly_rate: 6000
//	machines:
//	  - id: bh02
//	    name: 0.2m3バックホウ
//	    hourly_rate: 12000
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("masterdata: read %s: %w", path, err)
	}
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("masterdata: parse %s: %w", path, err)
	}
	return New(f.PersonnelHourlyRate, f.Machines)
}

// PersonnelRate returns the personnel hourly rate in yen.
func (t *Table) PersonnelRate() int { return t.personnelRate }

// MachineRate looks up a machine by exact name.
func (t *Table) MachineRate(name string) (int, bool) {
	rate, ok := t.byName[name]
	return rate, ok
}

// Machines returns a copy of the machine list in file order.
func (t *Table) Machines() []model.Machine {
	out := make([]model.Machine, len(t.machines))
	copy(out, t.machines)
	return out
}
