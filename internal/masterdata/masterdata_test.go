package masterdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/halu23489/genba/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_ContainsBackhoe(t *testing.T) {
	tbl := Default()

	rate, ok := tbl.MachineRate("0.2m3バックホウ")
	require.True(t, ok)
	assert.Equal(t, 12000, rate)
	assert.Equal(t, DefaultPersonnelHourlyRate, tbl.PersonnelRate())
}

func TestMachineRate_ExactMatchOnly(t *testing.T) {
	tbl := Default()

	_, ok := tbl.MachineRate("0.2m3バックホウ ")
	assert.False(t, ok, "trailing space must not match")
	_, ok = tbl.MachineRate("UnknownMachine")
	assert.False(t, ok)
}

func TestMachines_ReturnsCopy(t *testing.T) {
	tbl := Default()

	ms := tbl.Machines()
	ms[0].HourlyRate = 1

	rate, _ := tbl.MachineRate(ms[0].Name)
	assert.NotEqual(t, 1, rate)
	assert.NotEqual(t, 1, tbl.Machines()[0].HourlyRate)
}

func TestNew_Validation(t *testing.T) {
	t.Run("negative personnel rate", func(t *testing.T) {
		_, err := New(-1, nil)
		assert.ErrorIs(t, err, ErrInvalidTable)
	})
	t.Run("blank name", func(t *testing.T) {
		_, err := New(6000, []model.Machine{{ID: "x", Name: "  ", HourlyRate: 1}})
		assert.ErrorIs(t, err, ErrInvalidTable)
	})
	t.Run("negative machine rate", func(t *testing.T) {
		_, err := New(6000, []model.Machine{{Name: "A", HourlyRate: -5}})
		assert.ErrorIs(t, err, ErrInvalidTable)
	})
	t.Run("duplicate name", func(t *testing.T) {
		_, err := New(6000, []model.Machine{{Name: "A"}, {Name: "A"}})
		assert.ErrorIs(t, err, ErrInvalidTable)
	})
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	tbl, err := Load("")
	require.NoError(t, err)
	assert.Len(t, tbl.Machines(), len(Default().Machines()))
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master.yaml")
	content := `personnel_hourly_rate: 6500
machines:
  - id: bh02
    name: 0.2m3バックホウ
    hourly_rate: 13000
  - id: dt4
    name: 4tダンプ
    hourly_rate: 8000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tbl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6500, tbl.PersonnelRate())
	rate, ok := tbl.MachineRate("0.2m3バックホウ")
	require.True(t, ok)
	assert.Equal(t, 13000, rate)
	assert.Len(t, tbl.Machines(), 2)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("machines:\n  - name: A\n    hourly_rate: -1\n"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidTable)
}
