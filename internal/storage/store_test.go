package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/planetsim/internal/dynamo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *dynamo.Result {
	return &dynamo.Result{
		Names: []string{"sun", "earth"},
		Snapshots: []dynamo.Snapshot{
			{
				Time:     0,
				Pos:      []dynamo.Vec{{}, {X: -1.496e11}},
				Vel:      []dynamo.Vec{{}, {Y: -29783}},
				Distance: []float64{0, 1.496e11},
			},
			{
				Time:     86400,
				Pos:      []dynamo.Vec{{X: 1.25, Y: -0.5}, {X: -1.4959e11, Y: -2.573e9}},
				Vel:      []dynamo.Vec{{X: 1e-3, Y: 2e-3}, {X: 512.75, Y: -29782.1}},
				Distance: []float64{0, 1.49612345678e11},
			},
		},
		Metrics:    map[string]float64{"energy_drift": 1.5e-7},
		StepsTaken: 1,
	}
}

func TestStore_SaveLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	result := sampleResult()
	runID, err := st.Save(RunMetadata{Preset: "earth", Integrator: "semi-implicit", Dt: 86400}, result)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(runID, "earth_"))

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, runID, meta.ID)
	assert.Equal(t, "semi-implicit", meta.Integrator)
	assert.Equal(t, []string{"sun", "earth"}, meta.Bodies)
	assert.Equal(t, 1, meta.Steps)
	assert.Equal(t, 1.5e-7, meta.Metrics["energy_drift"])

	loaded, err := st.LoadResult(runID)
	require.NoError(t, err)
	assert.Equal(t, result, loaded)
}

func TestStore_List(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	first, err := st.Save(RunMetadata{Preset: "inner"}, sampleResult())
	require.NoError(t, err)
	second, err := st.Save(RunMetadata{Preset: "earth"}, sampleResult())
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "junk"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stray.txt"), nil, 0644))

	runs, err = st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, first, runs[0].ID)
	assert.Equal(t, second, runs[1].ID)
}

func TestStore_LoadMissing(t *testing.T) {
	st := New(t.TempDir())

	_, err := st.Load("nope")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = st.LoadResult("nope")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteCSV_Header(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResult()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "time,sun_x,sun_y,sun_vx,sun_vy,sun_d,earth_x,earth_y,earth_vx,earth_vy,earth_d", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "0,0,0,0,0,0,-1.496e+11,"))
}

func TestReadCSV_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"wrong first column", "t,a_x,a_y,a_vx,a_vy,a_d\n"},
		{"partial body", "time,a_x,a_y\n"},
		{"bad number", "time,a_x,a_y,a_vx,a_vy,a_d\n0,1,2,3,four,5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.in))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	meta := RunMetadata{ID: "earth_1", Preset: "earth"}
	require.NoError(t, ExportJSON(&buf, meta, sampleResult()))

	var data ExportData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &data))
	assert.Equal(t, "earth_1", data.Run.ID)
	assert.Equal(t, []float64{0, 86400}, data.Times)
	require.Len(t, data.Snapshots, 2)
	assert.Equal(t, "earth", data.Snapshots[1].Bodies[1].Name)
	assert.Equal(t, 512.75, data.Snapshots[1].Bodies[1].VX)
}

func TestRunMetadata_Helpers(t *testing.T) {
	meta := RunMetadata{Dt: 86400, RecordEvery: 5, Bodies: []string{"sun", "earth"}, Primary: "sun"}
	assert.Equal(t, 432000.0, meta.SampleSpacing())
	assert.Equal(t, 0, meta.PrimaryIndex())

	meta.RecordEvery = 0
	meta.Primary = "moon"
	assert.Equal(t, 86400.0, meta.SampleSpacing())
	assert.Equal(t, -1, meta.PrimaryIndex())
}
