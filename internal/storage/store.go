package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/planetsim/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
)

var ErrMalformed = errors.New("storage: malformed states file")

// columns written per body, in order
var bodyColumns = []string{"x", "y", "vx", "vy", "d"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Preset      string             `json:"preset"`
	Timestamp   time.Time          `json:"timestamp"`
	Integrator  string             `json:"integrator"`
	Dt          float64            `json:"dt"`
	RecordEvery int                `json:"record_every"`
	Steps       int                `json:"steps"`
	G           float64            `json:"g"`
	MinDistance float64            `json:"min_distance"`
	Bodies      []string           `json:"bodies"`
	Primary     string             `json:"primary"`
	Colors      map[string]string  `json:"colors,omitempty"`
	Radii       map[string]float64 `json:"radii,omitempty"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes the run under a fresh directory and returns its id. ID,
// Timestamp, Bodies, Steps and Metrics are filled from the result.
func (s *Store) Save(meta RunMetadata, result *dynamo.Result) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Preset, now.UnixNano())
	meta.Timestamp = now
	meta.Bodies = result.Names
	meta.Steps = result.StepsTaken
	meta.Metrics = result.Metrics

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, statesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, result); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// WriteCSV writes one row per snapshot: time, then x, y, vx, vy and the
// distance to the primary for every body.
func WriteCSV(out io.Writer, result *dynamo.Result) error {
	w := csv.NewWriter(out)

	header := []string{"time"}
	for _, name := range result.Names {
		for _, col := range bodyColumns {
			header = append(header, name+"_"+col)
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, snap := range result.Snapshots {
		row := make([]string, 0, len(header))
		row = append(row, formatFloat(snap.Time))
		for i := range snap.Pos {
			row = append(row,
				formatFloat(snap.Pos[i].X),
				formatFloat(snap.Pos[i].Y),
				formatFloat(snap.Vel[i].X),
				formatFloat(snap.Vel[i].Y),
				formatFloat(snap.Distance[i]),
			)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadResult rebuilds the recorded snapshots of a run. Metrics come from
// the metadata.
func (s *Store) LoadResult(runID string) (*dynamo.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	result, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	result.Metrics = meta.Metrics
	result.StepsTaken = meta.Steps
	return result, nil
}

// ReadCSV parses the format written by WriteCSV.
func ReadCSV(in io.Reader) (*dynamo.Result, error) {
	r := csv.NewReader(in)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: missing header", ErrMalformed)
	}

	header := records[0]
	if header[0] != "time" || (len(header)-1)%len(bodyColumns) != 0 {
		return nil, fmt.Errorf("%w: unexpected header", ErrMalformed)
	}
	n := (len(header) - 1) / len(bodyColumns)

	result := &dynamo.Result{
		Names:     make([]string, n),
		Snapshots: make([]dynamo.Snapshot, 0, len(records)-1),
	}
	for i := range result.Names {
		col := header[1+i*len(bodyColumns)]
		result.Names[i] = strings.TrimSuffix(col, "_x")
	}

	for line, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line+2, err)
			}
			vals[j] = v
		}

		snap := dynamo.Snapshot{
			Time:     vals[0],
			Pos:      make([]dynamo.Vec, n),
			Vel:      make([]dynamo.Vec, n),
			Distance: make([]float64, n),
		}
		for i := 0; i < n; i++ {
			c := vals[1+i*len(bodyColumns):]
			snap.Pos[i] = dynamo.Vec{X: c[0], Y: c[1]}
			snap.Vel[i] = dynamo.Vec{X: c[2], Y: c[3]}
			snap.Distance[i] = c[4]
		}
		result.Snapshots = append(result.Snapshots, snap)
	}

	return result, nil
}

// SampleSpacing is the simulated time between recorded snapshots.
func (m RunMetadata) SampleSpacing() float64 {
	every := m.RecordEvery
	if every <= 0 {
		every = 1
	}
	return m.Dt * float64(every)
}

// PrimaryIndex returns the column of the primary body, or -1.
func (m RunMetadata) PrimaryIndex() int {
	for i, name := range m.Bodies {
		if name == m.Primary {
			return i
		}
	}
	return -1
}
