package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/collidegen/internal/collision"
)

// Store writes and reads per-sample artifact directories under a base
// output directory:
//
//	out/sample_0007/metadata.json
//	out/sample_0007/trajectory.csv
//	out/sample_0007/first_frame.png
//	out/sample_0007/final_frame.png
//	out/sample_0007/ground_truth.gif
//	out/sample_0007/prompt.txt
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// SampleMetadata is the ground-truth record for one generated sample.
type SampleMetadata struct {
	ID            string                      `json:"id"`
	Timestamp     time.Time                   `json:"timestamp"`
	Seed          int64                       `json:"seed"`
	Initial       collision.InitialConditions `json:"initial_conditions"`
	Event         collision.CollisionEvent    `json:"collision_event"`
	FirstFrame    int                         `json:"first_frame"`
	FinalFrame    int                         `json:"final_frame"`
	MomentumDrift float64                     `json:"momentum_drift"`
	EnergyDrift   float64                     `json:"energy_drift"`
	Prompt        string                      `json:"prompt"`
}

// SampleID formats the canonical directory name for a sample index.
func SampleID(index int) string {
	return fmt.Sprintf("sample_%04d", index)
}

// Dir returns the artifact directory for a sample.
func (s *Store) Dir(id string) string {
	return filepath.Join(s.baseDir, id)
}

// SaveSample writes the metadata, trajectory and prompt for one sample.
// Images and the animation are written separately into the same directory.
func (s *Store) SaveSample(meta SampleMetadata, traj collision.Trajectory) error {
	dir := s.Dir(meta.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	metaFile, err := os.Create(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}

	if err := s.writeTrajectory(filepath.Join(dir, "trajectory.csv"), traj); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "prompt.txt"), []byte(meta.Prompt+"\n"), 0644)
}

func (s *Store) writeTrajectory(path string, traj collision.Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"time", "pos_a", "pos_b", "vel_a", "vel_b"}); err != nil {
		return err
	}
	for _, sample := range traj {
		row := []string{
			strconv.FormatFloat(sample.T, 'f', 6, 64),
			strconv.FormatFloat(sample.PosA, 'f', 6, 64),
			strconv.FormatFloat(sample.PosB, 'f', 6, 64),
			strconv.FormatFloat(sample.VelA, 'f', 6, 64),
			strconv.FormatFloat(sample.VelB, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// WritePNG stores a rendered frame in the sample directory.
func (s *Store) WritePNG(id, name string, img image.Image) error {
	f, err := os.Create(filepath.Join(s.Dir(id), name))
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// List returns metadata for every stored sample, skipping entries that
// cannot be parsed.
func (s *Store) List() ([]SampleMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SampleMetadata{}, nil
		}
		return nil, err
	}

	samples := make([]SampleMetadata, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		samples = append(samples, *meta)
	}
	return samples, nil
}

// Load reads the metadata for one sample.
func (s *Store) Load(id string) (*SampleMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(id), "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta SampleMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrajectory reads a stored trajectory back for plotting.
func (s *Store) LoadTrajectory(id string) (collision.Trajectory, error) {
	f, err := os.Open(filepath.Join(s.Dir(id), "trajectory.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return collision.Trajectory{}, nil
	}

	traj := make(collision.Trajectory, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != 5 {
			return nil, fmt.Errorf("storage: malformed trajectory row %v", record)
		}
		vals := make([]float64, 5)
		for i, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: parse %q: %w", field, err)
			}
			vals[i] = v
		}
		traj = append(traj, collision.Sample{
			T: vals[0], PosA: vals[1], PosB: vals[2], VelA: vals[3], VelB: vals[4],
		})
	}
	return traj, nil
}
