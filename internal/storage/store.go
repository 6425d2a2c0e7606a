// Package storage keeps a history of finished runs. Only the parameters
// needed to regenerate a run are stored; logs are rebuilt on demand.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/dataset"
	"github.com/san-kum/sortviz/internal/oplog"
)

const metaFile = "metadata.json"

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
	ID        string             `json:"id"`
	Algorithm string             `json:"algorithm"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Size      int                `json:"size"`
	Pattern   string             `json:"pattern"`
	MinValue  int                `json:"min_value"`
	MaxValue  int                `json:"max_value"`
	Speed     int                `json:"speed"`
	Ops       int                `json:"ops"`
	Applied   int                `json:"applied"`
	Elapsed   time.Duration      `json:"elapsed"`
	Metrics   map[string]float64 `json:"metrics"`
}

func (m *RunMetadata) DatasetOptions() dataset.Options {
	return dataset.Options{
		Size:    m.Size,
		Min:     m.MinValue,
		Max:     m.MaxValue,
		Pattern: dataset.Pattern(m.Pattern),
	}
}

// Regenerate rebuilds the snapshot from the seed and the log from the
// snapshot. A nil registry means algorithms.Default.
func (m *RunMetadata) Regenerate(reg *algorithms.Registry) ([]int, *oplog.Log, error) {
	if reg == nil {
		reg = algorithms.Default()
	}
	snapshot, err := dataset.NewGenerator(m.Seed).Snapshot(m.DatasetOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("run %s: %w", m.ID, err)
	}
	log, err := reg.Generate(m.Algorithm, snapshot)
	if err != nil {
		return nil, nil, fmt.Errorf("run %s: %w", m.ID, err)
	}
	return snapshot, log, nil
}

// Save writes meta under a fresh run id, which it returns. meta.ID and
// meta.Timestamp are filled in.
func (s *Store) Save(meta RunMetadata) (string, error) {
	if meta.Algorithm == "" {
		return "", fmt.Errorf("storage: run has no algorithm")
	}
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", meta.Algorithm, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now

	f, err := os.Create(filepath.Join(runDir, metaFile))
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}
	return runID, nil
}

// List returns every readable run, oldest first. Directories without
// metadata are skipped.
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metaFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) Delete(runID string) error {
	if _, err := s.Load(runID); err != nil {
		return err
	}
	return os.RemoveAll(filepath.Join(s.baseDir, runID))
}
