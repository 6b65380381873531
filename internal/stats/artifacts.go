package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"zetafield/internal/model"
)

const runIndexFile = "run_index.json"

// RunIndexEntry is the lightweight listing row kept alongside the
// per-run directories.
type RunIndexEntry struct {
	RunID        string  `json:"run_id"`
	Kind         string  `json:"kind"`
	Steps        int     `json:"steps"`
	FinalZeta    float64 `json:"final_zeta"`
	CreatedAtUTC string  `json:"created_at_utc"`
}

// WriteRunArtifacts writes a run record as a directory of JSON files
// under baseDir, one file per section, and returns the run directory.
func WriteRunArtifacts(baseDir string, run model.RunRecord) (string, error) {
	if run.ID == "" {
		return "", fmt.Errorf("run id is required")
	}

	runDir := filepath.Join(baseDir, run.ID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	meta := map[string]any{
		"id":             run.ID,
		"kind":           run.Kind,
		"created_at_utc": run.CreatedAtUTC,
		"schema_version": run.SchemaVersion,
		"codec_version":  run.CodecVersion,
		"summary":        run.Summary,
	}
	if err := writeJSON(filepath.Join(runDir, "run.json"), meta); err != nil {
		return "", err
	}
	if run.Trajectory != nil {
		if err := writeJSON(filepath.Join(runDir, "trajectory.json"), run.Trajectory); err != nil {
			return "", err
		}
	}
	if run.Levels != nil {
		if err := writeJSON(filepath.Join(runDir, "levels.json"), run.Levels); err != nil {
			return "", err
		}
	}
	if run.Gradients != nil {
		if err := writeJSON(filepath.Join(runDir, "gradients.json"), run.Gradients); err != nil {
			return "", err
		}
	}
	if run.SpiralPath != nil {
		if err := writeJSON(filepath.Join(runDir, "spiral_path.json"), run.SpiralPath); err != nil {
			return "", err
		}
	}
	if run.Sediment != nil {
		if err := writeJSON(filepath.Join(runDir, "sediment.json"), run.Sediment); err != nil {
			return "", err
		}
	}

	return runDir, nil
}

// AppendRunIndex upserts an entry in the run index.
func AppendRunIndex(baseDir string, entry RunIndexEntry) error {
	if entry.RunID == "" {
		return fmt.Errorf("run id is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return err
	}

	index, err := ListRunIndex(baseDir)
	if err != nil {
		return err
	}

	for i := range index {
		if index[i].RunID == entry.RunID {
			index[i] = entry
			return writeJSON(filepath.Join(baseDir, runIndexFile), index)
		}
	}

	index = append(index, entry)
	return writeJSON(filepath.Join(baseDir, runIndexFile), index)
}

// ListRunIndex reads the run index, newest first. A missing index is
// an empty listing, not an error.
func ListRunIndex(baseDir string) ([]RunIndexEntry, error) {
	path := filepath.Join(baseDir, runIndexFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunIndexEntry{}, nil
		}
		return nil, err
	}

	var entries []RunIndexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAtUTC > entries[j].CreatedAtUTC
	})
	return entries, nil
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
