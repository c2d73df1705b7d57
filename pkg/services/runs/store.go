// Package runs reads previously emitted assessments back from the
// output directory. Reports are the only persisted state; each file is
// independent.
package runs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/de-tools/audit-atlas/pkg/models/api"
)

// Explorer lists and loads emitted runs.
type Explorer interface {
	ListRuns(ctx context.Context) ([]api.Run, error)
	GetRun(ctx context.Context, name string) (*api.RunSummary, error)
}

type explorer struct {
	dir string
}

func NewExplorer(dir string) Explorer {
	return &explorer{dir: dir}
}

func (e *explorer) ListRuns(_ context.Context) ([]api.Run, error) {
	entries, err := os.ReadDir(e.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read report directory: %w", err)
	}

	var result []api.Run
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".json")
		summary, err := e.load(name)
		if err != nil {
			// Skip unreadable sidecars; the listing should survive one
			// bad file.
			continue
		}
		result = append(result, api.Run{
			Name:      name,
			Timestamp: summary.Timestamp,
			Percent:   summary.Percent,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	return result, nil
}

func (e *explorer) GetRun(_ context.Context, name string) (*api.RunSummary, error) {
	return e.load(name)
}

func (e *explorer) load(name string) (*api.RunSummary, error) {
	// Reject path traversal; run names are plain file stems.
	if name != filepath.Base(name) {
		return nil, fmt.Errorf("invalid run name %q", name)
	}
	data, err := os.ReadFile(filepath.Join(e.dir, name+".json"))
	if err != nil {
		return nil, fmt.Errorf("run %s not found: %w", name, err)
	}
	var summary api.RunSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("run %s is not readable: %w", name, err)
	}
	return &summary, nil
}
