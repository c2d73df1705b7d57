package runs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSidecar(t *testing.T, dir, name, timestamp string, percent int) {
	t.Helper()
	body := fmt.Sprintf(
		`{"title":"AWS Compliance Assessment","account_id":"123456789012","timestamp":%q,"compliance_percent":%d,"counters":{"total":4,"passed":3}}`,
		timestamp, percent)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".json"), []byte(body), 0o644))
}

func TestExplorer_ListRuns(t *testing.T) {
	dir := t.TempDir()
	writeSidecar(t, dir, "audit_123456789012_20260301T090000Z", "2026-03-01T09:00:00Z", 50)
	writeSidecar(t, dir, "audit_123456789012_20260314T093000Z", "2026-03-14T09:30:00Z", 75)

	// Non-sidecar files in the directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "audit_123456789012_20260314T093000Z.html"), []byte("<html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o644))

	runs, err := NewExplorer(dir).ListRuns(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, "audit_123456789012_20260314T093000Z", runs[0].Name)
	assert.Equal(t, 75, runs[0].Percent)
	assert.Equal(t, "audit_123456789012_20260301T090000Z", runs[1].Name)
	assert.True(t, runs[0].Timestamp.After(runs[1].Timestamp))
}

func TestExplorer_ListRuns_MissingDir(t *testing.T) {
	_, err := NewExplorer(filepath.Join(t.TempDir(), "absent")).ListRuns(context.Background())
	assert.Error(t, err)
}

func TestExplorer_GetRun(t *testing.T) {
	dir := t.TempDir()
	writeSidecar(t, dir, "audit_123456789012_20260314T093000Z", "2026-03-14T09:30:00Z", 75)

	explorer := NewExplorer(dir)

	summary, err := explorer.GetRun(context.Background(), "audit_123456789012_20260314T093000Z")
	require.NoError(t, err)
	assert.Equal(t, "123456789012", summary.AccountID)
	assert.Equal(t, 75, summary.Percent)
	assert.Equal(t, time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC), summary.Timestamp.UTC())

	_, err = explorer.GetRun(context.Background(), "no-such-run")
	assert.Error(t, err)
}

func TestExplorer_GetRun_RejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	_, err := NewExplorer(dir).GetRun(context.Background(), "../outside")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid run name")
}
