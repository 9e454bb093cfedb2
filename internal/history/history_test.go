package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "history.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)

	run := Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		Source:    "claude",
		Target:    "cursor",
		Files:     2,
		Warnings:  3,
		Failures:  1,
	}
	files := []FileRecord{
		{Path: "a/SKILL.md", Output: "out/a.mdc", Warnings: 3},
		{Path: "b/SKILL.md", Err: "parse claude frontmatter: bad yaml"},
	}
	require.NoError(t, s.Record(run, files))

	runs, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, "claude", got.Source)
	assert.Equal(t, "cursor", got.Target)
	assert.Equal(t, 2, got.Files)
	assert.Equal(t, 3, got.Warnings)
	assert.Equal(t, 1, got.Failures)
	assert.WithinDuration(t, run.StartedAt, got.StartedAt, time.Second)
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	s := openTestStore(t)

	base := time.Now().Add(-time.Hour)
	var ids []string
	for i := 0; i < 3; i++ {
		id := uuid.NewString()
		ids = append(ids, id)
		require.NoError(t, s.Record(Run{
			ID:        id,
			StartedAt: base.Add(time.Duration(i) * time.Minute),
			Source:    "claude",
			Target:    "copilot",
			Files:     1,
		}, nil))
	}

	runs, err := s.Recent(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[1], runs[1].ID)
}

func TestFiles(t *testing.T) {
	s := openTestStore(t)

	id := uuid.NewString()
	require.NoError(t, s.Record(Run{
		ID:        id,
		StartedAt: time.Now(),
		Source:    "cursor",
		Target:    "claude",
		Files:     2,
	}, []FileRecord{
		{Path: "rules/b.mdc", Output: "out/b/SKILL.md", Warnings: 1},
		{Path: "rules/a.mdc", Output: "out/a/SKILL.md"},
	}))

	files, err := s.Files(id)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "rules/a.mdc", files[0].Path, "rows come back sorted by path")
	assert.Equal(t, "rules/b.mdc", files[1].Path)
	assert.Equal(t, 1, files[1].Warnings)
}

func TestFilesUnknownRun(t *testing.T) {
	s := openTestStore(t)
	files, err := s.Files("no-such-run")
	require.NoError(t, err)
	assert.Empty(t, files)
}
