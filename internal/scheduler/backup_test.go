package scheduler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/database/books"
)

// fakeSnapshotter writes an empty file per backup.
type fakeSnapshotter struct {
	err   error
	calls int
}

func (f *fakeSnapshotter) Backup(ctx context.Context, destPath string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(destPath, nil, 0o644)
}

// tickingClock returns a time one second later on every call.
func tickingClock() func() time.Time {
	current := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func TestBackupScheduler_RunNowSnapshotsDatabase(t *testing.T) {
	dir := t.TempDir()
	db, err := database.Open(filepath.Join(dir, "library.db"), logger.Silent)
	require.NoError(t, err)
	defer db.Close()

	_, err = books.NewRepository(db.DB).CreateBook(context.Background(), "Dune", "Frank Herbert", 4.8)
	require.NoError(t, err)

	s := NewBackupScheduler(db, BackupConfig{Dir: filepath.Join(dir, "backups")})
	dest, err := s.RunNow(context.Background())
	require.NoError(t, err)
	assert.FileExists(t, dest)

	snapshot, err := database.Open(dest, logger.Silent)
	require.NoError(t, err)
	defer snapshot.Close()

	restored, err := books.NewRepository(snapshot.DB).ListBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, restored, 1)
	assert.Equal(t, "Dune", restored[0].Title)
}

func TestBackupScheduler_PrunesOldSnapshots(t *testing.T) {
	dir := t.TempDir()
	s := NewBackupScheduler(&fakeSnapshotter{}, BackupConfig{Dir: dir, Keep: 2})
	s.now = tickingClock()

	var written []string
	for i := 0; i < 4; i++ {
		dest, err := s.RunNow(context.Background())
		require.NoError(t, err)
		written = append(written, dest)
	}

	// Unrelated files are left alone
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))

	snapshots, err := s.Snapshots()
	require.NoError(t, err)
	assert.Equal(t, written[2:], snapshots)
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}

func TestBackupScheduler_RunNowReportsFailure(t *testing.T) {
	s := NewBackupScheduler(&fakeSnapshotter{err: errors.New("disk full")}, BackupConfig{Dir: t.TempDir()})

	_, err := s.RunNow(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestBackupScheduler_Start(t *testing.T) {
	t.Run("disabled without schedule", func(t *testing.T) {
		s := NewBackupScheduler(&fakeSnapshotter{}, BackupConfig{Dir: t.TempDir()})

		require.NoError(t, s.Start())
		assert.False(t, s.running())
		assert.Nil(t, s.nextRun())
	})

	t.Run("rejects invalid schedule", func(t *testing.T) {
		s := NewBackupScheduler(&fakeSnapshotter{}, BackupConfig{Schedule: "every day", Dir: t.TempDir()})

		assert.Error(t, s.Start())
		assert.False(t, s.running())
	})

	t.Run("runs until stopped", func(t *testing.T) {
		s := NewBackupScheduler(&fakeSnapshotter{}, BackupConfig{Schedule: "0 3 * * *", Dir: t.TempDir()})

		require.NoError(t, s.Start())
		assert.True(t, s.running())

		next := s.nextRun()
		require.NotNil(t, next)
		assert.Equal(t, 3, next.Hour())
		assert.True(t, next.After(time.Now()))

		s.Stop()
		assert.False(t, s.running())
		assert.Nil(t, s.nextRun())
	})
}

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, ValidateSchedule("*/15 * * * *"))
	assert.NoError(t, ValidateSchedule("@daily"))
	assert.Error(t, ValidateSchedule("* * *"))
}
