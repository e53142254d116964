// Package scheduler runs periodic maintenance jobs next to the HTTP server.
// The only job is a snapshot of the catalog database.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	backupPrefix     = "library-"
	backupSuffix     = ".db"
	backupTimeLayout = "20060102T150405.000000000Z"
	backupTimeout    = 5 * time.Minute
)

var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Snapshotter writes a consistent copy of the database to destPath.
type Snapshotter interface {
	Backup(ctx context.Context, destPath string) error
}

// BackupConfig controls where and how often snapshots are taken.
type BackupConfig struct {
	Schedule string // cron expression; empty disables the scheduler
	Dir      string
	Keep     int // snapshots to retain; 0 keeps all of them
}

// BackupScheduler takes database snapshots on a cron schedule.
type BackupScheduler struct {
	db     Snapshotter
	config BackupConfig
	now    func() time.Time

	cron        *cron.Cron
	entryID     cron.EntryID
	mu          sync.RWMutex
	isRunning   bool
	isBackingUp bool
}

// NewBackupScheduler creates a new scheduler instance
func NewBackupScheduler(db Snapshotter, cfg BackupConfig) *BackupScheduler {
	return &BackupScheduler{
		db:     db,
		config: cfg,
		now:    time.Now,
		cron:   cron.New(cron.WithParser(scheduleParser)),
	}
}

// ValidateSchedule checks a cron expression without scheduling anything.
func ValidateSchedule(schedule string) error {
	_, err := scheduleParser.Parse(schedule)
	return err
}

// Start begins the scheduler if a schedule is configured
func (s *BackupScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.config.Schedule == "" {
		log.Printf("Backup scheduler: disabled")
		return nil
	}

	if err := ValidateSchedule(s.config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.config.Schedule, err)
	}

	if err := os.MkdirAll(s.config.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	entryID, err := s.cron.AddFunc(s.config.Schedule, s.runScheduled)
	if err != nil {
		return fmt.Errorf("failed to schedule backup job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	log.Printf("Backup scheduler: started with schedule '%s' into %s. Next run: %v",
		s.config.Schedule, s.config.Dir, s.cron.Entry(entryID).Next)

	return nil
}

// Stop waits for a running backup and stops the scheduler
func (s *BackupScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.mu.Unlock()

	// The running job takes s.mu itself, so wait without holding it
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.cron.Remove(s.entryID)

	log.Printf("Backup scheduler: stopped")
}

// running reports whether the scheduler is active
func (s *BackupScheduler) running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// nextRun returns when the next backup will occur
func (s *BackupScheduler) nextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	next := s.cron.Entry(s.entryID).Next
	return &next
}

// RunNow takes a snapshot immediately and returns its path.
func (s *BackupScheduler) RunNow(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.isBackingUp {
		s.mu.Unlock()
		return "", fmt.Errorf("a backup is already in progress")
	}
	s.isBackingUp = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isBackingUp = false
		s.mu.Unlock()
	}()

	if err := os.MkdirAll(s.config.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	dest := filepath.Join(s.config.Dir, backupPrefix+s.now().UTC().Format(backupTimeLayout)+backupSuffix)
	if err := s.db.Backup(ctx, dest); err != nil {
		return "", fmt.Errorf("failed to write backup %s: %w", dest, err)
	}

	if err := s.prune(); err != nil {
		log.Printf("Backup: warning - failed to prune old backups: %v", err)
	}

	return dest, nil
}

func (s *BackupScheduler) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), backupTimeout)
	defer cancel()

	startTime := time.Now()
	dest, err := s.RunNow(ctx)
	if err != nil {
		log.Printf("Backup: %v", err)
		return
	}
	log.Printf("Backup: wrote %s in %v", dest, time.Since(startTime).Round(time.Millisecond))
}

// Snapshots lists existing backups, oldest first.
func (s *BackupScheduler) Snapshots() ([]string, error) {
	entries, err := os.ReadDir(s.config.Dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, backupSuffix) {
			continue
		}
		names = append(names, filepath.Join(s.config.Dir, name))
	}
	// The timestamp layout sorts lexically
	sort.Strings(names)
	return names, nil
}

func (s *BackupScheduler) prune() error {
	if s.config.Keep <= 0 {
		return nil
	}

	snapshots, err := s.Snapshots()
	if err != nil {
		return err
	}

	for len(snapshots) > s.config.Keep {
		if err := os.Remove(snapshots[0]); err != nil {
			return err
		}
		snapshots = snapshots[1:]
	}
	return nil
}
