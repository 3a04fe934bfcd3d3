package maintenance

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper removes stale export archives from the storage base directory.
// Exports are written next to the owner trees as <project_id>.zip and are
// only needed long enough for the download to complete.
type Sweeper struct {
	baseDir   string
	retention time.Duration
	cron      *cron.Cron
}

func NewSweeper(baseDir string, retention time.Duration) *Sweeper {
	return &Sweeper{
		baseDir:   baseDir,
		retention: retention,
	}
}

// Start schedules an hourly sweep.
func (s *Sweeper) Start() {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc("0 0 * * * *", func() {
		removed, err := s.SweepOnce()
		if err != nil {
			log.Printf("Archive sweep failed: %v", err)
			return
		}
		if removed > 0 {
			log.Printf("Archive sweep removed %d stale exports", removed)
		}
	})
	if err != nil {
		log.Printf("Failed to create sweep job: %v", err)
		return
	}

	log.Println("Archive sweeper started (running hourly)")
	c.Start()
	s.cron = c
}

// Stop halts the schedule. Safe to call when Start was never called.
func (s *Sweeper) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// SweepOnce removes every export archive older than the retention window
// and returns how many were deleted.
func (s *Sweeper) SweepOnce() (int, error) {
	archives, err := filepath.Glob(filepath.Join(s.baseDir, "*.zip"))
	if err != nil {
		return 0, fmt.Errorf("glob archives: %w", err)
	}

	cutoff := time.Now().Add(-s.retention)
	removed := 0
	for _, path := range archives {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(path); err != nil {
			log.Printf("Failed to remove stale archive %s: %v", path, err)
			continue
		}
		removed++
	}
	return removed, nil
}
