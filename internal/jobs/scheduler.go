package jobs

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"imagemarket/api/internal/service"
)

// Scheduler runs periodic maintenance. Uploads are not atomic, so a crash
// between file write and metadata save leaves orphaned files behind; the
// nightly sweep reclaims them.
type Scheduler struct {
	cron    *cron.Cron
	uploads *service.UploadService
	log     zerolog.Logger
}

func NewScheduler(uploads *service.UploadService, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		uploads: uploads,
		log:     log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 0 3 * * *", s.sweepOrphans); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop halts scheduling and waits up to five seconds for a running sweep.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
	}
}

func (s *Scheduler) sweepOrphans() {
	removed, err := s.uploads.SweepOrphans()
	if err != nil {
		s.log.Error().Err(err).Msg("orphan sweep failed")
		return
	}
	if removed > 0 {
		s.log.Info().Int("removed", removed).Msg("orphan sweep removed files")
	}
}
