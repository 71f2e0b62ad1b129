// services/scheduler.go
package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const refreshTimeout = 5 * time.Minute

// ReportScheduler refreshes the default reports on a cron schedule.
type ReportScheduler struct {
	cron    *cron.Cron
	reports *ReportService
	log     zerolog.Logger
}

func NewReportScheduler(reports *ReportService, log zerolog.Logger) *ReportScheduler {
	return &ReportScheduler{
		cron:    cron.New(),
		reports: reports,
		log:     log,
	}
}

// Start registers the refresh job under spec (standard 5 field cron) and
// starts the scheduler.
func (s *ReportScheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.refresh); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info().Str("schedule", spec).Msg("Report scheduler started")
	return nil
}

// Stop waits for a running refresh to finish.
func (s *ReportScheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *ReportScheduler) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()
	s.log.Info().Msg("Refreshing reports")
	s.reports.Refresh(ctx)
}
