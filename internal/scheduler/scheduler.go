// Package scheduler runs the background price-refresh sweep on a cron
// schedule.
package scheduler

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/mdevries/portfolio-tracker-backend/internal/service"
)

// Scheduler periodically refreshes prices for all portfolios.
type Scheduler struct {
	cron           *cron.Cron
	refreshService *service.RefreshService
	schedule       string
}

// New creates a Scheduler that runs the refresh sweep on the given cron
// schedule (standard five-field syntax or a descriptor like "@hourly").
func New(refreshService *service.RefreshService, schedule string) *Scheduler {
	return &Scheduler{
		cron:           cron.New(),
		refreshService: refreshService,
		schedule:       schedule,
	}
}

// Start registers the refresh job and starts the cron loop. The sweep runs
// one portfolio at a time; cron's default job wrapper lets at most the
// schedule's natural overlap occur, and the sweep itself tolerates that.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.refreshService.RefreshAllPortfolios(context.Background()); err != nil {
			log.Printf("scheduled price refresh failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("Price refresh scheduled: %s", s.schedule)
	return nil
}

// Stop stops the cron loop and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
