package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockbot/internal/config"
	"github.com/mamadbah2/stockbot/internal/domain/models"
	"github.com/mamadbah2/stockbot/internal/service/whatsapp"
)

// DailyReporter produces the end-of-day report text.
type DailyReporter interface {
	RunDaily(ctx context.Context, now time.Time) (string, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron         *cron.Cron
	reporter     DailyReporter
	messagingSvc whatsapp.MessagingService
	cfg          config.Config
	logger       *zap.Logger
	now          func() time.Time
}

// NewScheduler creates a new scheduler instance running in the configured timezone.
func NewScheduler(cfg config.Config, reporter DailyReporter, messagingSvc whatsapp.MessagingService, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := cron.New(cron.WithLocation(cfg.Location()))

	return &Scheduler{
		cron:         c,
		reporter:     reporter,
		messagingSvc: messagingSvc,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

// Start registers the daily report job and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler",
		zap.String("schedule", s.cfg.Reporting.CronSchedule),
		zap.String("timezone", s.cfg.Reporting.Timezone))

	if _, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.sendDailyReport); err != nil {
		return fmt.Errorf("schedule daily report %q: %w", s.cfg.Reporting.CronSchedule, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sendDailyReport() {
	s.logger.Info("generating daily report")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.runDailyReport(ctx); err != nil {
		s.logger.Error("daily report failed", zap.Error(err))
	}
}

func (s *Scheduler) runDailyReport(ctx context.Context) error {
	report, err := s.reporter.RunDaily(ctx, s.now())
	if err != nil {
		return fmt.Errorf("generate daily report: %w", err)
	}

	recipient := s.cfg.WhatsApp.ReportRecipient
	if recipient == "" {
		s.logger.Info("daily report generated, no recipient configured")
		return nil
	}

	req := models.OutboundMessageRequest{
		To:      recipient,
		Message: report,
	}
	if err := s.messagingSvc.SendOutbound(ctx, req); err != nil {
		return fmt.Errorf("send daily report: %w", err)
	}

	s.logger.Info("daily report sent successfully", zap.String("to", recipient))
	return nil
}
