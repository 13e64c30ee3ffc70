package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/config"
	"github.com/mamadbah2/stockdesk/internal/repository/sheets"
	"github.com/mamadbah2/stockdesk/internal/service/dataset"
	"github.com/mamadbah2/stockdesk/internal/service/export"
	"github.com/mamadbah2/stockdesk/internal/service/inventory"
	"github.com/mamadbah2/stockdesk/pkg/clients/alert"
)

// Scheduler runs periodic inventory snapshots: a server-side CSV export, a
// low-stock alert when something is scarce, and an optional spreadsheet
// mirror. It only exists when a cron schedule is configured; the API stays
// request-driven either way.
type Scheduler struct {
	cron     *cron.Cron
	inv      inventory.Manager
	exporter *export.Service
	alerter  alert.Client
	mirror   sheets.Mirror
	cfg      config.Config
	logger   *zap.Logger
}

// NewScheduler creates a snapshot scheduler in the configured timezone.
// alerter and mirror are optional; pass nil to disable either sink.
func NewScheduler(cfg config.Config, inv inventory.Manager, exporter *export.Service, alerter alert.Client, mirror sheets.Mirror, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Snapshot.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load snapshot timezone: %w", err)
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		inv:      inv,
		exporter: exporter,
		alerter:  alerter,
		mirror:   mirror,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// Start registers the snapshot job and launches the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting snapshot scheduler", zap.String("schedule", s.cfg.Snapshot.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.Snapshot.CronSchedule, s.takeSnapshot)
	if err != nil {
		s.logger.Error("failed to schedule snapshot", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping snapshot scheduler")
	s.cron.Stop()
}

func (s *Scheduler) takeSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	rows, err := s.inv.Snapshot(ctx)
	if err != nil {
		s.logger.Error("snapshot fetch failed", zap.Error(err))
		return
	}

	if _, err := s.exporter.WriteFile(rows, s.cfg.Export.Path(), s.cfg.Export.IncludeBOM); err != nil {
		s.logger.Error("snapshot export failed", zap.String("path", s.cfg.Export.Path()), zap.Error(err))
	}

	if s.alerter != nil {
		low := dataset.LowStock(rows, s.cfg.Inventory.LowStockThreshold, s.cfg.Inventory.LowStockLimit)
		req := alert.LowStockAlertRequest{Threshold: s.cfg.Inventory.LowStockThreshold, Rows: low}
		if err := s.alerter.SendLowStockAlert(ctx, req); err != nil {
			s.logger.Error("low stock alert failed", zap.Error(err))
		}
	}

	if s.mirror != nil {
		if err := s.mirror.AppendSnapshot(ctx, time.Now(), dataset.Summarize(rows)); err != nil {
			s.logger.Error("sheet mirror append failed", zap.Error(err))
		}
	}

	s.logger.Info("inventory snapshot completed", zap.Int("rows", len(rows)))
}
