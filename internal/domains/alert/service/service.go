package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"smartpark/config"
	"smartpark/infras/metrics"
	"smartpark/infras/otel"
	"smartpark/internal/domains/alert/model"
	"smartpark/internal/domains/alert/model/dto"
	slotModel "smartpark/internal/domains/slot/model"
	slotRepo "smartpark/internal/domains/slot/repository"
	"smartpark/internal/integrations/notifier"
	"smartpark/shared/constant"
	"smartpark/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const defaultInterval = time.Minute

// Report summarizes one alert cycle.
type Report struct {
	Scanned int `json:"scanned"`
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

type Alert interface {
	// RunCycle evaluates every occupied slot once and sends the alerts that fall in this cycle's window.
	// Send failures are counted, never returned.
	RunCycle(ctx context.Context) (Report, error)
	// Run calls RunCycle every configured interval until ctx is done.
	Run(ctx context.Context)
	ListOverdue(ctx context.Context) (dto.ListOverdueResponse, error)
}

type serviceImpl struct {
	repo     slotRepo.Slot
	notifier notifier.Notifier
	clock    timezone.Clock
	metrics  *metrics.Metrics
	limiter  *rate.Limiter
	cfg      *config.Config
	otel     otel.Otel
}

func New(repo slotRepo.Slot, notifier notifier.Notifier, clock timezone.Clock, metrics *metrics.Metrics, cfg *config.Config, otel otel.Otel) Alert {
	limit := rate.Inf
	if cfg.Parking.Notifier.SendRate > 0 {
		limit = rate.Limit(cfg.Parking.Notifier.SendRate)
	}

	burst := max(cfg.Parking.Notifier.SendBurst, 1)

	return &serviceImpl{
		repo:     repo,
		notifier: notifier,
		clock:    clock,
		metrics:  metrics,
		limiter:  rate.NewLimiter(limit, burst),
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) RunCycle(ctx context.Context) (report Report, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelSchedulerScopeName, constant.OtelSchedulerScopeName+".alert.RunCycle")
	defer scope.End()

	started := time.Now()
	defer func() { s.metrics.AlertCycle(time.Since(started)) }()

	slots, err := s.repo.FindByStatus(ctx, slotModel.StatusOccupied, nil, nil)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to scan occupied slots")

		return report, fmt.Errorf("failed to scan occupied slots: %w", err)
	}

	now := s.clock.Now()
	subject := s.subject()

	for _, slot := range slots {
		report.Scanned++

		occ, ok := slot.Occupancy()
		if !ok {
			report.Skipped++
			log.Warn().Str("slot_id", slot.ID).Msg("occupied slot is missing occupancy attributes, skipping alert")

			continue
		}

		alert, ok := model.Evaluate(slot, now)
		if !ok {
			continue
		}

		if err = s.limiter.Wait(ctx); err != nil {
			return report, fmt.Errorf("alert cycle interrupted: %w", err)
		}

		err = s.notifier.Send(ctx, occ.HolderContact, subject, alert.Message(slot.ID))
		if err != nil {
			report.Failed++
			s.metrics.Alert(string(alert.Kind), metrics.ResultFailure)
			log.Warn().Err(err).Str("slot_id", slot.ID).Str("kind", string(alert.Kind)).Msg("failed to send alert")

			continue
		}

		report.Sent++
		s.metrics.Alert(string(alert.Kind), metrics.ResultSuccess)
		log.Info().Str("slot_id", slot.ID).Str("kind", string(alert.Kind)).Int("minutes", alert.Minutes).Msg("alert sent")
	}

	scope.SetAttributes(map[string]any{
		"alert.scanned": report.Scanned,
		"alert.sent":    report.Sent,
		"alert.failed":  report.Failed,
	})

	return report, nil
}

func (s *serviceImpl) Run(ctx context.Context) {
	interval := time.Duration(s.cfg.Parking.Alert.IntervalSeconds) * time.Second
	if interval <= 0 {
		interval = defaultInterval
	}

	log.Info().Dur("interval", interval).Msg("alert scheduler started")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("alert scheduler stopped")

			return
		case <-ticker.C:
			report, err := s.RunCycle(ctx)
			if err != nil {
				log.Error().Err(err).Msg("alert cycle failed")

				continue
			}

			log.Debug().Int("scanned", report.Scanned).Int("sent", report.Sent).Int("failed", report.Failed).Msg("alert cycle finished")
		}
	}
}

func (s *serviceImpl) ListOverdue(ctx context.Context) (res dto.ListOverdueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".alert.ListOverdue")
	defer scope.End()

	slots, err := s.repo.FindByStatus(ctx, slotModel.StatusOccupied, nil, nil)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get occupied slots")

		return res, fmt.Errorf("failed to get occupied slots: %w", err)
	}

	now := s.clock.Now()
	res.Alerts = []dto.OverdueResponse{}

	for _, slot := range slots {
		occ, ok := slot.Occupancy()
		if !ok || !now.After(occ.ExpectedExitTime) {
			continue
		}

		var item dto.OverdueResponse
		item.FromModel(slot, occ, now)
		res.Alerts = append(res.Alerts, item)
	}

	res.Total = len(res.Alerts)

	return res, nil
}

func (s *serviceImpl) subject() string {
	if s.cfg.Parking.Notifier.Subject != "" {
		return s.cfg.Parking.Notifier.Subject
	}

	return model.Subject
}
