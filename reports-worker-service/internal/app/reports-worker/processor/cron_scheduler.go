package processor

import (
	"context"

	"smarttech/pkg/logger"
	"smarttech/reports-worker-service/internal/app/reports-worker/service"

	"github.com/robfig/cron/v3"
)

// CronScheduler периодически генерирует отчёты о продажах
type CronScheduler struct {
	cron      *cron.Cron
	reportSvc service.ReportServiceInterface
}

// NewCronScheduler создает новый планировщик отчётов
func NewCronScheduler(reportSvc service.ReportServiceInterface) *CronScheduler {
	return &CronScheduler{
		cron:      cron.New(),
		reportSvc: reportSvc,
	}
}

// Start регистрирует задачу генерации отчёта и запускает планировщик
func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("Starting cron scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		logger.Info().Msg("Cron job triggered: generating daily sales report")

		if _, err := s.reportSvc.GenerateDailyReport(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to generate daily sales report")
		} else {
			logger.Info().Msg("Cron job completed: daily sales report generated")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logger.Info().Msg("Cron scheduler started")

	return nil
}

// Stop останавливает планировщик и дожидается завершения текущих задач
func (s *CronScheduler) Stop() {
	logger.Info().Msg("Stopping cron scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Cron scheduler stopped")
}

// GetEntries возвращает зарегистрированные задачи планировщика
func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
