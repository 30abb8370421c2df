package reports

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"agilcurn/internal/config"
	projects_services "agilcurn/internal/features/projects/services"
)

type ReportBackgroundService struct {
	reportService  *ReportService
	projectService *projects_services.ProjectService
	logger         *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

const bottleneckSweepInterval = 7 * 24 * time.Hour

func (s *ReportBackgroundService) StartWorkers() {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("Starting report background workers",
		slog.Duration("sweepInterval", bottleneckSweepInterval))

	s.wg.Add(1)
	go s.bottleneckSweepWorker()
}

func (s *ReportBackgroundService) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *ReportBackgroundService) ExecuteAllTasksForTest() error {
	return s.sweepAllProjects()
}

func (s *ReportBackgroundService) bottleneckSweepWorker() {
	defer s.wg.Done()

	ticker := time.NewTicker(bottleneckSweepInterval)
	defer ticker.Stop()

	s.logger.Info("Bottleneck sweep worker started",
		slog.Duration("interval", bottleneckSweepInterval))

	for {
		if config.IsShouldShutdown() {
			s.logger.Info("Bottleneck sweep worker shutting down due to shutdown signal")
			return
		}

		select {
		case <-s.ctx.Done():
			s.logger.Info("Bottleneck sweep worker shutting down")
			return

		case <-ticker.C:
			if err := s.sweepAllProjects(); err != nil {
				s.logger.Error("Error during bottleneck sweep", slog.String("error", err.Error()))
			}
		}
	}
}

func (s *ReportBackgroundService) sweepAllProjects() error {
	projects, err := s.projectService.GetAllProjects()
	if err != nil {
		return fmt.Errorf("failed to get all projects: %w", err)
	}

	sweepFailures := 0

	for _, project := range projects {
		if err := s.reportService.SweepProject(project); err != nil {
			sweepFailures++
			s.logger.Error("Failed to sweep project for bottlenecks",
				slog.String("projectId", project.ID.String()),
				slog.String("error", err.Error()))
		}
	}

	s.logger.Info("Bottleneck sweep completed",
		slog.Int("processedProjects", len(projects)),
		slog.Int("sweepFailures", sweepFailures))

	if sweepFailures > 0 {
		return fmt.Errorf("bottleneck sweep failed for %d projects", sweepFailures)
	}

	return nil
}
