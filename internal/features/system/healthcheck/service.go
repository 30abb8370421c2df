package system_healthcheck

import (
	"fmt"

	"agilcurn/internal/storage"
	cache_utils "agilcurn/internal/util/cache"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

type HealthcheckService struct{}

type SystemStatusDTO struct {
	Status            string  `json:"status"`
	CPUUsagePercent   float64 `json:"cpuUsagePercent"`
	MemoryUsedPercent float64 `json:"memoryUsedPercent"`
	DiskUsedPercent   float64 `json:"diskUsedPercent"`
}

func (s *HealthcheckService) IsAvailable() error {
	if err := storage.GetDb().Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("database check failed: %w", err)
	}

	if err := s.testCacheConnection(); err != nil {
		return fmt.Errorf("cache check failed: %w", err)
	}

	return nil
}

func (s *HealthcheckService) GetSystemStatus() *SystemStatusDTO {
	status := &SystemStatusDTO{Status: "ok"}

	if percentages, err := cpu.Percent(0, false); err == nil && len(percentages) > 0 {
		status.CPUUsagePercent = percentages[0]
	}

	if memory, err := mem.VirtualMemory(); err == nil {
		status.MemoryUsedPercent = memory.UsedPercent
	}

	if usage, err := disk.Usage("/"); err == nil {
		status.DiskUsedPercent = usage.UsedPercent
	}

	if err := s.IsAvailable(); err != nil {
		status.Status = "degraded"
	}

	return status
}

func (s *HealthcheckService) testCacheConnection() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cache connection test panicked: %v", r)
		}
	}()

	cache_utils.TestCacheConnection()
	return nil
}
