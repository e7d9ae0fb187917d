package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// HealthService provides health check functionality for the probes and the
// version endpoint.
type HealthService struct {
	version   string
	buildTime string
	startTime time.Time
	rates     *RateService
	sessions  interface{ Count() int }
	logger    *slog.Logger
}

// HealthStatus represents the health status response.
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// VersionInfo describes the running build.
type VersionInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// NewHealthService creates a new health service.
func NewHealthService(version, buildTime string, rates *RateService, sessions interface{ Count() int }, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		buildTime: buildTime,
		startTime: time.Now(),
		rates:     rates,
		sessions:  sessions,
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// Check returns the overall health snapshot.
func (hs *HealthService) Check(ctx context.Context) *HealthStatus {
	return &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime_seconds": time.Since(hs.startTime).Seconds(),
			"goroutines":     runtime.NumGoroutine(),
			"go_version":     runtime.Version(),
		},
		Services: map[string]interface{}{
			"dataset_loaded": hs.rates.DatasetLoaded(),
			"sessions":       hs.sessions.Count(),
		},
	}
}

// Ready reports whether the service can answer data requests. The dataset
// loads lazily, so readiness is true once the process is up; the first data
// request triggers the load and surfaces any DataLoadError itself.
func (hs *HealthService) Ready(ctx context.Context) bool {
	return true
}

// Version returns the build information.
func (hs *HealthService) Version(ctx context.Context) VersionInfo {
	return VersionInfo{
		Version:   hs.version,
		BuildTime: hs.buildTime,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}
