package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/erp/syncbridge/internal/domain/integration"
	"github.com/erp/syncbridge/internal/infrastructure/scheduler"
	"github.com/erp/syncbridge/internal/interfaces/http/dto"
)

// SystemHandler handles system-related API endpoints
type SystemHandler struct {
	BaseHandler
	name      string
	version   string
	env       string
	upstreams map[integration.System]any
	jobs      SyncJobSource
	startTime time.Time
}

// SyncJobSource lists the latest scheduled sync jobs
type SyncJobSource interface {
	Jobs() []scheduler.Job
}

// NewSystemHandler creates a new SystemHandler. upstreams maps each remote
// system to the adapter serving it so /health can report its configuration.
func NewSystemHandler(name, version, env string, upstreams map[integration.System]any) *SystemHandler {
	return &SystemHandler{
		name:      name,
		version:   version,
		env:       env,
		upstreams: upstreams,
		startTime: time.Now(),
	}
}

// SetJobSource exposes the scheduler's jobs on /system/jobs
func (h *SystemHandler) SetJobSource(jobs SyncJobSource) {
	h.jobs = jobs
}

// SystemInfoResponse represents the system information response
// @name HandlerSystemInfoResponse
type SystemInfoResponse struct {
	Name      string `json:"name" example:"erp-sync-bridge"`
	Version   string `json:"version" example:"1.0.0"`
	Env       string `json:"env" example:"development"`
	GoVersion string `json:"go_version" example:"go1.25.5"`
	Uptime    string `json:"uptime" example:"1h30m45s"`
}

// HealthResponse represents the health check response
// @name HandlerHealthResponse
type HealthResponse struct {
	Status    string          `json:"status" example:"ok"`
	Upstreams map[string]bool `json:"upstreams"`
}

// Health godoc
// @ID           health
// @Summary      Health check
// @Description  Reports liveness and whether each upstream system is configured
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[HealthResponse]
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	upstreams := make(map[string]bool, len(h.upstreams))
	for system, adapter := range h.upstreams {
		upstreams[string(system)] = integration.RequireConfigured(system, adapter) == nil
	}
	h.Success(c, HealthResponse{Status: "ok", Upstreams: upstreams})
}

// GetSystemInfo godoc
// @ID           getSystemSystemInfo
// @Summary      Get system information
// @Description  Returns basic system information including version and uptime
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[SystemInfoResponse]
// @Router       /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      h.name,
		Version:   h.version,
		Env:       h.env,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}

// PingResponse represents the ping response
// @name HandlerPingResponse
type PingResponse struct {
	Message   string `json:"message" example:"pong"`
	Timestamp string `json:"timestamp" example:"2026-01-23T12:00:00Z"`
}

// Ping godoc
// @ID           pingSystem
// @Summary      Ping the API
// @Description  Simple ping endpoint to check if the API is responsive
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[PingResponse]
// @Router       /system/ping [get]
func (h *SystemHandler) Ping(c *gin.Context) {
	response := PingResponse{
		Message:   "pong",
		Timestamp: time.Now().Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// ListSyncJobs godoc
// @ID           listSystemSyncJobs
// @Summary      List scheduled sync jobs
// @Description  Returns the latest run of each scheduled reconciliation pass
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[[]scheduler.Job]
// @Router       /system/jobs [get]
func (h *SystemHandler) ListSyncJobs(c *gin.Context) {
	if h.jobs == nil {
		h.Success(c, []scheduler.Job{})
		return
	}
	h.Success(c, h.jobs.Jobs())
}
