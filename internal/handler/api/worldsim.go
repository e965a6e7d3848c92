package api

import (
	"errors"
	"net/http"
	"time"

	models "WorldSim/internal/domain/models"
	"WorldSim/internal/engine"
	"WorldSim/internal/service/briefing"
	"WorldSim/internal/usecase"
	xhttp "WorldSim/pkg/http"
	xlogger "WorldSim/pkg/logger"

	"github.com/labstack/echo/v4"
)

// WorldSimHandler implements Echo-based HTTP handlers following Clean Architecture.
type WorldSimHandler struct {
	logger   *xlogger.Logger
	sim      *usecase.Simulate
	briefing *briefing.Client
	started  time.Time
}

func NewWorldSimHandler(logger *xlogger.Logger, sim *usecase.Simulate, bc *briefing.Client) *WorldSimHandler {
	return &WorldSimHandler{logger: logger, sim: sim, briefing: bc, started: time.Now()}
}

func (h *WorldSimHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/simulate", h.Simulate)
	g.GET("/simulate", h.Simulate)
	g.GET("/health", h.Health)
	g.POST("/briefing", h.Briefing)
	g.GET("/briefing/status", h.BriefingStatus)
}

func (h *WorldSimHandler) Simulate(c echo.Context) error {
	req := &models.SimulateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.sim.Run(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("simulate usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapDomainError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *WorldSimHandler) Health(c echo.Context) error {
	ds := h.sim.Dataset()
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int(time.Since(h.started).Seconds()),
		"dataset_rows":   ds.NumRows(),
		"tick_range":     [2]int{ds.MinTick(), ds.MaxTick()},
		"states":         len(ds.States()),
	})
}

func (h *WorldSimHandler) Briefing(c echo.Context) error {
	if h.briefing == nil {
		return xhttp.AppErrorResponse(c,
			xhttp.NewAppError("ERR_BRIEFING_DISABLED", "", "briefing model is not configured", http.StatusServiceUnavailable))
	}

	req := &models.BriefingRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	text, err := h.briefing.Analyze(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("briefing error", xlogger.String("model", req.Model), xlogger.Error(err))
		return xhttp.AppErrorResponse(c,
			xhttp.NewAppError("ERR_BRIEFING_FAILED", "", "model analysis failed", http.StatusBadGateway).WithError(err))
	}
	return xhttp.SuccessResponse(c, map[string]string{
		"model":    req.Model,
		"analysis": text,
	})
}

func (h *WorldSimHandler) BriefingStatus(c echo.Context) error {
	if h.briefing == nil {
		return xhttp.SuccessResponse(c, briefing.Status{OK: false, Models: []string{}, Error: "briefing disabled"})
	}
	return xhttp.SuccessResponse(c, h.briefing.Status(c.Request().Context()))
}

// mapDomainError translates aggregation errors to transport errors. Invalid
// windows and unknown states are caller mistakes; gaps and empty windows mean
// the loaded dataset violates its own contract.
func mapDomainError(err error) error {
	var invalid *engine.InvalidRangeError
	if errors.As(err, &invalid) {
		return xhttp.NewAppError("ERR_INVALID_RANGE", "", invalid.Error(), http.StatusBadRequest).WithError(err)
	}
	var unknown *engine.UnknownStateError
	if errors.As(err, &unknown) {
		return xhttp.NewAppError("ERR_UNKNOWN_STATE", "state", unknown.Error(), http.StatusBadRequest).WithError(err)
	}
	var gap *engine.DataGapError
	if errors.As(err, &gap) {
		return xhttp.NewAppError("ERR_DATA_INTEGRITY", "", gap.Error(), http.StatusInternalServerError).WithError(err)
	}
	var empty *engine.EmptyRangeError
	if errors.As(err, &empty) {
		return xhttp.NewAppError("ERR_DATA_INTEGRITY", "", empty.Error(), http.StatusInternalServerError).WithError(err)
	}
	return xhttp.InternalError("simulation failed").WithError(err)
}
