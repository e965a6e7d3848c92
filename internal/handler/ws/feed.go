// Package ws streams the global tick series to dashboard clients over a
// websocket, one frame per tick, so charts can animate a window instead of
// rendering it all at once.
package ws

import (
	"net/http"
	"time"

	models "WorldSim/internal/domain/models"
	"WorldSim/internal/engine"
	"WorldSim/internal/usecase"
	xhttp "WorldSim/pkg/http"
	xlogger "WorldSim/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const frameInterval = 50 * time.Millisecond

// FeedHandler upgrades /ws/series requests and replays the selected window.
type FeedHandler struct {
	logger   *xlogger.Logger
	sim      *usecase.Simulate
	upgrader websocket.Upgrader
}

func NewFeedHandler(logger *xlogger.Logger, sim *usecase.Simulate) *FeedHandler {
	return &FeedHandler{
		logger: logger,
		sim:    sim,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *FeedHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/series", h.Series)
}

// frame is one tick of the global series.
type frame struct {
	Type             string  `json:"type"`
	Tick             int     `json:"tick,omitempty"`
	TotalPopulation  float64 `json:"total_population,omitempty"`
	TotalGDP         float64 `json:"total_gdp,omitempty"`
	AvgWelfare       float64 `json:"avg_welfare,omitempty"`
	TotalTradeVolume float64 `json:"total_trade_volume,omitempty"`
	Ticks            int     `json:"ticks,omitempty"`
	Error            string  `json:"error,omitempty"`
}

func (h *FeedHandler) Series(c echo.Context) error {
	req := &models.SeriesFeedRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", xlogger.Error(err))
		return nil
	}
	defer conn.Close()

	tickStart, tickEnd := req.Window()
	w, err := engine.New(h.sim.Dataset(), tickStart, tickEnd)
	if err != nil {
		_ = conn.WriteJSON(frame{Type: "error", Error: err.Error()})
		return nil
	}
	series, err := w.GlobalSeries()
	if err != nil {
		_ = conn.WriteJSON(frame{Type: "error", Error: err.Error()})
		return nil
	}

	h.logger.Debug("ws series feed",
		xlogger.Int("tick_start", tickStart),
		xlogger.Int("tick_end", tickEnd),
		xlogger.String("remote", conn.RemoteAddr().String()),
	)

	// Reader goroutine only to notice the client hanging up mid-replay.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for i, tick := range series.Ticks {
		select {
		case <-done:
			return nil
		case <-c.Request().Context().Done():
			return nil
		case <-ticker.C:
		}

		f := frame{
			Type:             "tick",
			Tick:             tick,
			TotalPopulation:  series.TotalPopulation[i],
			TotalGDP:         series.TotalGDP[i],
			AvgWelfare:       series.AvgWelfare[i],
			TotalTradeVolume: series.TotalTradeVolume[i],
		}
		if err := conn.WriteJSON(f); err != nil {
			return nil
		}
	}

	_ = conn.WriteJSON(frame{Type: "complete", Ticks: len(series.Ticks)})
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"), time.Now().Add(time.Second))
	return nil
}
