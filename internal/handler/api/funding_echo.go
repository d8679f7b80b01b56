package api

import (
	"time"

	"FundRadar/internal/domain/models"
	drepo "FundRadar/internal/domain/repository"
	"FundRadar/internal/usecase"
	xhttp "FundRadar/pkg/http"
	xlogger "FundRadar/pkg/logger"
	"FundRadar/pkg/util"

	"github.com/labstack/echo/v4"
)

// FundingEchoHandler exposes the canonical table and the ranked discrepancy
// view over Echo.
type FundingEchoHandler struct {
	logger   *xlogger.Logger
	builder  *usecase.SnapshotBuilder
	ranker   *usecase.Ranker
	store    drepo.SnapshotCache // nil when caching is disabled
	cacheTTL time.Duration
	hub      *Hub
}

func NewFundingEchoHandler(
	logger *xlogger.Logger,
	builder *usecase.SnapshotBuilder,
	ranker *usecase.Ranker,
	store drepo.SnapshotCache,
	cacheTTL time.Duration,
	hub *Hub,
) *FundingEchoHandler {
	return &FundingEchoHandler{
		logger:   logger,
		builder:  builder,
		ranker:   ranker,
		store:    store,
		cacheTTL: cacheTTL,
		hub:      hub,
	}
}

func (h *FundingEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/funding", h.Funding)
	g.GET("/opportunities", h.Opportunities)
	e.GET("/healthz", h.Health)
	if h.hub != nil {
		e.GET("/ws/funding", h.hub.Serve)
	}
}

// Funding returns the canonical asset -> venue -> hourly-rate table. An
// unfiltered call may be served from the snapshot cache; filtered calls
// always run a fresh cycle.
func (h *FundingEchoHandler) Funding(c echo.Context) error {
	req := &models.FundingRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	opts := usecase.BuildOptions{
		Bases:  util.SplitUpperCSV(req.Bases),
		Limit:  req.Limit,
		Quotes: util.SplitUpperCSV(req.Quotes),
	}
	filtered := len(opts.Bases) > 0 || opts.Limit > 0 || len(opts.Quotes) > 0

	if !filtered {
		if snap, ok := h.cached(c); ok {
			return xhttp.SuccessResponse(c, snap)
		}
	}

	snap, err := h.builder.Build(c.Request().Context(), opts)
	if err != nil {
		h.logger.Error("cycle failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c,
			xhttp.BadGatewayErrorf("funding sources unavailable: %v", err).WithError(err))
	}

	if !filtered && h.store != nil {
		if err := h.store.Set(c.Request().Context(), snap, h.cacheTTL); err != nil {
			h.logger.Warn("snapshot cache set failed", xlogger.Error(err))
		}
	}
	return xhttp.SuccessResponse(c, snap)
}

// Opportunities returns the top cross-venue discrepancies of the current
// table, sign-flipped spreads first.
func (h *FundingEchoHandler) Opportunities(c echo.Context) error {
	req := &models.OpportunitiesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	snap, ok := h.cached(c)
	if !ok {
		var err error
		snap, err = h.builder.Build(c.Request().Context(), usecase.BuildOptions{})
		if err != nil {
			h.logger.Error("cycle failed", xlogger.Error(err))
			return xhttp.AppErrorResponse(c,
				xhttp.BadGatewayErrorf("funding sources unavailable: %v", err).WithError(err))
		}
		if h.store != nil {
			if err := h.store.Set(c.Request().Context(), snap, h.cacheTTL); err != nil {
				h.logger.Warn("snapshot cache set failed", xlogger.Error(err))
			}
		}
	}

	rows := h.ranker.Rank(snap.Data, req.Top)
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

// Health reports whether a snapshot exists and how old it is.
func (h *FundingEchoHandler) Health(c echo.Context) error {
	type health struct {
		Status       string `json:"status"`
		LastCycle    string `json:"lastCycle,omitempty"`
		LastCycleAge string `json:"lastCycleAge,omitempty"`
	}

	if snap, ok := h.cached(c); ok {
		return xhttp.SuccessResponse(c, health{
			Status:       "ok",
			LastCycle:    snap.Timestamp.Format(time.RFC3339),
			LastCycleAge: time.Since(snap.Timestamp).Truncate(time.Second).String(),
		})
	}
	return xhttp.ServiceUnavailableResponse(c, health{Status: "no snapshot yet"})
}

func (h *FundingEchoHandler) cached(c echo.Context) (*models.Snapshot, bool) {
	if h.store == nil {
		return nil, false
	}
	snap, ok, err := h.store.Get(c.Request().Context())
	if err != nil {
		h.logger.Warn("snapshot cache get failed", xlogger.Error(err))
		return nil, false
	}
	return snap, ok
}
