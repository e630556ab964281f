package api

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"TradeMind/internal/domain/models"
	"TradeMind/internal/domain/service"
	"TradeMind/internal/service/ratelimit"
	"TradeMind/internal/services/placeholder"
	"TradeMind/internal/usecase"
	xhttp "TradeMind/pkg/http"
	xlogger "TradeMind/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PagesEchoHandler serves the rendered pages and the endpoints their
// scripts call.
type PagesEchoHandler struct {
	logger   *xlogger.Logger
	renderer *usecase.PageRenderer
	risk     *usecase.RiskMeter
	exporter *usecase.ChartExporter
	images   service.ImageGenerator
	limiter  *ratelimit.Limiter
}

func NewPagesEchoHandler(
	logger *xlogger.Logger,
	renderer *usecase.PageRenderer,
	risk *usecase.RiskMeter,
	exporter *usecase.ChartExporter,
	images service.ImageGenerator,
	limiter *ratelimit.Limiter,
) *PagesEchoHandler {
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &PagesEchoHandler{
		logger:   logger,
		renderer: renderer,
		risk:     risk,
		exporter: exporter,
		images:   images,
		limiter:  limiter,
	}
}

func (h *PagesEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Page)
	e.GET("/pages/:page", h.Page)
	e.GET("/healthz", h.Health)
	e.GET("/ws/risk", h.RiskSocket)

	g := e.Group("/api")
	g.GET("/risk-meter", h.RiskMeter)
	g.GET("/charts/:name", h.Chart)
	g.GET("/placeholders/:name", h.Placeholder)
}

func (h *PagesEchoHandler) Page(c echo.Context) error {
	req := &models.PageRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("no page %q", c.Param("page")))
	}

	page, err := h.renderer.Render(c.Request().Context(), req.Page, req.Seed)
	if err != nil {
		if errors.Is(err, usecase.ErrUnknownPage) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundError(err.Error()))
		}
		h.logger.Error("page render error", xlogger.String("page", req.Page), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("page render failed").WithError(err))
	}
	c.Response().Header().Set("X-Render-ID", page.ID)
	c.Response().Header().Set("X-Render-Seed", strconv.FormatInt(page.Seed, 10))
	return c.HTMLBlob(http.StatusOK, page.HTML)
}

func (h *PagesEchoHandler) RiskMeter(c echo.Context) error {
	if h.limiter != nil && !h.limiter.Allow(c.RealIP()) {
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("risk meter rate limit exceeded"))
	}
	req := &models.RiskMeterRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.risk.Evaluate(req.Value)
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PagesEchoHandler) Chart(c echo.Context) error {
	req := &models.ChartRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	switch req.Format {
	case "png":
		var buf bytes.Buffer
		if err := h.exporter.WritePNG(req.Name, req.Seed, &buf); err != nil {
			h.logger.Error("chart png error", xlogger.String("chart", req.Name), xlogger.Error(err))
			return xhttp.AppErrorResponse(c, xhttp.InternalError("chart render failed").WithError(err))
		}
		return c.Blob(http.StatusOK, "image/png", buf.Bytes())
	case "echarts":
		var buf bytes.Buffer
		if err := h.exporter.WriteECharts(req.Name, req.Seed, &buf); err != nil {
			h.logger.Error("chart echarts error", xlogger.String("chart", req.Name), xlogger.Error(err))
			return xhttp.AppErrorResponse(c, xhttp.InternalError("chart render failed").WithError(err))
		}
		return c.HTMLBlob(http.StatusOK, buf.Bytes())
	default:
		cfg, err := h.exporter.Config(req.Name, req.Seed)
		if err != nil {
			return xhttp.AppErrorResponse(c, xhttp.InternalError("chart build failed").WithError(err))
		}
		return xhttp.SuccessResponse(c, cfg)
	}
}

func (h *PagesEchoHandler) Placeholder(c echo.Context) error {
	req := &models.PlaceholderRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	spec, ok := placeholder.Spec(req.Name)
	if !ok {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("no placeholder %q", req.Name))
	}

	img, err := h.images.Generate(c.Request().Context(), spec)
	if err != nil {
		h.logger.Error("placeholder error", xlogger.String("name", req.Name), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("placeholder failed").WithError(err))
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=86400")
	return c.Blob(http.StatusOK, "image/png", img.PNG)
}

type healthResponse struct {
	Status        string                   `json:"status"`
	PendingErrors int                      `json:"pending_errors"`
	RecentErrors  []xlogger.CollectedEntry `json:"recent_errors,omitempty"`
}

func (h *PagesEchoHandler) Health(c echo.Context) error {
	res := healthResponse{Status: "ok"}
	if col := h.logger.Collector(); col != nil {
		res.PendingErrors = len(col.Pending())
		res.RecentErrors = col.Recent()
	}
	return xhttp.SuccessResponse(c, res)
}
