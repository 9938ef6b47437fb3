package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/epeers/portfolio-tracker/internal/charts"
	"github.com/epeers/portfolio-tracker/internal/engine"
	"github.com/epeers/portfolio-tracker/internal/middleware"
	"github.com/epeers/portfolio-tracker/internal/models"
	"github.com/epeers/portfolio-tracker/internal/services"
	"github.com/gin-gonic/gin"
)

// DashboardHandler handles dashboard and chart endpoints
type DashboardHandler struct {
	dashboardSvc *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardSvc *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardSvc: dashboardSvc,
	}
}

// Compute handles POST /dashboard
// @Summary Compute the dashboard
// @Description Computes allocation, classification and base-100 performance. Omitted texts fall back to the session drafts, then to saved holdings. Supplied values are remembered on the session.
// @Tags dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.DashboardRequest false "Draft texts and window"
// @Success 200 {object} models.DashboardResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /dashboard [post]
func (h *DashboardHandler) Compute(c *gin.Context) {
	var req models.DashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}
	h.respond(c, services.DashboardInput{ETF: req.ETF, SCPI: req.SCPI, Window: req.Window})
}

// Get handles GET /dashboard
// @Summary Get the dashboard
// @Description Computes the dashboard from the session drafts or saved holdings
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param window query string false "Price window" Enums(1mo, 3mo, 6mo, 1y, 2y, 5y)
// @Success 200 {object} models.DashboardResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	h.respond(c, services.DashboardInput{Window: c.Query("window")})
}

func (h *DashboardHandler) respond(c *gin.Context, in services.DashboardInput) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	ctx, wc := services.NewWarningContext(c.Request.Context())
	resp, err := h.dashboardSvc.ComputeForSession(ctx, sess, in)
	if err != nil {
		if errors.Is(err, services.ErrInvalidWindow) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "bad_request",
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	resp.Warnings = wc.GetWarnings()
	c.JSON(http.StatusOK, resp)
}

// Chart handles GET /dashboard/charts/:kind
// @Summary Render a dashboard chart
// @Description Renders the allocation pie, the ETF/SCPI pie or the base-100 performance lines as PNG
// @Tags dashboard
// @Produce png
// @Security BearerAuth
// @Param kind path string true "Chart kind" Enums(allocation, categories, performance)
// @Param window query string false "Price window" Enums(1mo, 3mo, 6mo, 1y, 2y, 5y)
// @Success 200 {file} binary
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /dashboard/charts/{kind} [get]
func (h *DashboardHandler) Chart(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	kind := c.Param("kind")
	if kind != "allocation" && kind != "categories" && kind != "performance" {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "chart must be one of allocation, categories, performance",
		})
		return
	}

	ctx := c.Request.Context()
	holdings, window, err := h.dashboardSvc.Resolve(ctx, sess, services.DashboardInput{Window: c.Query("window")})
	if err != nil {
		if errors.Is(err, services.ErrInvalidWindow) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "bad_request",
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	var img []byte
	switch kind {
	case "allocation":
		img, err = charts.AllocationPie(services.Summarize(holdings).Allocation)
	case "categories":
		img, err = charts.CategoryPie(services.Summarize(holdings).Categories)
	case "performance":
		resp := h.dashboardSvc.Compute(ctx, holdings, window)
		img, err = charts.PerformanceLines(engine.Align(resp.Performance), window)
	}
	if err != nil {
		if errors.Is(err, charts.ErrNothingToDraw) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "no_data",
				Message: "nothing to draw for this chart",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.Data(http.StatusOK, "image/png", img)
}
