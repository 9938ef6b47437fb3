package handlers

import (
	"errors"
	"net/http"

	"github.com/epeers/portfolio-tracker/internal/engine"
	"github.com/epeers/portfolio-tracker/internal/importer"
	"github.com/epeers/portfolio-tracker/internal/middleware"
	"github.com/epeers/portfolio-tracker/internal/models"
	"github.com/epeers/portfolio-tracker/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// maxWorkbookSize caps uploaded workbooks
const maxWorkbookSize = 10 << 20

// HoldingsHandler handles holdings endpoints
type HoldingsHandler struct {
	holdingsSvc  *services.HoldingsService
	dashboardSvc *services.DashboardService
}

// NewHoldingsHandler creates a new HoldingsHandler
func NewHoldingsHandler(holdingsSvc *services.HoldingsService, dashboardSvc *services.DashboardService) *HoldingsHandler {
	return &HoldingsHandler{
		holdingsSvc:  holdingsSvc,
		dashboardSvc: dashboardSvc,
	}
}

// Get handles GET /holdings
// @Summary Get saved holdings
// @Description Returns the stored ETF and SCPI holdings. Empty categories, or both when storage fails, are replaced by built-in defaults and flagged in the response.
// @Tags holdings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.HoldingsResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /holdings [get]
func (h *HoldingsHandler) Get(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	ctx, wc := services.NewWarningContext(c.Request.Context())
	loaded := h.holdingsSvc.Load(ctx, sess.UserID)

	c.JSON(http.StatusOK, models.HoldingsResponse{
		Holdings:   *loaded.Holdings,
		Texts:      loaded.Texts(),
		ETFSource:  loaded.ETFSource,
		SCPISource: loaded.SCPISource,
		Warnings:   wc.GetWarnings(),
	})
}

// Save handles PUT /holdings
// @Summary Save holdings
// @Description Parses both texts ("name,amount" per line) and replaces the stored holdings. Malformed lines are dropped.
// @Tags holdings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.SaveHoldingsRequest true "Holdings texts"
// @Success 200 {object} models.HoldingsResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /holdings [put]
func (h *HoldingsHandler) Save(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	var req models.SaveHoldingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	ctx, wc := services.NewWarningContext(c.Request.Context())
	saved, err := h.holdingsSvc.Save(ctx, sess.UserID, models.HoldingsTexts{ETF: req.ETF, SCPI: req.SCPI})
	if err != nil {
		if errors.Is(err, services.ErrSaveFailed) {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "save_failed",
				Message: "holdings could not be saved; the previous holdings were kept",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	texts := models.HoldingsTexts{ETF: engine.Format(saved.ETF), SCPI: engine.Format(saved.SCPI)}
	if err := h.dashboardSvc.RememberDrafts(ctx, sess, texts); err != nil {
		log.Warnf("failed to remember drafts for session %s: %v", sess.ID, err)
	}

	c.JSON(http.StatusOK, models.HoldingsResponse{
		Holdings:   *saved,
		Texts:      texts,
		ETFSource:  models.SourceStored,
		SCPISource: models.SourceStored,
		Warnings:   wc.GetWarnings(),
	})
}

// Import handles POST /holdings/import
// @Summary Import holdings from a workbook
// @Description Reads an .xlsx workbook with sheets ETF (Ticker, Montant) and SCPI (Nom, Montant) into editor text. Nothing is saved.
// @Tags holdings
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param workbook formData file true "Workbook (.xlsx)"
// @Success 200 {object} models.ImportResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /holdings/import [post]
func (h *HoldingsHandler) Import(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	fh, err := c.FormFile("workbook")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "missing workbook file",
		})
		return
	}
	if fh.Size > maxWorkbookSize {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "workbook is too large",
		})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}
	defer f.Close()

	res, err := importer.ReadWorkbook(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	texts := res.Texts()
	if err := h.dashboardSvc.RememberDrafts(c.Request.Context(), sess, texts); err != nil {
		log.Warnf("failed to remember drafts for session %s: %v", sess.ID, err)
	}

	c.JSON(http.StatusOK, models.ImportResponse{
		Texts:    texts,
		ETFRows:  res.Holdings.ETF.Len(),
		SCPIRows: res.Holdings.SCPI.Len(),
	})
}
