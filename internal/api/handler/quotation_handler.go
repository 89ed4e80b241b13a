package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Themiya19/Quotation-System-sub001/internal/api/metrics"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/ports"
)

// QuotationHandler handles HTTP requests for quotation operations.
type QuotationHandler struct {
	service ports.QuotationService
}

func NewQuotationHandler(service ports.QuotationService) *QuotationHandler {
	return &QuotationHandler{service: service}
}

// Create handles POST /v1/quotations. External sessions open a request for
// their own company; internal sessions open a draft for any company.
//
// @Summary      Create a quotation
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                  false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createQuotationRequest  true   "Quotation details"
// @Success      201              {object}  createQuotationResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Router       /v1/quotations [post]
func (h *QuotationHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createQuotationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	idempotencyKey := c.Request().Header.Get("Idempotency-Key")

	result, err := h.service.Create(c.Request().Context(), toCreateQuotationInput(req, actor, idempotencyKey))
	if err != nil {
		return err
	}
	if result.AlreadyExisted {
		return c.JSON(http.StatusOK, toCreateQuotationResponse(result))
	}

	metrics.QuotationsCreatedTotal.WithLabelValues(actor.Category).Inc()
	return c.JSON(http.StatusCreated, toCreateQuotationResponse(result))
}

// Get handles GET /v1/quotations/:folio. External sessions only see their
// own company's quotations.
//
// @Summary      Get a quotation by folio
// @Tags         quotations
// @Produce      json
// @Param        folio  path      string  true  "Folio (e.g. QT-7A8B9C2D)"
// @Success      200    {object}  getQuotationResponse
// @Failure      404    {object}  errorResponse
// @Router       /v1/quotations/{folio} [get]
func (h *QuotationHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	quotation, err := h.service.Get(c.Request().Context(), actor, c.Param("folio"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGetQuotationResponse(quotation))
}

// List handles GET /v1/quotations with status/company/date filters and
// pagination.
//
// @Summary      List quotations
// @Tags         quotations
// @Produce      json
// @Param        status   query     string  false  "Filter by status"
// @Param        company  query     string  false  "Filter by company id (internal sessions only)"
// @Param        from     query     string  false  "Created on or after (YYYY-MM-DD)"
// @Param        to       query     string  false  "Created before (YYYY-MM-DD)"
// @Param        page     query     int     false  "Page number (default 1)"
// @Param        limit    query     int     false  "Page size (default 20, max 100)"
// @Success      200      {object}  listQuotationsResponse
// @Failure      400      {object}  errorResponse
// @Router       /v1/quotations [get]
func (h *QuotationHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	in := ports.ListQuotationsInput{
		Actor:   actor,
		Status:  c.QueryParam("status"),
		Company: c.QueryParam("company"),
	}
	in.Page, _ = strconv.Atoi(c.QueryParam("page"))
	in.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	if from := c.QueryParam("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "from must be YYYY-MM-DD")
		}
		in.DateFrom = t
	}
	if to := c.QueryParam("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "to must be YYYY-MM-DD")
		}
		in.DateTo = t
	}

	result, err := h.service.List(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListQuotationsResponse(result))
}

// Transition handles POST /v1/quotations/:folio/status. The target status
// decides which feature gates the move, so the check lives in the service
// rather than in route middleware.
//
// @Summary      Move a quotation to a new status
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Param        folio  path      string             true  "Folio"
// @Param        body   body      transitionRequest  true  "Target status and optional notes"
// @Success      200    {object}  getQuotationResponse
// @Failure      403    {object}  errorResponse
// @Failure      422    {object}  errorResponse
// @Router       /v1/quotations/{folio}/status [post]
func (h *QuotationHandler) Transition(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req transitionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	quotation, err := h.service.Transition(c.Request().Context(), ports.TransitionInput{
		Actor:  actor,
		Folio:  c.Param("folio"),
		Target: domain.QuotationStatus(req.Status),
		Notes:  req.Notes,
	})
	if err != nil {
		return err
	}

	metrics.QuotationTransitionsTotal.WithLabelValues(req.Status).Inc()
	return c.JSON(http.StatusOK, toGetQuotationResponse(quotation))
}
