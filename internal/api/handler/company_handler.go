package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/ports"
)

type CompanyHandler struct {
	companies ports.CompanyService
}

func NewCompanyHandler(companies ports.CompanyService) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

type companyRequest struct {
	Name    string `json:"name"    validate:"required"`
	Address string `json:"address" validate:"omitempty"`
	Phone   string `json:"phone"   validate:"omitempty"`
	Email   string `json:"email"   validate:"omitempty,email"`
}

// Create registers a client company.
//
// @Summary      Create a company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        body  body      companyRequest  true  "Company details"
// @Success      201   {object}  domain.Company
// @Failure      400   {object}  map[string]string
// @Router       /v1/companies [post]
func (h *CompanyHandler) Create(c echo.Context) error {
	var req companyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	company, err := h.companies.Create(c.Request().Context(), &domain.Company{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, company)
}

// List returns every company.
//
// @Summary      List companies
// @Tags         companies
// @Produce      json
// @Success      200  {array}  domain.Company
// @Router       /v1/companies [get]
func (h *CompanyHandler) List(c echo.Context) error {
	companies, err := h.companies.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, companies)
}

// Get returns one company by id.
//
// @Summary      Get a company
// @Tags         companies
// @Produce      json
// @Param        id   path      string  true  "Company id"
// @Success      200  {object}  domain.Company
// @Failure      404  {object}  map[string]string
// @Router       /v1/companies/{id} [get]
func (h *CompanyHandler) Get(c echo.Context) error {
	company, err := h.companies.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, company)
}

// Update rewrites a company's details.
//
// @Summary      Update a company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Company id"
// @Param        body  body      companyRequest  true  "Company details"
// @Success      200   {object}  domain.Company
// @Failure      404   {object}  map[string]string
// @Router       /v1/companies/{id} [put]
func (h *CompanyHandler) Update(c echo.Context) error {
	var req companyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	company, err := h.companies.Update(c.Request().Context(), &domain.Company{
		ID:      c.Param("id"),
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, company)
}

// Delete removes a company. Companies with registered users are rejected
// with 409.
//
// @Summary      Delete a company
// @Tags         companies
// @Param        id  path  string  true  "Company id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/companies/{id} [delete]
func (h *CompanyHandler) Delete(c echo.Context) error {
	if err := h.companies.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
