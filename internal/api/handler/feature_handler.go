package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/ports"
)

type FeatureHandler struct {
	features ports.FeatureService
}

func NewFeatureHandler(features ports.FeatureService) *FeatureHandler {
	return &FeatureHandler{features: features}
}

type featureEntry struct {
	ID           string   `json:"id"            validate:"required"`
	Name         string   `json:"name"          validate:"required"`
	Description  string   `json:"description"   validate:"required"`
	AllowedRoles []string `json:"allowed_roles" validate:"required"`
}

type replaceFeaturesRequest struct {
	Features []featureEntry `json:"features" validate:"required,dive"`
}

// List returns the feature table for a namespace.
//
// @Summary      List features
// @Tags         features
// @Produce      json
// @Param        namespace  path      string  true  "internal or external"
// @Success      200        {array}   domain.Feature
// @Failure      403        {object}  map[string]string
// @Router       /v1/features/{namespace} [get]
func (h *FeatureHandler) List(c echo.Context) error {
	ns, err := parseNamespace(c)
	if err != nil {
		return err
	}
	features, err := h.features.List(c.Request().Context(), ns)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, features)
}

// Replace overwrites the whole feature table for a namespace. The batch is
// all-or-nothing: any malformed entry rejects every entry.
//
// @Summary      Replace the feature table
// @Tags         features
// @Accept       json
// @Produce      json
// @Param        namespace  path      string                  true  "internal or external"
// @Param        body       body      replaceFeaturesRequest  true  "Full feature table"
// @Success      200        {array}   domain.Feature
// @Failure      400        {object}  map[string]string
// @Router       /v1/features/{namespace} [put]
func (h *FeatureHandler) Replace(c echo.Context) error {
	ns, err := parseNamespace(c)
	if err != nil {
		return err
	}

	var req replaceFeaturesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	features := make([]domain.Feature, 0, len(req.Features))
	for _, f := range req.Features {
		features = append(features, domain.Feature{
			ID:           f.ID,
			Name:         f.Name,
			Description:  f.Description,
			AllowedRoles: f.AllowedRoles,
		})
	}

	if err := h.features.ReplaceAll(c.Request().Context(), ns, features); err != nil {
		return err
	}

	saved, err := h.features.List(c.Request().Context(), ns)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, saved)
}
