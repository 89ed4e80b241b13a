package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/ports"
)

// FileHandler serves uploads: quotation PDFs and company logos.
type FileHandler struct {
	store      ports.FileStore
	quotations ports.QuotationService
	companies  ports.CompanyService
	maxBytes   int64
}

func NewFileHandler(store ports.FileStore, quotations ports.QuotationService, companies ports.CompanyService, maxSizeMB int64) *FileHandler {
	return &FileHandler{
		store:      store,
		quotations: quotations,
		companies:  companies,
		maxBytes:   maxSizeMB << 20,
	}
}

var logoContentTypes = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/svg+xml": ".svg",
}

// UploadQuotationPDF handles POST /v1/quotations/:folio/pdf with a multipart
// "file" part. Only PDFs are accepted.
//
// @Summary      Attach the rendered PDF to a quotation
// @Tags         quotations
// @Accept       multipart/form-data
// @Produce      json
// @Param        folio  path      string  true  "Folio"
// @Param        file   formData  file    true  "PDF document"
// @Success      200    {object}  map[string]string
// @Failure      400    {object}  errorResponse
// @Failure      413    {object}  errorResponse
// @Router       /v1/quotations/{folio}/pdf [post]
func (h *FileHandler) UploadQuotationPDF(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	folio := c.Param("folio")

	src, header, err := h.formFile(c)
	if err != nil {
		return err
	}
	defer src.Close()

	if ct := header.Header.Get("Content-Type"); ct != "application/pdf" {
		return echo.NewHTTPError(http.StatusBadRequest, "only application/pdf is accepted")
	}

	path, err := h.store.Save(c.Request().Context(), "quotations", folio+".pdf", io.LimitReader(src, h.maxBytes))
	if err != nil {
		return err
	}
	if err := h.quotations.AttachPDF(c.Request().Context(), actor, folio, path); err != nil {
		h.store.Remove(c.Request().Context(), path)
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"folio": folio, "pdf": "/v1/quotations/" + folio + "/pdf"})
}

// DownloadQuotationPDF handles GET /v1/quotations/:folio/pdf. Company
// scoping is enforced by the quotation lookup.
//
// @Summary      Download a quotation's PDF
// @Tags         quotations
// @Produce      application/pdf
// @Param        folio  path  string  true  "Folio"
// @Success      200
// @Failure      404  {object}  errorResponse
// @Router       /v1/quotations/{folio}/pdf [get]
func (h *FileHandler) DownloadQuotationPDF(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	folio := c.Param("folio")

	quotation, err := h.quotations.Get(c.Request().Context(), actor, folio)
	if err != nil {
		return err
	}
	if quotation.PDFPath == "" {
		return echo.NewHTTPError(http.StatusNotFound, "quotation has no pdf")
	}

	f, err := h.store.Open(c.Request().Context(), quotation.PDFPath)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "stored pdf unavailable")
	}
	defer f.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", folio+".pdf"))
	return c.Stream(http.StatusOK, "application/pdf", f)
}

// UploadCompanyLogo handles POST /v1/companies/:id/logo with a multipart
// "file" part. PNG, JPEG and SVG are accepted.
//
// @Summary      Upload a company logo
// @Tags         companies
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "Company id"
// @Param        file  formData  file    true  "Logo image"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Router       /v1/companies/{id}/logo [post]
func (h *FileHandler) UploadCompanyLogo(c echo.Context) error {
	id := c.Param("id")

	src, header, err := h.formFile(c)
	if err != nil {
		return err
	}
	defer src.Close()

	ct := header.Header.Get("Content-Type")
	ext, ok := logoContentTypes[ct]
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "logo must be png, jpeg or svg")
	}

	path, err := h.store.Save(c.Request().Context(), "logos", id+ext, io.LimitReader(src, h.maxBytes))
	if err != nil {
		return err
	}
	if err := h.companies.SetLogo(c.Request().Context(), id, path); err != nil {
		h.store.Remove(c.Request().Context(), path)
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"id": id, "logo": "/v1/companies/" + id + "/logo"})
}

// DownloadCompanyLogo handles GET /v1/companies/:id/logo.
//
// @Summary      Download a company logo
// @Tags         companies
// @Param        id  path  string  true  "Company id"
// @Success      200
// @Failure      404  {object}  errorResponse
// @Router       /v1/companies/{id}/logo [get]
func (h *FileHandler) DownloadCompanyLogo(c echo.Context) error {
	id := c.Param("id")

	company, err := h.companies.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if company.LogoPath == "" {
		return echo.NewHTTPError(http.StatusNotFound, "company has no logo")
	}

	f, err := h.store.Open(c.Request().Context(), company.LogoPath)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "stored logo unavailable")
	}
	defer f.Close()

	return c.Stream(http.StatusOK, logoMIME(company.LogoPath), f)
}

func (h *FileHandler) formFile(c echo.Context) (multipart.File, *multipart.FileHeader, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "multipart field \"file\" is required")
	}
	if header.Size > h.maxBytes {
		return nil, nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file exceeds upload limit")
	}
	src, err := header.Open()
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
	}
	return src, header, nil
}

func logoMIME(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".svg":
		return "image/svg+xml"
	default:
		return "image/jpeg"
	}
}
