package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type quotationItemRequest struct {
	Description string  `json:"description" validate:"required"`
	Quantity    int     `json:"quantity"    validate:"required,gt=0"`
	UnitPrice   float64 `json:"unit_price"  validate:"required,gt=0"`
}

type createQuotationRequest struct {
	CompanyID  string                 `json:"company_id"  validate:"omitempty"`
	Title      string                 `json:"title"       validate:"required"`
	Notes      string                 `json:"notes"       validate:"omitempty"`
	Currency   string                 `json:"currency"    validate:"required,oneof=USD EUR MXN LKR"`
	Items      []quotationItemRequest `json:"items"       validate:"required,min=1,dive"`
	ValidUntil time.Time              `json:"valid_until" validate:"required"`
}

type transitionRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes"  validate:"omitempty"`
}

type quotationLinks struct {
	Self string `json:"self"`
	PDF  string `json:"pdf,omitempty"`
}

type createQuotationResponse struct {
	Folio     string         `json:"folio"`
	Status    string         `json:"status"`
	Total     float64        `json:"total"`
	CreatedAt time.Time      `json:"created_at"`
	Links     quotationLinks `json:"_links"`
}

// Response-only types owned by the transport layer. They are intentionally
// separate from domain types so the JSON contract is not coupled to internal
// model changes.

type quotationItemResponse struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

type statusHistoryItemResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}

type getQuotationResponse struct {
	Folio         string                      `json:"folio"`
	CompanyID     string                      `json:"company_id"`
	CreatedBy     string                      `json:"created_by"`
	Title         string                      `json:"title"`
	Notes         string                      `json:"notes,omitempty"`
	Currency      string                      `json:"currency"`
	Items         []quotationItemResponse     `json:"items"`
	Total         float64                     `json:"total"`
	Status        string                      `json:"status"`
	ValidUntil    time.Time                   `json:"valid_until"`
	StatusHistory []statusHistoryItemResponse `json:"status_history"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
	Links         quotationLinks              `json:"_links"`
}

// quotationSummaryResponse is the lightweight item used in list responses.
// It intentionally omits items and status_history to keep payloads small.
type quotationSummaryResponse struct {
	Folio     string         `json:"folio"`
	CompanyID string         `json:"company_id"`
	Title     string         `json:"title"`
	Currency  string         `json:"currency"`
	Total     float64        `json:"total"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	Links     quotationLinks `json:"_links"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listQuotationsResponse struct {
	Data       []quotationSummaryResponse `json:"data"`
	Pagination paginationResponse         `json:"pagination"`
}
