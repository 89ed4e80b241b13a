package ports

import (
	"context"
	"time"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
)

// Actor identifies the session principal a quotation operation runs as.
type Actor struct {
	Email     string
	Category  string
	Role      string
	CompanyID string
}

// QuotationItemInput is one priced line on a create request.
type QuotationItemInput struct {
	Description string
	Quantity    int
	UnitPrice   float64
}

// CreateQuotationInput carries all data needed to create a quotation.
// External actors create requests (status "requested", company forced to
// their own); internal actors create drafts for any company.
type CreateQuotationInput struct {
	Actor          Actor
	CompanyID      string
	Title          string
	Notes          string
	Currency       string
	Items          []QuotationItemInput
	ValidUntil     time.Time
	IdempotencyKey string
}

// QuotationResult is returned by the service after creating a quotation.
type QuotationResult struct {
	Folio     string
	Status    domain.QuotationStatus
	Total     float64
	CreatedAt time.Time
	// AlreadyExisted is true when the Idempotency-Key matched an existing
	// quotation.
	AlreadyExisted bool
}

// TransitionInput moves a quotation to a new lifecycle status.
type TransitionInput struct {
	Actor  Actor
	Folio  string
	Target domain.QuotationStatus
	Notes  string
}

// ListQuotationsInput carries list filters plus the acting principal for
// company scoping.
type ListQuotationsInput struct {
	Actor    Actor
	Status   string
	Company  string
	DateFrom time.Time
	DateTo   time.Time
	Page     int
	Limit    int
}

// ListQuotationsResult is one page of quotations plus the total count.
type ListQuotationsResult struct {
	Quotations []domain.Quotation
	Total      int64
	Page       int
	Limit      int
}

// QuotationService defines use-case operations for quotations.
type QuotationService interface {
	Create(ctx context.Context, in CreateQuotationInput) (*QuotationResult, error)
	Get(ctx context.Context, actor Actor, folio string) (*domain.Quotation, error)
	List(ctx context.Context, in ListQuotationsInput) (*ListQuotationsResult, error)
	Transition(ctx context.Context, in TransitionInput) (*domain.Quotation, error)
	AttachPDF(ctx context.Context, actor Actor, folio, path string) error
}
