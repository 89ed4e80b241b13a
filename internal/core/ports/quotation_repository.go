package ports

import (
	"context"
	"time"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
)

// QuotationFilter narrows List results. Zero values mean "no filter".
type QuotationFilter struct {
	CompanyID string
	Status    domain.QuotationStatus
	DateFrom  time.Time
	DateTo    time.Time
	Page      int
	Limit     int
}

// QuotationRepository defines persistence for quotations. Folio is the
// business key.
type QuotationRepository interface {
	Create(ctx context.Context, q *domain.Quotation) error
	FindByFolio(ctx context.Context, folio string, companyID string) (*domain.Quotation, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Quotation, error)
	List(ctx context.Context, filter QuotationFilter) ([]domain.Quotation, int64, error)
	Update(ctx context.Context, q *domain.Quotation) error
	AppendStatus(ctx context.Context, folio string, status domain.QuotationStatus, entry domain.StatusHistoryEntry) error
	SetPDFPath(ctx context.Context, folio, path string) error
	EnsureIndexes(ctx context.Context) error
}
