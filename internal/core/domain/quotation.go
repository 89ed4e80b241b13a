package domain

import (
	"errors"
	"time"
)

// QuotationStatus represents the lifecycle state of a quotation.
type QuotationStatus string

const (
	StatusRequested       QuotationStatus = "requested"
	StatusDraft           QuotationStatus = "draft"
	StatusPendingApproval QuotationStatus = "pending_approval"
	StatusApproved        QuotationStatus = "approved"
	StatusRejected        QuotationStatus = "rejected"
	StatusSent            QuotationStatus = "sent"
	StatusAccepted        QuotationStatus = "accepted"
	StatusDeclined        QuotationStatus = "declined"
)

// validTransitions defines the allowed state machine transitions.
// A rejected quotation returns to draft for revision.
var validTransitions = map[QuotationStatus][]QuotationStatus{
	StatusRequested:       {StatusDraft},
	StatusDraft:           {StatusPendingApproval},
	StatusPendingApproval: {StatusApproved, StatusRejected},
	StatusRejected:        {StatusDraft},
	StatusApproved:        {StatusSent},
	StatusSent:            {StatusAccepted, StatusDeclined},
}

var ErrQuotationNotFound = errors.New("quotation not found")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrForbidden = errors.New("access forbidden")

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s QuotationStatus) CanTransitionTo(next QuotationStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// QuotationItem is a single priced line on a quotation.
type QuotationItem struct {
	Description string  `json:"description" bson:"description"`
	Quantity    int     `json:"quantity" bson:"quantity"`
	UnitPrice   float64 `json:"unit_price" bson:"unit_price"`
	Subtotal    float64 `json:"subtotal" bson:"subtotal"`
}

// StatusHistoryEntry records a single status transition on a quotation.
type StatusHistoryEntry struct {
	Status    QuotationStatus `json:"status" bson:"status"`
	Timestamp time.Time       `json:"timestamp" bson:"timestamp"`
	Actor     string          `json:"actor,omitempty" bson:"actor,omitempty"`
	Notes     string          `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Quotation is the core aggregate root.
type Quotation struct {
	ID             string               `json:"id" bson:"_id,omitempty"`
	Folio          string               `json:"folio" bson:"folio"`
	CompanyID      string               `json:"company_id" bson:"company_id"`
	CreatedBy      string               `json:"created_by" bson:"created_by"`
	Title          string               `json:"title" bson:"title"`
	Notes          string               `json:"notes,omitempty" bson:"notes,omitempty"`
	Currency       string               `json:"currency" bson:"currency"`
	Items          []QuotationItem      `json:"items" bson:"items"`
	Total          float64              `json:"total" bson:"total"`
	Status         QuotationStatus      `json:"status" bson:"status"`
	ValidUntil     time.Time            `json:"valid_until" bson:"valid_until"`
	PDFPath        string               `json:"pdf_path,omitempty" bson:"pdf_path,omitempty"`
	IdempotencyKey string               `json:"idempotency_key,omitempty" bson:"idempotency_key,omitempty"`
	StatusHistory  []StatusHistoryEntry `json:"status_history" bson:"status_history"`
	CreatedAt      time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at" bson:"updated_at"`
}
