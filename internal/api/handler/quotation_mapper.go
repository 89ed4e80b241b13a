package handler

import (
	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/ports"
)

// --- Request → Service input ---

func toCreateQuotationInput(req createQuotationRequest, actor ports.Actor, idempotencyKey string) ports.CreateQuotationInput {
	items := make([]ports.QuotationItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = ports.QuotationItemInput{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}
	return ports.CreateQuotationInput{
		Actor:          actor,
		CompanyID:      req.CompanyID,
		Title:          req.Title,
		Notes:          req.Notes,
		Currency:       req.Currency,
		Items:          items,
		ValidUntil:     req.ValidUntil,
		IdempotencyKey: idempotencyKey,
	}
}

// --- Service result → HTTP response ---

func toCreateQuotationResponse(r *ports.QuotationResult) createQuotationResponse {
	return createQuotationResponse{
		Folio:     r.Folio,
		Status:    string(r.Status),
		Total:     r.Total,
		CreatedAt: r.CreatedAt.UTC(),
		Links:     quotationLinks{Self: "/v1/quotations/" + r.Folio},
	}
}

func toGetQuotationResponse(q *domain.Quotation) getQuotationResponse {
	items := make([]quotationItemResponse, len(q.Items))
	for i, item := range q.Items {
		items[i] = quotationItemResponse{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		}
	}
	links := quotationLinks{Self: "/v1/quotations/" + q.Folio}
	if q.PDFPath != "" {
		links.PDF = "/v1/quotations/" + q.Folio + "/pdf"
	}
	return getQuotationResponse{
		Folio:         q.Folio,
		CompanyID:     q.CompanyID,
		CreatedBy:     q.CreatedBy,
		Title:         q.Title,
		Notes:         q.Notes,
		Currency:      q.Currency,
		Items:         items,
		Total:         q.Total,
		Status:        string(q.Status),
		ValidUntil:    q.ValidUntil.UTC(),
		StatusHistory: toStatusHistoryResponse(q.StatusHistory),
		CreatedAt:     q.CreatedAt.UTC(),
		UpdatedAt:     q.UpdatedAt.UTC(),
		Links:         links,
	}
}

func toStatusHistoryResponse(entries []domain.StatusHistoryEntry) []statusHistoryItemResponse {
	out := make([]statusHistoryItemResponse, len(entries))
	for i, entry := range entries {
		out[i] = statusHistoryItemResponse{
			Status:    string(entry.Status),
			Timestamp: entry.Timestamp.UTC(),
			Actor:     entry.Actor,
			Notes:     entry.Notes,
		}
	}
	return out
}

func toListQuotationsResponse(r *ports.ListQuotationsResult) listQuotationsResponse {
	items := make([]quotationSummaryResponse, len(r.Quotations))
	for i, q := range r.Quotations {
		items[i] = quotationSummaryResponse{
			Folio:     q.Folio,
			CompanyID: q.CompanyID,
			Title:     q.Title,
			Currency:  q.Currency,
			Total:     q.Total,
			Status:    string(q.Status),
			CreatedAt: q.CreatedAt.UTC(),
			Links:     quotationLinks{Self: "/v1/quotations/" + q.Folio},
		}
	}
	totalPages := 0
	if r.Limit > 0 {
		totalPages = int((r.Total + int64(r.Limit) - 1) / int64(r.Limit))
	}
	return listQuotationsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: totalPages,
		},
	}
}
