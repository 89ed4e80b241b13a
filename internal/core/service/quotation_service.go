package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/ports"
)

// QuotationService implements the quotation lifecycle. Lifecycle mutations
// are gated twice: the transition table on the aggregate and the permission
// evaluator for the acting role.
type QuotationService struct {
	quotations ports.QuotationRepository
	companies  ports.CompanyRepository
	perms      ports.PermissionEvaluator
	idem       ports.IdempotencyChecker
	log        zerolog.Logger
}

func NewQuotationService(
	quotations ports.QuotationRepository,
	companies ports.CompanyRepository,
	perms ports.PermissionEvaluator,
	idem ports.IdempotencyChecker,
	log zerolog.Logger,
) *QuotationService {
	return &QuotationService{
		quotations: quotations,
		companies:  companies,
		perms:      perms,
		idem:       idem,
		log:        log,
	}
}

// Create creates a quotation. External actors create requests (status
// "requested") for their own company; internal actors create drafts for any
// registered company. If an idempotency key is provided and already seen,
// the previously created quotation is returned without side effects.
func (s *QuotationService) Create(ctx context.Context, in ports.CreateQuotationInput) (*ports.QuotationResult, error) {
	if in.IdempotencyKey != "" {
		if result := s.replay(ctx, in.IdempotencyKey); result != nil {
			return result, nil
		}
	}

	companyID := in.CompanyID
	status := domain.StatusDraft
	if in.Actor.Category == domain.CategoryExternal {
		companyID = in.Actor.CompanyID
		status = domain.StatusRequested
	}
	if companyID == "" {
		return nil, domain.ErrCompanyNotFound
	}
	if _, err := s.companies.FindByID(ctx, companyID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	items := make([]domain.QuotationItem, 0, len(in.Items))
	var total float64
	for _, it := range in.Items {
		sub := float64(it.Quantity) * it.UnitPrice
		items = append(items, domain.QuotationItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    sub,
		})
		total += sub
	}

	q := &domain.Quotation{
		Folio:          generateFolio(),
		CompanyID:      companyID,
		CreatedBy:      in.Actor.Email,
		Title:          in.Title,
		Notes:          in.Notes,
		Currency:       in.Currency,
		Items:          items,
		Total:          total,
		Status:         status,
		ValidUntil:     in.ValidUntil,
		IdempotencyKey: in.IdempotencyKey,
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: status, Timestamp: now, Actor: in.Actor.Email},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.quotations.Create(ctx, q); err != nil {
		s.log.Error().Err(err).Msg("failed to create quotation")
		return nil, err
	}

	if in.IdempotencyKey != "" {
		if err := s.idem.Remember(ctx, in.IdempotencyKey, q.Folio); err != nil {
			s.log.Warn().Err(err).Str("folio", q.Folio).Msg("failed to set idempotency key")
		}
	}

	s.log.Info().
		Str("folio", q.Folio).
		Str("company_id", companyID).
		Str("status", string(status)).
		Msg("quotation created")

	return &ports.QuotationResult{
		Folio:     q.Folio,
		Status:    q.Status,
		Total:     q.Total,
		CreatedAt: q.CreatedAt,
	}, nil
}

// replay resolves an idempotency key to the previously created quotation.
// The Redis checker decides whether the key was seen (same trust model as
// any TTL-bound dedup store); on a hit the stored key locates the original
// document. A checker error falls through to the store lookup.
func (s *QuotationService) replay(ctx context.Context, key string) *ports.QuotationResult {
	seen, err := s.idem.Seen(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Msg("idempotency check failed, falling through to store")
	}
	if err == nil && !seen {
		return nil
	}

	existing, err := s.quotations.FindByIdempotencyKey(ctx, key)
	if err != nil || existing == nil {
		return nil
	}
	s.log.Info().Str("idempotency_key", key).Str("folio", existing.Folio).Msg("idempotent replay")
	return &ports.QuotationResult{
		Folio:          existing.Folio,
		Status:         existing.Status,
		Total:          existing.Total,
		CreatedAt:      existing.CreatedAt,
		AlreadyExisted: true,
	}
}

// Get retrieves a quotation. External actors only see their own company's.
func (s *QuotationService) Get(ctx context.Context, actor ports.Actor, folio string) (*domain.Quotation, error) {
	return s.quotations.FindByFolio(ctx, folio, scopeCompany(actor))
}

func (s *QuotationService) List(ctx context.Context, in ports.ListQuotationsInput) (*ports.ListQuotationsResult, error) {
	filter := ports.QuotationFilter{
		CompanyID: in.Company,
		Status:    domain.QuotationStatus(in.Status),
		DateFrom:  in.DateFrom,
		DateTo:    in.DateTo,
		Page:      in.Page,
		Limit:     in.Limit,
	}
	if scoped := scopeCompany(in.Actor); scoped != "" {
		filter.CompanyID = scoped
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	quotations, total, err := s.quotations.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	return &ports.ListQuotationsResult{
		Quotations: quotations,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// Transition moves a quotation to a new status. The acting role must hold
// the feature gating the target status, and the move must be valid under
// the lifecycle table.
func (s *QuotationService) Transition(ctx context.Context, in ports.TransitionInput) (*domain.Quotation, error) {
	feature := featureForTransition(in.Target, in.Actor.Category)
	if feature == "" {
		return nil, domain.ErrForbidden
	}
	if !s.perms.Can(ctx, namespaceFor(in.Actor.Category), in.Actor.Role, feature) {
		return nil, domain.ErrForbidden
	}

	q, err := s.quotations.FindByFolio(ctx, in.Folio, scopeCompany(in.Actor))
	if err != nil {
		return nil, err
	}

	if !q.Status.CanTransitionTo(in.Target) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, q.Status, in.Target)
	}

	entry := domain.StatusHistoryEntry{
		Status:    in.Target,
		Timestamp: time.Now().UTC(),
		Actor:     in.Actor.Email,
		Notes:     in.Notes,
	}
	if err := s.quotations.AppendStatus(ctx, in.Folio, in.Target, entry); err != nil {
		return nil, fmt.Errorf("transition quotation: %w", err)
	}

	q.Status = in.Target
	q.StatusHistory = append(q.StatusHistory, entry)
	q.UpdatedAt = entry.Timestamp

	s.log.Info().
		Str("folio", q.Folio).
		Str("status", string(in.Target)).
		Str("actor", in.Actor.Email).
		Msg("quotation status changed")

	return q, nil
}

// AttachPDF records the stored PDF path on a quotation. Internal only.
func (s *QuotationService) AttachPDF(ctx context.Context, actor ports.Actor, folio, path string) error {
	if actor.Category != domain.CategoryInternal {
		return domain.ErrForbidden
	}
	if _, err := s.quotations.FindByFolio(ctx, folio, ""); err != nil {
		return err
	}
	return s.quotations.SetPDFPath(ctx, folio, path)
}

// featureForTransition maps a target status to the feature gating it, per
// actor category. An empty result means the category can never perform the
// move.
func featureForTransition(target domain.QuotationStatus, category string) string {
	switch target {
	case domain.StatusDraft, domain.StatusPendingApproval, domain.StatusSent:
		if category == domain.CategoryInternal {
			return domain.FeatureCreateQuotation
		}
	case domain.StatusApproved, domain.StatusRejected:
		if category == domain.CategoryInternal {
			return domain.FeatureApproveQuotation
		}
	case domain.StatusAccepted, domain.StatusDeclined:
		if category == domain.CategoryExternal {
			return domain.FeatureExtAcceptQuotation
		}
	}
	return ""
}

func namespaceFor(category string) string {
	if category == domain.CategoryExternal {
		return domain.NamespaceExternal
	}
	return domain.NamespaceInternal
}

// scopeCompany returns the company filter enforced for external actors.
func scopeCompany(actor ports.Actor) string {
	if actor.Category == domain.CategoryExternal {
		return actor.CompanyID
	}
	return ""
}

// generateFolio returns a unique folio in the format QT-XXXXXXXX.
func generateFolio() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("QT-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("QT-%X", b)
}
