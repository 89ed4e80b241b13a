package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubQuotationRepo struct {
	byFolio       map[string]*domain.Quotation
	byIdempotency map[string]*domain.Quotation
	lastFilter    ports.QuotationFilter
}

func newStubQuotationRepo() *stubQuotationRepo {
	return &stubQuotationRepo{
		byFolio:       make(map[string]*domain.Quotation),
		byIdempotency: make(map[string]*domain.Quotation),
	}
}

func (r *stubQuotationRepo) Create(_ context.Context, q *domain.Quotation) error {
	clone := *q
	r.byFolio[q.Folio] = &clone
	if q.IdempotencyKey != "" {
		r.byIdempotency[q.IdempotencyKey] = &clone
	}
	return nil
}

func (r *stubQuotationRepo) FindByFolio(_ context.Context, folio, companyID string) (*domain.Quotation, error) {
	q, ok := r.byFolio[folio]
	if !ok {
		return nil, domain.ErrQuotationNotFound
	}
	// Mirrors the company scoping the Mongo query applies.
	if companyID != "" && q.CompanyID != companyID {
		return nil, domain.ErrQuotationNotFound
	}
	clone := *q
	return &clone, nil
}

func (r *stubQuotationRepo) FindByIdempotencyKey(_ context.Context, key string) (*domain.Quotation, error) {
	q, ok := r.byIdempotency[key]
	if !ok {
		return nil, domain.ErrQuotationNotFound
	}
	clone := *q
	return &clone, nil
}

func (r *stubQuotationRepo) List(_ context.Context, filter ports.QuotationFilter) ([]domain.Quotation, int64, error) {
	r.lastFilter = filter
	var out []domain.Quotation
	for _, q := range r.byFolio {
		if filter.CompanyID != "" && q.CompanyID != filter.CompanyID {
			continue
		}
		if filter.Status != "" && q.Status != filter.Status {
			continue
		}
		out = append(out, *q)
	}
	return out, int64(len(out)), nil
}

func (r *stubQuotationRepo) Update(_ context.Context, q *domain.Quotation) error {
	clone := *q
	r.byFolio[q.Folio] = &clone
	return nil
}

func (r *stubQuotationRepo) AppendStatus(_ context.Context, folio string, status domain.QuotationStatus, entry domain.StatusHistoryEntry) error {
	q, ok := r.byFolio[folio]
	if !ok {
		return domain.ErrQuotationNotFound
	}
	q.Status = status
	q.StatusHistory = append(q.StatusHistory, entry)
	return nil
}

func (r *stubQuotationRepo) SetPDFPath(_ context.Context, folio, path string) error {
	q, ok := r.byFolio[folio]
	if !ok {
		return domain.ErrQuotationNotFound
	}
	q.PDFPath = path
	return nil
}

func (r *stubQuotationRepo) EnsureIndexes(_ context.Context) error { return nil }

type stubCompanyRepo struct {
	byID map[string]*domain.Company
}

func newStubCompanyRepo(ids ...string) *stubCompanyRepo {
	r := &stubCompanyRepo{byID: make(map[string]*domain.Company)}
	for _, id := range ids {
		r.byID[id] = &domain.Company{ID: id, Name: "Company " + id}
	}
	return r
}

func (r *stubCompanyRepo) Create(_ context.Context, c *domain.Company) (*domain.Company, error) {
	clone := *c
	r.byID[c.ID] = &clone
	return &clone, nil
}

func (r *stubCompanyRepo) FindByID(_ context.Context, id string) (*domain.Company, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCompanyRepo) List(_ context.Context) ([]domain.Company, error) {
	out := make([]domain.Company, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCompanyRepo) Update(_ context.Context, c *domain.Company) error {
	if _, ok := r.byID[c.ID]; !ok {
		return domain.ErrCompanyNotFound
	}
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubCompanyRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

// allowAllPerms grants every feature; denyAllPerms denies every feature.
type allowAllPerms struct{}

func (allowAllPerms) Can(context.Context, string, string, string) bool  { return true }
func (allowAllPerms) CanViewRoles(context.Context, string, string) bool { return true }

type denyAllPerms struct{}

func (denyAllPerms) Can(context.Context, string, string, string) bool  { return false }
func (denyAllPerms) CanViewRoles(context.Context, string, string) bool { return false }

type stubIdemChecker struct {
	seen map[string]bool
	err  error
}

func newStubIdemChecker() *stubIdemChecker {
	return &stubIdemChecker{seen: make(map[string]bool)}
}

func (c *stubIdemChecker) Seen(_ context.Context, key string) (bool, error) {
	if c.err != nil {
		return false, c.err
	}
	return c.seen[key], nil
}

func (c *stubIdemChecker) Remember(_ context.Context, key, _ string) error {
	c.seen[key] = true
	return nil
}

// ---------------------------------------------------------------------------

var internalActor = ports.Actor{Email: "eng@acme.test", Category: domain.CategoryInternal, Role: "sales_engineer"}
var externalActor = ports.Actor{Email: "buyer@client.test", Category: domain.CategoryExternal, Role: "ext_client", CompanyID: "CMP-1"}

func newQuotationFixture(perms ports.PermissionEvaluator) (*QuotationService, *stubQuotationRepo, *stubIdemChecker) {
	repo := newStubQuotationRepo()
	idem := newStubIdemChecker()
	svc := NewQuotationService(repo, newStubCompanyRepo("CMP-1", "CMP-2"), perms, idem, zerolog.Nop())
	return svc, repo, idem
}

func createInput(actor ports.Actor, companyID, key string) ports.CreateQuotationInput {
	return ports.CreateQuotationInput{
		Actor:     actor,
		CompanyID: companyID,
		Title:     "Pump overhaul",
		Currency:  "USD",
		Items: []ports.QuotationItemInput{
			{Description: "Impeller", Quantity: 2, UnitPrice: 150},
			{Description: "Labour", Quantity: 8, UnitPrice: 40},
		},
		ValidUntil:     time.Now().Add(30 * 24 * time.Hour),
		IdempotencyKey: key,
	}
}

func TestQuotationService_CreateInternalDraft(t *testing.T) {
	svc, repo, _ := newQuotationFixture(allowAllPerms{})

	result, err := svc.Create(context.Background(), createInput(internalActor, "CMP-2", ""))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if result.Status != domain.StatusDraft {
		t.Fatalf("expected draft, got %s", result.Status)
	}
	if result.Total != 2*150+8*40 {
		t.Fatalf("unexpected total %v", result.Total)
	}

	stored := repo.byFolio[result.Folio]
	if stored.CompanyID != "CMP-2" {
		t.Fatalf("expected company CMP-2, got %s", stored.CompanyID)
	}
	if len(stored.StatusHistory) != 1 || stored.StatusHistory[0].Status != domain.StatusDraft {
		t.Fatalf("expected single draft history entry, got %+v", stored.StatusHistory)
	}
}

// External creates open as "requested" and the company is always the
// actor's own, regardless of the payload.
func TestQuotationService_CreateExternalForcesOwnCompany(t *testing.T) {
	svc, repo, _ := newQuotationFixture(allowAllPerms{})

	result, err := svc.Create(context.Background(), createInput(externalActor, "CMP-2", ""))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if result.Status != domain.StatusRequested {
		t.Fatalf("expected requested, got %s", result.Status)
	}
	if repo.byFolio[result.Folio].CompanyID != "CMP-1" {
		t.Fatalf("expected company forced to CMP-1, got %s", repo.byFolio[result.Folio].CompanyID)
	}
}

func TestQuotationService_CreateUnknownCompany(t *testing.T) {
	svc, _, _ := newQuotationFixture(allowAllPerms{})

	_, err := svc.Create(context.Background(), createInput(internalActor, "CMP-404", ""))
	if !errors.Is(err, domain.ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
}

func TestQuotationService_CreateIdempotentReplay(t *testing.T) {
	svc, repo, _ := newQuotationFixture(allowAllPerms{})

	first, err := svc.Create(context.Background(), createInput(internalActor, "CMP-1", "key-1"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	second, err := svc.Create(context.Background(), createInput(internalActor, "CMP-1", "key-1"))
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !second.AlreadyExisted {
		t.Fatal("expected replay to flag AlreadyExisted")
	}
	if second.Folio != first.Folio {
		t.Fatalf("expected same folio, got %s / %s", first.Folio, second.Folio)
	}
	if len(repo.byFolio) != 1 {
		t.Fatalf("expected one stored quotation, got %d", len(repo.byFolio))
	}
}

// When the checker errors, the durable stored key still resolves the replay.
func TestQuotationService_CreateReplayOnCheckerError(t *testing.T) {
	svc, repo, idem := newQuotationFixture(allowAllPerms{})

	first, err := svc.Create(context.Background(), createInput(internalActor, "CMP-1", "key-2"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	idem.err = errors.New("redis down")
	second, err := svc.Create(context.Background(), createInput(internalActor, "CMP-1", "key-2"))
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !second.AlreadyExisted || second.Folio != first.Folio {
		t.Fatalf("expected replay of %s, got %+v", first.Folio, second)
	}
	if len(repo.byFolio) != 1 {
		t.Fatalf("expected one stored quotation, got %d", len(repo.byFolio))
	}
}

func TestQuotationService_GetScopesExternalToOwnCompany(t *testing.T) {
	svc, _, _ := newQuotationFixture(allowAllPerms{})

	result, err := svc.Create(context.Background(), createInput(internalActor, "CMP-2", ""))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Get(context.Background(), externalActor, result.Folio); !errors.Is(err, domain.ErrQuotationNotFound) {
		t.Fatalf("expected not found for foreign company, got %v", err)
	}
	if _, err := svc.Get(context.Background(), internalActor, result.Folio); err != nil {
		t.Fatalf("internal get: %v", err)
	}
}

func TestQuotationService_ListForcesExternalCompanyFilter(t *testing.T) {
	svc, repo, _ := newQuotationFixture(allowAllPerms{})

	in := ports.ListQuotationsInput{Actor: externalActor, Company: "CMP-2"}
	if _, err := svc.List(context.Background(), in); err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.lastFilter.CompanyID != "CMP-1" {
		t.Fatalf("expected filter forced to CMP-1, got %q", repo.lastFilter.CompanyID)
	}
	if repo.lastFilter.Page != 1 || repo.lastFilter.Limit != 20 {
		t.Fatalf("expected default pagination, got page=%d limit=%d", repo.lastFilter.Page, repo.lastFilter.Limit)
	}
}

func TestQuotationService_TransitionLifecycle(t *testing.T) {
	svc, _, _ := newQuotationFixture(allowAllPerms{})

	result, err := svc.Create(context.Background(), createInput(internalActor, "CMP-1", ""))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var q *domain.Quotation
	for _, target := range []domain.QuotationStatus{
		domain.StatusPendingApproval,
		domain.StatusApproved,
		domain.StatusSent,
	} {
		q, err = svc.Transition(context.Background(), ports.TransitionInput{
			Actor: internalActor, Folio: result.Folio, Target: target,
		})
		if err != nil {
			t.Fatalf("transition to %s: %v", target, err)
		}
		if q.Status != target {
			t.Fatalf("expected status %s, got %s", target, q.Status)
		}
	}

	// The external client closes the loop on the sent quotation.
	q, err = svc.Transition(context.Background(), ports.TransitionInput{
		Actor: externalActor, Folio: result.Folio, Target: domain.StatusAccepted,
	})
	if err != nil {
		t.Fatalf("transition to accepted: %v", err)
	}
	if len(q.StatusHistory) != 5 {
		t.Fatalf("expected 5 history entries, got %d", len(q.StatusHistory))
	}
}

func TestQuotationService_TransitionInvalidMove(t *testing.T) {
	svc, _, _ := newQuotationFixture(allowAllPerms{})

	result, err := svc.Create(context.Background(), createInput(internalActor, "CMP-1", ""))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Transition(context.Background(), ports.TransitionInput{
		Actor: internalActor, Folio: result.Folio, Target: domain.StatusApproved,
	})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestQuotationService_TransitionDeniedWithoutFeature(t *testing.T) {
	svc, _, _ := newQuotationFixture(denyAllPerms{})

	_, err := svc.Transition(context.Background(), ports.TransitionInput{
		Actor: internalActor, Folio: "QT-X", Target: domain.StatusPendingApproval,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

// Approval is an internal move; an external actor has no feature mapping
// for it at all.
func TestQuotationService_TransitionCategoryMismatch(t *testing.T) {
	svc, _, _ := newQuotationFixture(allowAllPerms{})

	_, err := svc.Transition(context.Background(), ports.TransitionInput{
		Actor: externalActor, Folio: "QT-X", Target: domain.StatusApproved,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	_, err = svc.Transition(context.Background(), ports.TransitionInput{
		Actor: internalActor, Folio: "QT-X", Target: domain.StatusAccepted,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestQuotationService_AttachPDFInternalOnly(t *testing.T) {
	svc, repo, _ := newQuotationFixture(allowAllPerms{})

	result, err := svc.Create(context.Background(), createInput(internalActor, "CMP-1", ""))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.AttachPDF(context.Background(), externalActor, result.Folio, "quotations/x.pdf"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for external, got %v", err)
	}
	if err := svc.AttachPDF(context.Background(), internalActor, result.Folio, "quotations/x.pdf"); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if repo.byFolio[result.Folio].PDFPath != "quotations/x.pdf" {
		t.Fatal("expected pdf path stored")
	}
}
