package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/ports"
)

const quotationsCollection = "quotations"

type QuotationRepository struct {
	coll *mongo.Collection
}

func NewQuotationRepository(db *mongo.Database) *QuotationRepository {
	return &QuotationRepository{coll: db.Collection(quotationsCollection)}
}

// Create inserts a new quotation document.
func (r *QuotationRepository) Create(ctx context.Context, q *domain.Quotation) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, q)
	return err
}

// FindByFolio retrieves a quotation by folio. When companyID is non-empty,
// an additional filter by company is applied (external-actor scoping).
func (r *QuotationRepository) FindByFolio(ctx context.Context, folio string, companyID string) (*domain.Quotation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"folio": folio}
	if companyID != "" {
		filter["company_id"] = companyID
	}

	var q domain.Quotation
	if err := r.coll.FindOne(ctx, filter).Decode(&q); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrQuotationNotFound
		}
		return nil, err
	}
	return &q, nil
}

// FindByIdempotencyKey retrieves the quotation created with the given key.
func (r *QuotationRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Quotation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var q domain.Quotation
	if err := r.coll.FindOne(ctx, bson.M{"idempotency_key": key}).Decode(&q); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrQuotationNotFound
		}
		return nil, err
	}
	return &q, nil
}

// List returns one page of quotations matching the filter plus the total count.
func (r *QuotationRepository) List(ctx context.Context, filter ports.QuotationFilter) ([]domain.Quotation, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.CompanyID != "" {
		query["company_id"] = filter.CompanyID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	created := bson.M{}
	if !filter.DateFrom.IsZero() {
		created["$gte"] = filter.DateFrom
	}
	if !filter.DateTo.IsZero() {
		created["$lte"] = filter.DateTo
	}
	if len(created) > 0 {
		query["created_at"] = created
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count quotations: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list quotations: %w", err)
	}
	defer cur.Close(ctx)

	var quotations []domain.Quotation
	for cur.Next(ctx) {
		var q domain.Quotation
		if err := cur.Decode(&q); err != nil {
			return nil, 0, fmt.Errorf("decode quotation: %w", err)
		}
		quotations = append(quotations, q)
	}
	return quotations, total, cur.Err()
}

// Update replaces the full quotation document.
func (r *QuotationRepository) Update(ctx context.Context, q *domain.Quotation) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"folio": q.Folio}, q)
	if err != nil {
		return fmt.Errorf("update quotation: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrQuotationNotFound
	}
	return nil
}

// AppendStatus atomically updates the status and pushes a history entry.
func (r *QuotationRepository) AppendStatus(ctx context.Context, folio string, status domain.QuotationStatus, entry domain.StatusHistoryEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"folio": folio},
		bson.M{
			"$set":  bson.M{"status": status, "updated_at": entry.Timestamp},
			"$push": bson.M{"status_history": entry},
		},
	)
	if err != nil {
		return fmt.Errorf("append status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrQuotationNotFound
	}
	return nil
}

// SetPDFPath records the stored PDF location on a quotation.
func (r *QuotationRepository) SetPDFPath(ctx context.Context, folio, path string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"folio": folio},
		bson.M{"$set": bson.M{"pdf_path": path, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("set pdf path: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrQuotationNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the quotations collection.
func (r *QuotationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "folio", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "company_id", Value: 1}}},
		{Keys: bson.D{{Key: "idempotency_key", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
