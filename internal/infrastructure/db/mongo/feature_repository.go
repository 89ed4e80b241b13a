package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
)

// FeatureRepository stores feature tables in per-namespace collections
// (features_internal / features_external), with the same whole-collection
// replace semantics as RoleRepository.
type FeatureRepository struct {
	db *mongo.Database
}

func NewFeatureRepository(db *mongo.Database) *FeatureRepository {
	return &FeatureRepository{db: db}
}

type mongoFeature struct {
	ID           string   `bson:"_id"`
	Name         string   `bson:"name"`
	Description  string   `bson:"description"`
	AllowedRoles []string `bson:"allowed_roles"`
}

func (r *FeatureRepository) coll(namespace string) *mongo.Collection {
	return r.db.Collection("features_" + namespace)
}

func (r *FeatureRepository) List(ctx context.Context, namespace string) ([]domain.Feature, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll(namespace).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list features: %w", err)
	}
	defer cur.Close(ctx)

	features := []domain.Feature{}
	for cur.Next(ctx) {
		var mf mongoFeature
		if err := cur.Decode(&mf); err != nil {
			return nil, fmt.Errorf("decode feature: %w", err)
		}
		features = append(features, domain.Feature{
			ID:           mf.ID,
			Name:         mf.Name,
			Description:  mf.Description,
			AllowedRoles: mf.AllowedRoles,
		})
	}
	return features, cur.Err()
}

func (r *FeatureRepository) ReplaceAll(ctx context.Context, namespace string, features []domain.Feature) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	coll := r.coll(namespace)
	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("replace features: %w", err)
	}
	if len(features) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(features))
	for _, f := range features {
		docs = append(docs, mongoFeature{
			ID:           f.ID,
			Name:         f.Name,
			Description:  f.Description,
			AllowedRoles: f.AllowedRoles,
		})
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("replace features: %w", err)
	}
	return nil
}

// EnsureDefaults seeds the namespace with its default feature table when empty.
func (r *FeatureRepository) EnsureDefaults(ctx context.Context, namespace string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll(namespace).CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("seed features: %w", err)
	}
	if n > 0 {
		return nil
	}
	return r.ReplaceAll(ctx, namespace, domain.DefaultFeatures(namespace))
}
