package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
)

// RoleRepository stores role tables in per-namespace collections
// (roles_internal / roles_external). Writes replace the whole collection:
// there is no row-level update and no concurrency token, so concurrent
// administrative writers race last-write-wins.
type RoleRepository struct {
	db *mongo.Database
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{db: db}
}

type mongoRole struct {
	ID          string `bson:"_id"`
	Name        string `bson:"name"`
	Description string `bson:"description"`
}

func (r *RoleRepository) coll(namespace string) *mongo.Collection {
	return r.db.Collection("roles_" + namespace)
}

func (r *RoleRepository) List(ctx context.Context, namespace string) ([]domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll(namespace).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer cur.Close(ctx)

	roles := []domain.Role{}
	for cur.Next(ctx) {
		var mr mongoRole
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode role: %w", err)
		}
		roles = append(roles, domain.Role{ID: mr.ID, Name: mr.Name, Description: mr.Description})
	}
	return roles, cur.Err()
}

func (r *RoleRepository) ReplaceAll(ctx context.Context, namespace string, roles []domain.Role) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	coll := r.coll(namespace)
	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("replace roles: %w", err)
	}
	if len(roles) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(roles))
	for _, role := range roles {
		docs = append(docs, mongoRole{ID: role.ID, Name: role.Name, Description: role.Description})
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("replace roles: %w", err)
	}
	return nil
}

// EnsureDefaults seeds the namespace with its default roles when empty.
func (r *RoleRepository) EnsureDefaults(ctx context.Context, namespace string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll(namespace).CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}
	if n > 0 {
		return nil
	}
	return r.ReplaceAll(ctx, namespace, domain.DefaultRoles(namespace))
}
