package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub feature repository
// ---------------------------------------------------------------------------

type stubFeatureRepo struct {
	tables  map[string][]domain.Feature // namespace → table
	listErr error                       // if set, List returns this error
	written map[string][]domain.Feature // namespace → last ReplaceAll payload
}

func newStubFeatureRepo() *stubFeatureRepo {
	return &stubFeatureRepo{
		tables:  make(map[string][]domain.Feature),
		written: make(map[string][]domain.Feature),
	}
}

func (r *stubFeatureRepo) List(_ context.Context, namespace string) ([]domain.Feature, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.tables[namespace], nil
}

func (r *stubFeatureRepo) ReplaceAll(_ context.Context, namespace string, features []domain.Feature) error {
	r.tables[namespace] = features
	r.written[namespace] = features
	return nil
}

func (r *stubFeatureRepo) EnsureDefaults(_ context.Context, namespace string) error {
	if len(r.tables[namespace]) == 0 {
		r.tables[namespace] = domain.DefaultFeatures(namespace)
	}
	return nil
}

func newPermissionService(repo *stubFeatureRepo) *PermissionService {
	return NewPermissionService(repo, zerolog.Nop())
}

func TestPermissionService_AllowsListedRole(t *testing.T) {
	repo := newStubFeatureRepo()
	repo.tables[domain.NamespaceInternal] = []domain.Feature{
		{ID: "approve_quotation", Name: "Approve", Description: "d", AllowedRoles: []string{"admin", "manager"}},
	}
	svc := newPermissionService(repo)

	if !svc.Can(context.Background(), domain.NamespaceInternal, "manager", "approve_quotation") {
		t.Fatal("expected manager to be allowed")
	}
	if svc.Can(context.Background(), domain.NamespaceInternal, "sales", "approve_quotation") {
		t.Fatal("expected sales to be denied")
	}
}

func TestPermissionService_MissingFeatureDenies(t *testing.T) {
	repo := newStubFeatureRepo()
	repo.tables[domain.NamespaceInternal] = []domain.Feature{
		{ID: "manage_users", Name: "Users", Description: "d", AllowedRoles: []string{"admin"}},
	}
	svc := newPermissionService(repo)

	if svc.Can(context.Background(), domain.NamespaceInternal, "admin", "no_such_feature") {
		t.Fatal("expected unknown feature to deny")
	}
}

func TestPermissionService_EmptyRoleDenies(t *testing.T) {
	repo := newStubFeatureRepo()
	repo.tables[domain.NamespaceInternal] = []domain.Feature{
		{ID: "manage_users", Name: "Users", Description: "d", AllowedRoles: []string{"admin"}},
	}
	svc := newPermissionService(repo)

	if svc.Can(context.Background(), domain.NamespaceInternal, "", "manage_users") {
		t.Fatal("expected empty role to deny")
	}
}

func TestPermissionService_FetchErrorDenies(t *testing.T) {
	repo := newStubFeatureRepo()
	repo.listErr = errors.New("store down")
	svc := newPermissionService(repo)

	if svc.Can(context.Background(), domain.NamespaceInternal, "admin", "manage_users") {
		t.Fatal("expected store error to deny")
	}
}

// External checks must resolve the same way whether the caller or the table
// carries the ext_ prefix.
func TestPermissionService_ExternalPrefixNormalization(t *testing.T) {
	repo := newStubFeatureRepo()
	repo.tables[domain.NamespaceExternal] = []domain.Feature{
		{ID: "ext_view_quotations", Name: "View", Description: "d", AllowedRoles: []string{"client"}},
	}
	svc := newPermissionService(repo)

	for _, role := range []string{"client", "ext_client"} {
		if !svc.Can(context.Background(), domain.NamespaceExternal, role, "ext_view_quotations") {
			t.Fatalf("expected role %q to be allowed", role)
		}
	}
}

func TestPermissionService_CanViewRolesComposite(t *testing.T) {
	repo := newStubFeatureRepo()
	repo.tables[domain.NamespaceInternal] = []domain.Feature{
		{ID: domain.FeatureManageRoles, Name: "Roles", Description: "d", AllowedRoles: []string{"admin"}},
		{ID: domain.FeatureManageFeatures, Name: "Features", Description: "d", AllowedRoles: []string{"manager"}},
	}
	svc := newPermissionService(repo)

	cases := []struct {
		role string
		want bool
	}{
		{"admin", true},   // via manage_roles
		{"manager", true}, // via manage_features
		{"sales", false},
	}
	for _, tc := range cases {
		if got := svc.CanViewRoles(context.Background(), domain.NamespaceInternal, tc.role); got != tc.want {
			t.Errorf("CanViewRoles(%q) = %v, want %v", tc.role, got, tc.want)
		}
	}
}
