package ports

import "context"

// PermissionEvaluator answers whether a role may invoke a feature. The
// feature table is fetched from the store on every check; any fetch error,
// empty role or missing feature resolves to deny (fail-closed). The
// evaluator never returns an error: denial is the only failure mode.
type PermissionEvaluator interface {
	Can(ctx context.Context, namespace, role, featureID string) bool
	// CanViewRoles is the composite role-administration view permission:
	// allowed when either manage_roles or manage_features is granted.
	CanViewRoles(ctx context.Context, namespace, role string) bool
}
