package domain

import "errors"

// Internal feature ids known to the permission layer.
const (
	FeatureManageRoles      = "manage_roles"
	FeatureManageFeatures   = "manage_features"
	FeatureManageUsers      = "manage_users"
	FeatureManageCompanies  = "manage_companies"
	FeatureCreateQuotation  = "create_quotation"
	FeatureApproveQuotation = "approve_quotation"
	FeatureViewQuotations   = "view_quotations"
)

// External feature ids.
const (
	FeatureExtRequestQuotation = "ext_request_quotation"
	FeatureExtViewQuotations   = "ext_view_quotations"
	FeatureExtAcceptQuotation  = "ext_accept_quotation"
)

var ErrFeatureNotFound = errors.New("feature not found")
var ErrInvalidFeature = errors.New("invalid feature")

// Feature is a named capability gate with an allow-list of role ids.
type Feature struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	AllowedRoles []string `json:"allowedRoles"`
}

// Allows reports whether the role id is a member of the feature's
// allow-list. Exact string match; callers normalize external roles first.
func (f Feature) Allows(role string) bool {
	if role == "" {
		return false
	}
	for _, r := range f.AllowedRoles {
		if r == role {
			return true
		}
	}
	return false
}

// DefaultFeatures returns the feature table seeded into an empty namespace
// store.
func DefaultFeatures(namespace string) []Feature {
	if namespace == NamespaceExternal {
		all := []string{RoleExternalClient}
		return []Feature{
			{ID: FeatureExtRequestQuotation, Name: "Request Quotation", Description: "Submit a quotation request", AllowedRoles: all},
			{ID: FeatureExtViewQuotations, Name: "View Quotations", Description: "View quotations for own company", AllowedRoles: all},
			{ID: FeatureExtAcceptQuotation, Name: "Accept Quotation", Description: "Accept or decline a sent quotation", AllowedRoles: all},
		}
	}
	return []Feature{
		{ID: FeatureManageRoles, Name: "Manage Roles", Description: "Create, edit and delete roles", AllowedRoles: []string{RoleAdmin}},
		{ID: FeatureManageFeatures, Name: "Manage Features", Description: "Edit feature role grants", AllowedRoles: []string{RoleAdmin}},
		{ID: FeatureManageUsers, Name: "Manage Users", Description: "Create, edit and delete users", AllowedRoles: []string{RoleAdmin}},
		{ID: FeatureManageCompanies, Name: "Manage Companies", Description: "Create, edit and delete companies", AllowedRoles: []string{RoleAdmin, "manager"}},
		{ID: FeatureCreateQuotation, Name: "Create Quotation", Description: "Draft, edit and send quotations", AllowedRoles: []string{RoleAdmin, "sales_engineer", "sales"}},
		{ID: FeatureApproveQuotation, Name: "Approve Quotation", Description: "Approve or reject quotations", AllowedRoles: []string{RoleAdmin, "manager"}},
		{ID: FeatureViewQuotations, Name: "View Quotations", Description: "View all quotations", AllowedRoles: []string{RoleAdmin, "manager", "sales_engineer", "sales"}},
	}
}
