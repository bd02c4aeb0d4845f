// Package scopes holds the closed catalogs the authorization layer is built
// on: the role enumeration, the permission catalog and the default
// role-to-permission grants used to seed the store.
package scopes

import "github.com/samber/lo"

// PermissionName identifies a permission, conventionally <RESOURCE>_<VERB>.
type PermissionName string

// Available permissions in the system.
const (
	PermOrgCreate PermissionName = "ORG_CREATE"
	PermOrgRead   PermissionName = "ORG_READ"
	PermOrgUpdate PermissionName = "ORG_UPDATE"
	// PermOrgManage covers activation and deactivation of organizations.
	PermOrgManage PermissionName = "ORG_MANAGE"

	PermBranchCreate PermissionName = "BRANCH_CREATE"
	PermBranchRead   PermissionName = "BRANCH_READ"
	PermBranchUpdate PermissionName = "BRANCH_UPDATE"
	PermBranchDelete PermissionName = "BRANCH_DELETE"

	PermUserRead PermissionName = "USER_READ"
	// PermUserManage covers role changes and activation toggles.
	PermUserManage PermissionName = "USER_MANAGE"

	PermSchoolCreate PermissionName = "SCHOOL_CREATE"
	PermSchoolRead   PermissionName = "SCHOOL_READ"
	PermSchoolUpdate PermissionName = "SCHOOL_UPDATE"
	PermSchoolDelete PermissionName = "SCHOOL_DELETE"

	PermStudentCreate PermissionName = "STUDENT_CREATE"
	PermStudentRead   PermissionName = "STUDENT_READ"
	PermStudentUpdate PermissionName = "STUDENT_UPDATE"
	PermStudentDelete PermissionName = "STUDENT_DELETE"

	PermMealCreate PermissionName = "MEAL_CREATE"
	PermMealRead   PermissionName = "MEAL_READ"
	PermMealUpdate PermissionName = "MEAL_UPDATE"
	PermMealDelete PermissionName = "MEAL_DELETE"

	PermSupplierCreate PermissionName = "SUPPLIER_CREATE"
	PermSupplierRead   PermissionName = "SUPPLIER_READ"
	PermSupplierUpdate PermissionName = "SUPPLIER_UPDATE"
	PermSupplierDelete PermissionName = "SUPPLIER_DELETE"

	PermOrderCreate PermissionName = "ORDER_CREATE"
	PermOrderRead   PermissionName = "ORDER_READ"
	PermOrderUpdate PermissionName = "ORDER_UPDATE"
	PermOrderDelete PermissionName = "ORDER_DELETE"

	PermDocumentSubmit PermissionName = "DOCUMENT_SUBMIT"
	PermDocumentRead   PermissionName = "DOCUMENT_READ"
	// PermDocumentReview covers approval and rejection.
	PermDocumentReview PermissionName = "DOCUMENT_REVIEW"

	PermFinanceCreate PermissionName = "FINANCE_CREATE"
	PermFinanceRead   PermissionName = "FINANCE_READ"

	// PermAuditRead gates the audit log and its analytics. Granted to the
	// top-level governance role only.
	PermAuditRead PermissionName = "AUDIT_READ"
	// PermGovernanceRead gates the governance dashboard.
	PermGovernanceRead PermissionName = "GOVERNANCE_READ"
)

// Permission describes one entry of the immutable permission catalog.
type Permission struct {
	Name        PermissionName
	Resource    string
	Action      string
	Description string
}

// permissionConfigs defines the full catalog. The store is seeded from this
// list at startup; names are unique.
var permissionConfigs = []Permission{
	{Name: PermOrgCreate, Resource: "ORGANIZATION", Action: "CREATE", Description: "Create organizations"},
	{Name: PermOrgRead, Resource: "ORGANIZATION", Action: "READ", Description: "View organizations"},
	{Name: PermOrgUpdate, Resource: "ORGANIZATION", Action: "UPDATE", Description: "Update organizations"},
	{Name: PermOrgManage, Resource: "ORGANIZATION", Action: "MANAGE", Description: "Activate and deactivate organizations"},

	{Name: PermBranchCreate, Resource: "BRANCH", Action: "CREATE", Description: "Create branches"},
	{Name: PermBranchRead, Resource: "BRANCH", Action: "READ", Description: "View branches"},
	{Name: PermBranchUpdate, Resource: "BRANCH", Action: "UPDATE", Description: "Update branches"},
	{Name: PermBranchDelete, Resource: "BRANCH", Action: "DELETE", Description: "Delete branches"},

	{Name: PermUserRead, Resource: "USER", Action: "READ", Description: "View users"},
	{Name: PermUserManage, Resource: "USER", Action: "MANAGE", Description: "Change user roles and activation"},

	{Name: PermSchoolCreate, Resource: "SCHOOL", Action: "CREATE", Description: "Create schools"},
	{Name: PermSchoolRead, Resource: "SCHOOL", Action: "READ", Description: "View schools"},
	{Name: PermSchoolUpdate, Resource: "SCHOOL", Action: "UPDATE", Description: "Update schools"},
	{Name: PermSchoolDelete, Resource: "SCHOOL", Action: "DELETE", Description: "Delete schools"},

	{Name: PermStudentCreate, Resource: "STUDENT", Action: "CREATE", Description: "Register students"},
	{Name: PermStudentRead, Resource: "STUDENT", Action: "READ", Description: "View students"},
	{Name: PermStudentUpdate, Resource: "STUDENT", Action: "UPDATE", Description: "Update students"},
	{Name: PermStudentDelete, Resource: "STUDENT", Action: "DELETE", Description: "Remove students"},

	{Name: PermMealCreate, Resource: "MEAL", Action: "CREATE", Description: "Create meals"},
	{Name: PermMealRead, Resource: "MEAL", Action: "READ", Description: "View meals"},
	{Name: PermMealUpdate, Resource: "MEAL", Action: "UPDATE", Description: "Update meals"},
	{Name: PermMealDelete, Resource: "MEAL", Action: "DELETE", Description: "Delete meals"},

	{Name: PermSupplierCreate, Resource: "SUPPLIER", Action: "CREATE", Description: "Register suppliers"},
	{Name: PermSupplierRead, Resource: "SUPPLIER", Action: "READ", Description: "View suppliers"},
	{Name: PermSupplierUpdate, Resource: "SUPPLIER", Action: "UPDATE", Description: "Update suppliers"},
	{Name: PermSupplierDelete, Resource: "SUPPLIER", Action: "DELETE", Description: "Remove suppliers"},

	{Name: PermOrderCreate, Resource: "ORDER", Action: "CREATE", Description: "Create meal orders"},
	{Name: PermOrderRead, Resource: "ORDER", Action: "READ", Description: "View meal orders"},
	{Name: PermOrderUpdate, Resource: "ORDER", Action: "UPDATE", Description: "Update order status"},
	{Name: PermOrderDelete, Resource: "ORDER", Action: "DELETE", Description: "Delete meal orders"},

	{Name: PermDocumentSubmit, Resource: "DOCUMENT", Action: "SUBMIT", Description: "Submit documents"},
	{Name: PermDocumentRead, Resource: "DOCUMENT", Action: "READ", Description: "View documents"},
	{Name: PermDocumentReview, Resource: "DOCUMENT", Action: "REVIEW", Description: "Approve or reject documents"},

	{Name: PermFinanceCreate, Resource: "FINANCE", Action: "CREATE", Description: "Record financial entries"},
	{Name: PermFinanceRead, Resource: "FINANCE", Action: "READ", Description: "View financial records"},

	{Name: PermAuditRead, Resource: "AUDIT", Action: "READ", Description: "Read audit logs and analytics"},
	{Name: PermGovernanceRead, Resource: "GOVERNANCE", Action: "READ", Description: "View the governance dashboard"},
}

// All returns the full permission catalog.
func All() []Permission {
	out := make([]Permission, len(permissionConfigs))
	copy(out, permissionConfigs)

	return out
}

// AllNames returns every permission name in the catalog.
func AllNames() []PermissionName {
	return lo.Map(permissionConfigs, func(p Permission, _ int) PermissionName {
		return p.Name
	})
}

// Lookup finds a catalog entry by name.
func Lookup(name PermissionName) (Permission, bool) {
	return lo.Find(permissionConfigs, func(p Permission) bool {
		return p.Name == name
	})
}

// DefaultGrants returns the role-to-permission table used to seed the
// role_permissions relation. AUDIT_READ and GOVERNANCE_READ stay with the
// top-level governance role.
func DefaultGrants() map[Role][]PermissionName {
	return map[Role][]PermissionName{
		RoleSuperAdmin: AllNames(),
		RoleGovernanceAdmin: {
			PermOrgCreate, PermOrgRead, PermOrgUpdate, PermOrgManage,
			PermBranchRead, PermUserRead, PermSchoolRead, PermStudentRead,
			PermMealRead, PermSupplierRead, PermOrderRead,
			PermDocumentRead, PermDocumentReview, PermFinanceRead,
		},
		RoleOrgAdmin: {
			PermOrgRead,
			PermBranchCreate, PermBranchRead, PermBranchUpdate, PermBranchDelete,
			PermUserRead, PermUserManage,
			PermSchoolCreate, PermSchoolRead, PermSchoolUpdate, PermSchoolDelete,
			PermStudentCreate, PermStudentRead, PermStudentUpdate, PermStudentDelete,
			PermMealRead,
			PermSupplierCreate, PermSupplierRead, PermSupplierUpdate, PermSupplierDelete,
			PermOrderCreate, PermOrderRead, PermOrderUpdate, PermOrderDelete,
			PermDocumentSubmit, PermDocumentRead,
			PermFinanceCreate, PermFinanceRead,
		},
		RoleSchoolAdmin: {
			PermSchoolRead, PermSchoolUpdate,
			PermStudentCreate, PermStudentRead, PermStudentUpdate, PermStudentDelete,
			PermMealRead,
			PermOrderCreate, PermOrderRead, PermOrderUpdate,
			PermDocumentSubmit, PermDocumentRead,
		},
		RoleSupplier: {
			PermMealCreate, PermMealRead, PermMealUpdate, PermMealDelete,
			PermOrderRead, PermOrderUpdate,
			PermDocumentSubmit, PermDocumentRead,
		},
		RoleParent: {
			PermSchoolRead, PermStudentRead, PermMealRead,
		},
	}
}
