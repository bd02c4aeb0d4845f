// Package store defines the persistence contracts for the platform.
//
// Implementations must honor the tenant-scoping policy: list reads are
// filtered by the ambient organization id (and branch id when present) taken
// from the request context, and creates default missing tenant fields from
// the same ambient scope. Client-supplied tenant placement is never trusted.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mbgplatform/mbg/internal/scopes"
)

var (
	// ErrNotFound is returned when a row does not exist or is invisible to
	// the ambient tenant scope.
	ErrNotFound = errors.New("store: record not found")
	// ErrConflict is returned on uniqueness violations.
	ErrConflict = errors.New("store: duplicate record")
)

// ListParams bounds a listing query. Zero Limit means implementation default.
type ListParams struct {
	Offset int
	Limit  int
}

// Normalize clamps paging values to sane bounds.
func (p ListParams) Normalize() ListParams {
	if p.Limit <= 0 {
		p.Limit = 20
	}

	if p.Limit > 200 {
		p.Limit = 200
	}

	if p.Offset < 0 {
		p.Offset = 0
	}

	return p
}

// AuditFilter narrows audit queries. Time bounds are inclusive.
type AuditFilter struct {
	UserID       *uuid.UUID
	ResourceType string
	From         *time.Time
	To           *time.Time
}

// AuditAnalytics is the aggregation view for governance reporting.
type AuditAnalytics struct {
	TotalActions      int64            `json:"totalActions"`
	ActionsByType     map[string]int64 `json:"actionsByType"`
	ActionsByResource map[string]int64 `json:"actionsByResource"`
	ActionsByActor    map[string]int64 `json:"actionsByActor"`
	ActionsPerDay     map[string]int64 `json:"actionsPerDay"`
}

// OrganizationRepo owns the tenancy roots. Organizations are platform-level
// and therefore not tenant-filtered themselves.
type OrganizationRepo interface {
	Create(ctx context.Context, org *Organization) error
	GetByID(ctx context.Context, id uuid.UUID) (*Organization, error)
	GetByCode(ctx context.Context, code string) (*Organization, error)
	List(ctx context.Context, params ListParams) ([]*Organization, int64, error)
	Update(ctx context.Context, org *Organization) error
}

type BranchRepo interface {
	Create(ctx context.Context, branch *Branch) error
	GetByID(ctx context.Context, id uuid.UUID) (*Branch, error)
	GetByCode(ctx context.Context, orgID uuid.UUID, code string) (*Branch, error)
	List(ctx context.Context, params ListParams) ([]*Branch, int64, error)
	CountByOrganization(ctx context.Context, orgID uuid.UUID) (int64, error)
	Update(ctx context.Context, branch *Branch) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserRepo interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, params ListParams) ([]*User, int64, error)
	Update(ctx context.Context, user *User) error
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role scopes.Role) (int64, error)
	CountByActive(ctx context.Context, active bool) (int64, error)
}

type SchoolRepo interface {
	Create(ctx context.Context, school *School) error
	GetByID(ctx context.Context, id uuid.UUID) (*School, error)
	List(ctx context.Context, params ListParams) ([]*School, int64, error)
	Update(ctx context.Context, school *School) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type StudentRepo interface {
	Create(ctx context.Context, student *Student) error
	GetByID(ctx context.Context, id uuid.UUID) (*Student, error)
	List(ctx context.Context, params ListParams) ([]*Student, int64, error)
	Update(ctx context.Context, student *Student) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type MealRepo interface {
	Create(ctx context.Context, meal *Meal) error
	GetByID(ctx context.Context, id uuid.UUID) (*Meal, error)
	List(ctx context.Context, params ListParams) ([]*Meal, int64, error)
	Update(ctx context.Context, meal *Meal) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type SupplierRepo interface {
	Create(ctx context.Context, supplier *Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	List(ctx context.Context, params ListParams) ([]*Supplier, int64, error)
	Update(ctx context.Context, supplier *Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type OrderRepo interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context, params ListParams) ([]*Order, int64, error)
	Update(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type DocumentRepo interface {
	Create(ctx context.Context, doc *Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*Document, error)
	List(ctx context.Context, params ListParams) ([]*Document, int64, error)
	Update(ctx context.Context, doc *Document) error
	CountByStatus(ctx context.Context, status DocumentStatus) (int64, error)
}

type FinancialRecordRepo interface {
	Create(ctx context.Context, record *FinancialRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*FinancialRecord, error)
	List(ctx context.Context, from, to *time.Time, params ListParams) ([]*FinancialRecord, int64, error)
}

type PermissionRepo interface {
	Create(ctx context.Context, perm *Permission) error
	GetByName(ctx context.Context, name scopes.PermissionName) (*Permission, error)
	List(ctx context.Context) ([]*Permission, error)
}

type RolePermissionRepo interface {
	Grant(ctx context.Context, role scopes.Role, permissionID uuid.UUID) error
	Revoke(ctx context.Context, role scopes.Role, permissionID uuid.UUID) error
	// PermissionsForRole resolves the granted permission set of a role.
	PermissionsForRole(ctx context.Context, role scopes.Role) ([]*Permission, error)
}

// AuditLogRepo is append-only. Create must not participate in any caller
// transaction: a rolled-back business mutation must not take an already
// written audit row with it.
type AuditLogRepo interface {
	Create(ctx context.Context, entry *AuditLog) error
	List(ctx context.Context, filter AuditFilter, params ListParams) ([]*AuditLog, int64, error)
	Analytics(ctx context.Context) (*AuditAnalytics, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

// Store bundles every repository behind one injection point.
type Store struct {
	Organizations   OrganizationRepo
	Branches        BranchRepo
	Users           UserRepo
	Schools         SchoolRepo
	Students        StudentRepo
	Meals           MealRepo
	Suppliers       SupplierRepo
	Orders          OrderRepo
	Documents       DocumentRepo
	Finances        FinancialRecordRepo
	Permissions     PermissionRepo
	RolePermissions RolePermissionRepo
	AuditLogs       AuditLogRepo
}
