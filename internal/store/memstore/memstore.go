// Package memstore is an in-memory implementation of the store contracts.
// It backs the test suites and applies the same tenant-scoping policy as the
// database-backed store.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mbgplatform/mbg/internal/contexts"
	"github.com/mbgplatform/mbg/internal/scopes"
	"github.com/mbgplatform/mbg/internal/store"
)

type data struct {
	mu sync.RWMutex

	orgs      map[uuid.UUID]*store.Organization
	branches  map[uuid.UUID]*store.Branch
	users     map[uuid.UUID]*store.User
	schools   map[uuid.UUID]*store.School
	students  map[uuid.UUID]*store.Student
	meals     map[uuid.UUID]*store.Meal
	suppliers map[uuid.UUID]*store.Supplier
	orders    map[uuid.UUID]*store.Order
	documents map[uuid.UUID]*store.Document
	finances  map[uuid.UUID]*store.FinancialRecord
	perms     map[uuid.UUID]*store.Permission
	rolePerms map[scopes.Role]map[uuid.UUID]struct{}
	audits    []*store.AuditLog
}

// New builds an empty in-memory store.
func New() *store.Store {
	d := &data{
		orgs:      map[uuid.UUID]*store.Organization{},
		branches:  map[uuid.UUID]*store.Branch{},
		users:     map[uuid.UUID]*store.User{},
		schools:   map[uuid.UUID]*store.School{},
		students:  map[uuid.UUID]*store.Student{},
		meals:     map[uuid.UUID]*store.Meal{},
		suppliers: map[uuid.UUID]*store.Supplier{},
		orders:    map[uuid.UUID]*store.Order{},
		documents: map[uuid.UUID]*store.Document{},
		finances:  map[uuid.UUID]*store.FinancialRecord{},
		perms:     map[uuid.UUID]*store.Permission{},
		rolePerms: map[scopes.Role]map[uuid.UUID]struct{}{},
	}

	return &store.Store{
		Organizations:   &organizationRepo{d: d},
		Branches:        &branchRepo{d: d},
		Users:           &userRepo{d: d},
		Schools:         &schoolRepo{d: d},
		Students:        &studentRepo{d: d},
		Meals:           &mealRepo{d: d},
		Suppliers:       &supplierRepo{d: d},
		Orders:          &orderRepo{d: d},
		Documents:       &documentRepo{d: d},
		Finances:        &financialRecordRepo{d: d},
		Permissions:     &permissionRepo{d: d},
		RolePermissions: &rolePermissionRepo{d: d},
		AuditLogs:       &auditLogRepo{d: d},
	}
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func stamp(createdAt, updatedAt *time.Time) {
	now := time.Now()
	if createdAt != nil && createdAt.IsZero() {
		*createdAt = now
	}

	if updatedAt != nil {
		*updatedAt = now
	}
}

// orgVisible mirrors the database-side organization filter.
func orgVisible(ctx context.Context, orgID uuid.UUID) bool {
	ambient, ok := contexts.GetOrganizationID(ctx)
	return !ok || ambient == orgID
}

func orgPtrVisible(ctx context.Context, orgID *uuid.UUID) bool {
	ambient, ok := contexts.GetOrganizationID(ctx)
	if !ok {
		return true
	}

	return orgID != nil && *orgID == ambient
}

func branchVisible(ctx context.Context, branchID *uuid.UUID) bool {
	ambient, ok := contexts.GetBranchID(ctx)
	if !ok {
		return true
	}

	return branchID != nil && *branchID == ambient
}

func defaultTenant(ctx context.Context, orgID *uuid.UUID, branchID **uuid.UUID) {
	if ambient, ok := contexts.GetOrganizationID(ctx); ok {
		*orgID = ambient
	}

	if branchID != nil && *branchID == nil {
		if ambient, ok := contexts.GetBranchID(ctx); ok {
			b := ambient
			*branchID = &b
		}
	}
}

// page sorts newest-first and applies offset/limit, mirroring the database
// store's ordering.
func page[T any](items []*T, createdAt func(*T) time.Time, params store.ListParams) ([]*T, int64) {
	params = params.Normalize()
	total := int64(len(items))

	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]).After(createdAt(items[j]))
	})

	if params.Offset >= len(items) {
		return []*T{}, total
	}

	items = items[params.Offset:]
	if len(items) > params.Limit {
		items = items[:params.Limit]
	}

	return items, total
}
