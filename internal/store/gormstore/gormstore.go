// Package gormstore implements the store contracts on a gorm database.
//
// Tenant scoping is applied here, not in the services: reads on
// tenant-scoped tables are filtered by the ambient organization id from the
// request context, and creates default missing tenant fields from the same
// ambient scope.
package gormstore

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbgplatform/mbg/internal/contexts"
	"github.com/mbgplatform/mbg/internal/store"
)

// New wires every repository to the given database handle.
func New(db *gorm.DB) *store.Store {
	return &store.Store{
		Organizations:   &organizationRepo{db: db},
		Branches:        &branchRepo{db: db},
		Users:           &userRepo{db: db},
		Schools:         &schoolRepo{db: db},
		Students:        &studentRepo{db: db},
		Meals:           &mealRepo{db: db},
		Suppliers:       &supplierRepo{db: db},
		Orders:          &orderRepo{db: db},
		Documents:       &documentRepo{db: db},
		Finances:        &financialRecordRepo{db: db},
		Permissions:     &permissionRepo{db: db},
		RolePermissions: &rolePermissionRepo{db: db},
		AuditLogs:       &auditLogRepo{db: db},
	}
}

// translateErr maps gorm errors onto the store sentinels. Requires the
// dialector to run with TranslateError enabled so unique violations surface
// as gorm.ErrDuplicatedKey.
func translateErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return store.ErrConflict
	default:
		return err
	}
}

// orgScoped filters by the ambient organization id when one is present.
// Platform principals carry no organization id and see everything.
func orgScoped(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if orgID, ok := contexts.GetOrganizationID(ctx); ok {
		tx = tx.Where("organization_id = ?", orgID)
	}

	return tx
}

// branchScoped additionally narrows to the ambient branch. Only list reads
// use it; point reads stay organization-wide so branch managers can still
// resolve organization-level rows they reference.
func branchScoped(ctx context.Context, tx *gorm.DB) *gorm.DB {
	tx = orgScoped(ctx, tx)
	if branchID, ok := contexts.GetBranchID(ctx); ok {
		tx = tx.Where("branch_id = ?", branchID)
	}

	return tx
}

// defaultTenant fills missing tenant placement from the ambient scope.
// Client-supplied placement outside the ambient organization is overridden.
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

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
