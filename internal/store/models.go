package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mbgplatform/mbg/internal/scopes"
)

// Organization is the tenancy root. Every tenant-scoped entity carries an
// organization id referencing a row of this table.
type Organization struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Code        string    `gorm:"size:50;not null;uniqueIndex" json:"code"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Tier        string    `gorm:"size:50;not null;default:BASIC" json:"tier"`
	MaxBranches int       `gorm:"not null;default:5" json:"maxBranches"`
	MaxUsers    int       `gorm:"not null;default:100" json:"maxUsers"`
	IsActive    bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Branch belongs to exactly one organization. Its code is unique within
// that organization only; the composite index enforces this at the database
// level, which is also the cross-process guard for the quota race noted in
// the service layer.
type Branch struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_branches_org_code;index" json:"organizationId"`
	Code           string     `gorm:"size:50;not null;uniqueIndex:idx_branches_org_code" json:"code"`
	Name           string     `gorm:"size:255;not null" json:"name"`
	Address        string     `gorm:"size:500" json:"address"`
	City           string     `gorm:"size:100" json:"city"`
	Phone          string     `gorm:"size:50" json:"phone"`
	Email          string     `gorm:"size:255" json:"email"`
	IsActive       bool       `gorm:"not null;default:true" json:"isActive"`
	IsHeadquarters bool       `gorm:"not null;default:false" json:"isHeadquarters"`
	ManagerID      *uuid.UUID `gorm:"type:uuid" json:"managerId,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// User is an identity. Users are never deleted, only deactivated, so audit
// entries keep resolving to an actor. Platform-level roles carry no
// organization id.
type User struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string      `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash   string      `gorm:"size:255;not null" json:"-"`
	Role           scopes.Role `gorm:"size:50;not null" json:"role"`
	FirstName      string      `gorm:"size:100" json:"firstName"`
	LastName       string      `gorm:"size:100" json:"lastName"`
	Phone          string      `gorm:"size:50" json:"phone"`
	OrganizationID *uuid.UUID  `gorm:"type:uuid;index" json:"organizationId,omitempty"`
	BranchID       *uuid.UUID  `gorm:"type:uuid" json:"branchId,omitempty"`
	IsActive       bool        `gorm:"not null;default:true" json:"isActive"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// School is tenant-scoped, optionally pinned to a branch.
type School struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"organizationId"`
	BranchID       *uuid.UUID `gorm:"type:uuid;index" json:"branchId,omitempty"`
	Name           string     `gorm:"size:255;not null" json:"name"`
	Address        string     `gorm:"size:500" json:"address"`
	City           string     `gorm:"size:100" json:"city"`
	PrincipalName  string     `gorm:"size:255" json:"principalName"`
	StudentCount   int        `gorm:"not null;default:0" json:"studentCount"`
	IsActive       bool       `gorm:"not null;default:true" json:"isActive"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Student is tenant-scoped and must reference an existing school.
type Student struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"organizationId"`
	BranchID       *uuid.UUID `gorm:"type:uuid;index" json:"branchId,omitempty"`
	SchoolID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"schoolId"`
	Name           string     `gorm:"size:255;not null" json:"name"`
	ClassName      string     `gorm:"size:50" json:"className"`
	ParentID       *uuid.UUID `gorm:"type:uuid" json:"parentId,omitempty"`
	Allergies      string     `gorm:"size:500" json:"allergies"`
	IsActive       bool       `gorm:"not null;default:true" json:"isActive"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Meal is a vendor menu item.
type Meal struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID       `gorm:"type:uuid;not null;index" json:"organizationId"`
	SupplierID     *uuid.UUID      `gorm:"type:uuid;index" json:"supplierId,omitempty"`
	Name           string          `gorm:"size:255;not null" json:"name"`
	Description    string          `gorm:"size:1000" json:"description"`
	Calories       int             `gorm:"not null;default:0" json:"calories"`
	Price          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	IsActive       bool            `gorm:"not null;default:true" json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// Supplier is a meal vendor registered within an organization.
type Supplier struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organizationId"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	ContactEmail   string    `gorm:"size:255" json:"contactEmail"`
	Phone          string    `gorm:"size:50" json:"phone"`
	Address        string    `gorm:"size:500" json:"address"`
	IsActive       bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// OrderStatus enumerates the order lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Order links a school, a meal and a supplier. All three references are
// resolved and existence-checked before a row is written.
type Order struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID       `gorm:"type:uuid;not null;index" json:"organizationId"`
	BranchID       *uuid.UUID      `gorm:"type:uuid;index" json:"branchId,omitempty"`
	SupplierID     uuid.UUID       `gorm:"type:uuid;not null" json:"supplierId"`
	SchoolID       uuid.UUID       `gorm:"type:uuid;not null" json:"schoolId"`
	MealID         uuid.UUID       `gorm:"type:uuid;not null" json:"mealId"`
	Quantity       int             `gorm:"not null" json:"quantity"`
	TotalPrice     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"totalPrice"`
	Status         OrderStatus     `gorm:"size:20;not null;default:PENDING" json:"status"`
	DeliveryDate   *time.Time      `json:"deliveryDate,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// DocumentStatus enumerates the review workflow.
type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "PENDING"
	DocumentStatusApproved DocumentStatus = "APPROVED"
	DocumentStatusRejected DocumentStatus = "REJECTED"
)

// Document is a tenant-scoped submission going through governance review.
type Document struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"organizationId"`
	Title          string         `gorm:"size:255;not null" json:"title"`
	DocType        string         `gorm:"size:100" json:"docType"`
	Status         DocumentStatus `gorm:"size:20;not null;default:PENDING" json:"status"`
	ReviewNote     string         `gorm:"size:1000" json:"reviewNote"`
	SubmittedBy    uuid.UUID      `gorm:"type:uuid;not null" json:"submittedBy"`
	ReviewedBy     *uuid.UUID     `gorm:"type:uuid" json:"reviewedBy,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// FinancialRecordType enumerates record direction.
type FinancialRecordType string

const (
	FinancialRecordIncome  FinancialRecordType = "INCOME"
	FinancialRecordExpense FinancialRecordType = "EXPENSE"
)

// FinancialRecord is a tenant-scoped ledger entry.
type FinancialRecord struct {
	ID             uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID           `gorm:"type:uuid;not null;index" json:"organizationId"`
	BranchID       *uuid.UUID          `gorm:"type:uuid;index" json:"branchId,omitempty"`
	Type           FinancialRecordType `gorm:"size:20;not null" json:"type"`
	Category       string              `gorm:"size:100" json:"category"`
	Amount         decimal.Decimal     `gorm:"type:numeric(14,2);not null" json:"amount"`
	Description    string              `gorm:"size:1000" json:"description"`
	RecordedAt     time.Time           `gorm:"not null;index" json:"recordedAt"`
	CreatedAt      time.Time           `json:"createdAt"`
}

// Permission is immutable reference data seeded from the scopes catalog.
type Permission struct {
	ID          uuid.UUID             `gorm:"type:uuid;primaryKey" json:"id"`
	Name        scopes.PermissionName `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Resource    string                `gorm:"size:50;not null" json:"resource"`
	Action      string                `gorm:"size:50;not null" json:"action"`
	Description string                `gorm:"size:500" json:"description"`
	CreatedAt   time.Time             `json:"createdAt"`
}

// RolePermission is the composite-keyed role-to-permission relation.
type RolePermission struct {
	Role         scopes.Role `gorm:"size:50;primaryKey" json:"role"`
	PermissionID uuid.UUID   `gorm:"type:uuid;primaryKey" json:"permissionId"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// AuditLog is an append-only record of one state-changing action. Rows are
// never updated or deleted by normal operation.
type AuditLog struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       *uuid.UUID `gorm:"type:uuid;index" json:"userId,omitempty"`
	Action       string     `gorm:"size:100;not null;index" json:"action"`
	ResourceType string     `gorm:"size:50;index" json:"resourceType"`
	ResourceID   *uuid.UUID `gorm:"type:uuid" json:"resourceId,omitempty"`
	Details      string     `gorm:"type:text" json:"details"`
	IPAddress    string     `gorm:"size:64" json:"ipAddress"`
	UserAgent    string     `gorm:"size:512" json:"userAgent"`
	CreatedAt    time.Time  `gorm:"not null;index" json:"createdAt"`
}
