package biz

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"github.com/mbgplatform/mbg/internal/errs"
	"github.com/mbgplatform/mbg/internal/store"
)

type SupplierServiceParams struct {
	fx.In

	Store *store.Store
	Audit *AuditService
}

func NewSupplierService(params SupplierServiceParams) *SupplierService {
	return &SupplierService{
		AbstractService: &AbstractService{store: params.Store},
		audit:           params.Audit,
	}
}

type SupplierService struct {
	*AbstractService

	audit *AuditService
}

type CreateSupplierInput struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

func (s *SupplierService) Create(ctx context.Context, in CreateSupplierInput) (*store.Supplier, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errs.BadRequestFields("name is required", map[string]string{"name": "required"})
	}

	supplier := &store.Supplier{
		Name:         strings.TrimSpace(in.Name),
		ContactEmail: in.ContactEmail,
		Phone:        in.Phone,
		Address:      in.Address,
		IsActive:     true,
	}

	if err := s.store.Suppliers.Create(ctx, supplier); err != nil {
		return nil, errs.Unexpected(err)
	}

	s.audit.Record(ctx, Entry{
		Action:       "SUPPLIER_CREATE",
		ResourceType: "SUPPLIER",
		ResourceID:   &supplier.ID,
		Details:      map[string]any{"name": supplier.Name},
	})

	return supplier, nil
}

func (s *SupplierService) Get(ctx context.Context, id uuid.UUID) (*store.Supplier, error) {
	supplier, err := s.store.Suppliers.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "supplier", "")
	}

	return supplier, nil
}

func (s *SupplierService) List(ctx context.Context, params store.ListParams) ([]*store.Supplier, int64, error) {
	suppliers, total, err := s.store.Suppliers.List(ctx, params)
	if err != nil {
		return nil, 0, errs.Unexpected(err)
	}

	return suppliers, total, nil
}

type UpdateSupplierInput struct {
	Name         *string `json:"name,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, in UpdateSupplierInput) (*store.Supplier, error) {
	supplier, err := s.store.Suppliers.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "supplier", "")
	}

	if in.Name != nil {
		supplier.Name = strings.TrimSpace(*in.Name)
	}

	if in.ContactEmail != nil {
		supplier.ContactEmail = *in.ContactEmail
	}

	if in.Phone != nil {
		supplier.Phone = *in.Phone
	}

	if in.Address != nil {
		supplier.Address = *in.Address
	}

	if in.IsActive != nil {
		supplier.IsActive = *in.IsActive
	}

	if err := s.store.Suppliers.Update(ctx, supplier); err != nil {
		return nil, errs.Unexpected(err)
	}

	s.audit.Record(ctx, Entry{
		Action:       "SUPPLIER_UPDATE",
		ResourceType: "SUPPLIER",
		ResourceID:   &supplier.ID,
	})

	return supplier, nil
}

func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.store.Suppliers.GetByID(ctx, id); err != nil {
		return storeErr(err, "supplier", "")
	}

	if err := s.store.Suppliers.Delete(ctx, id); err != nil {
		return storeErr(err, "supplier", "")
	}

	s.audit.Record(ctx, Entry{
		Action:       "SUPPLIER_DELETE",
		ResourceType: "SUPPLIER",
		ResourceID:   &id,
	})

	return nil
}
