package biz

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"github.com/mbgplatform/mbg/internal/errs"
	"github.com/mbgplatform/mbg/internal/store"
)

type OrganizationServiceParams struct {
	fx.In

	Store *store.Store
	Audit *AuditService
}

func NewOrganizationService(params OrganizationServiceParams) *OrganizationService {
	return &OrganizationService{
		AbstractService: &AbstractService{store: params.Store},
		audit:           params.Audit,
	}
}

type OrganizationService struct {
	*AbstractService

	audit *AuditService
}

type CreateOrganizationInput struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Tier        string `json:"tier"`
	MaxBranches int    `json:"max_branches"`
	MaxUsers    int    `json:"max_users"`
}

func (s *OrganizationService) Create(ctx context.Context, in CreateOrganizationInput) (*store.Organization, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" || strings.TrimSpace(in.Name) == "" {
		return nil, errs.BadRequestFields("code and name are required", map[string]string{
			"code": "required",
			"name": "required",
		})
	}

	org := &store.Organization{
		Code:        code,
		Name:        strings.TrimSpace(in.Name),
		Tier:        strings.ToUpper(in.Tier),
		MaxBranches: in.MaxBranches,
		MaxUsers:    in.MaxUsers,
		IsActive:    true,
	}

	if org.Tier == "" {
		org.Tier = "BASIC"
	}

	if org.MaxBranches <= 0 {
		org.MaxBranches = 5
	}

	if org.MaxUsers <= 0 {
		org.MaxUsers = 100
	}

	if err := s.store.Organizations.Create(ctx, org); err != nil {
		return nil, storeErr(err, "organization", "organization code already exists")
	}

	s.audit.Record(ctx, Entry{
		Action:       "ORG_CREATE",
		ResourceType: "ORGANIZATION",
		ResourceID:   &org.ID,
		Details:      map[string]any{"code": org.Code, "name": org.Name},
	})

	return org, nil
}

func (s *OrganizationService) Get(ctx context.Context, id uuid.UUID) (*store.Organization, error) {
	org, err := s.store.Organizations.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "organization", "")
	}

	return org, nil
}

func (s *OrganizationService) GetByCode(ctx context.Context, code string) (*store.Organization, error) {
	org, err := s.store.Organizations.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, storeErr(err, "organization", "")
	}

	return org, nil
}

func (s *OrganizationService) List(ctx context.Context, params store.ListParams) ([]*store.Organization, int64, error) {
	orgs, total, err := s.store.Organizations.List(ctx, params)
	if err != nil {
		return nil, 0, errs.Unexpected(err)
	}

	return orgs, total, nil
}

type UpdateOrganizationInput struct {
	Name        *string `json:"name,omitempty"`
	Tier        *string `json:"tier,omitempty"`
	MaxBranches *int    `json:"max_branches,omitempty"`
	MaxUsers    *int    `json:"max_users,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (s *OrganizationService) Update(ctx context.Context, id uuid.UUID, in UpdateOrganizationInput) (*store.Organization, error) {
	org, err := s.store.Organizations.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "organization", "")
	}

	if in.Name != nil {
		org.Name = strings.TrimSpace(*in.Name)
	}

	if in.Tier != nil {
		org.Tier = strings.ToUpper(*in.Tier)
	}

	if in.MaxBranches != nil {
		if *in.MaxBranches <= 0 {
			return nil, errs.BadRequest("max_branches must be positive")
		}

		org.MaxBranches = *in.MaxBranches
	}

	if in.MaxUsers != nil {
		if *in.MaxUsers <= 0 {
			return nil, errs.BadRequest("max_users must be positive")
		}

		org.MaxUsers = *in.MaxUsers
	}

	if in.IsActive != nil {
		org.IsActive = *in.IsActive
	}

	if err := s.store.Organizations.Update(ctx, org); err != nil {
		return nil, storeErr(err, "organization", "organization code already exists")
	}

	s.audit.Record(ctx, Entry{
		Action:       "ORG_UPDATE",
		ResourceType: "ORGANIZATION",
		ResourceID:   &org.ID,
	})

	return org, nil
}
