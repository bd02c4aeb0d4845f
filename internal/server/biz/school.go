package biz

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"github.com/mbgplatform/mbg/internal/errs"
	"github.com/mbgplatform/mbg/internal/store"
)

type SchoolServiceParams struct {
	fx.In

	Store *store.Store
	Audit *AuditService
}

func NewSchoolService(params SchoolServiceParams) *SchoolService {
	return &SchoolService{
		AbstractService: &AbstractService{store: params.Store},
		audit:           params.Audit,
	}
}

type SchoolService struct {
	*AbstractService

	audit *AuditService
}

type CreateSchoolInput struct {
	Name          string     `json:"name"`
	Address       string     `json:"address"`
	City          string     `json:"city"`
	PrincipalName string     `json:"principal_name"`
	StudentCount  int        `json:"student_count"`
	BranchID      *uuid.UUID `json:"branch_id,omitempty"`
}

func (s *SchoolService) Create(ctx context.Context, in CreateSchoolInput) (*store.School, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errs.BadRequestFields("name is required", map[string]string{"name": "required"})
	}

	if in.StudentCount < 0 {
		return nil, errs.BadRequest("student_count must not be negative")
	}

	school := &store.School{
		BranchID:      in.BranchID,
		Name:          strings.TrimSpace(in.Name),
		Address:       in.Address,
		City:          in.City,
		PrincipalName: in.PrincipalName,
		StudentCount:  in.StudentCount,
		IsActive:      true,
	}

	if err := s.store.Schools.Create(ctx, school); err != nil {
		return nil, errs.Unexpected(err)
	}

	s.audit.Record(ctx, Entry{
		Action:       "SCHOOL_CREATE",
		ResourceType: "SCHOOL",
		ResourceID:   &school.ID,
		Details:      map[string]any{"name": school.Name},
	})

	return school, nil
}

func (s *SchoolService) Get(ctx context.Context, id uuid.UUID) (*store.School, error) {
	school, err := s.store.Schools.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "school", "")
	}

	return school, nil
}

func (s *SchoolService) List(ctx context.Context, params store.ListParams) ([]*store.School, int64, error) {
	schools, total, err := s.store.Schools.List(ctx, params)
	if err != nil {
		return nil, 0, errs.Unexpected(err)
	}

	return schools, total, nil
}

type UpdateSchoolInput struct {
	Name          *string `json:"name,omitempty"`
	Address       *string `json:"address,omitempty"`
	City          *string `json:"city,omitempty"`
	PrincipalName *string `json:"principal_name,omitempty"`
	StudentCount  *int    `json:"student_count,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

func (s *SchoolService) Update(ctx context.Context, id uuid.UUID, in UpdateSchoolInput) (*store.School, error) {
	school, err := s.store.Schools.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "school", "")
	}

	if in.Name != nil {
		school.Name = strings.TrimSpace(*in.Name)
	}

	if in.Address != nil {
		school.Address = *in.Address
	}

	if in.City != nil {
		school.City = *in.City
	}

	if in.PrincipalName != nil {
		school.PrincipalName = *in.PrincipalName
	}

	if in.StudentCount != nil {
		if *in.StudentCount < 0 {
			return nil, errs.BadRequest("student_count must not be negative")
		}

		school.StudentCount = *in.StudentCount
	}

	if in.IsActive != nil {
		school.IsActive = *in.IsActive
	}

	if err := s.store.Schools.Update(ctx, school); err != nil {
		return nil, errs.Unexpected(err)
	}

	s.audit.Record(ctx, Entry{
		Action:       "SCHOOL_UPDATE",
		ResourceType: "SCHOOL",
		ResourceID:   &school.ID,
	})

	return school, nil
}

func (s *SchoolService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.store.Schools.GetByID(ctx, id); err != nil {
		return storeErr(err, "school", "")
	}

	if err := s.store.Schools.Delete(ctx, id); err != nil {
		return storeErr(err, "school", "")
	}

	s.audit.Record(ctx, Entry{
		Action:       "SCHOOL_DELETE",
		ResourceType: "SCHOOL",
		ResourceID:   &id,
	})

	return nil
}
