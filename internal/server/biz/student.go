package biz

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"github.com/mbgplatform/mbg/internal/errs"
	"github.com/mbgplatform/mbg/internal/store"
)

type StudentServiceParams struct {
	fx.In

	Store *store.Store
	Audit *AuditService
}

func NewStudentService(params StudentServiceParams) *StudentService {
	return &StudentService{
		AbstractService: &AbstractService{store: params.Store},
		audit:           params.Audit,
	}
}

type StudentService struct {
	*AbstractService

	audit *AuditService
}

type CreateStudentInput struct {
	SchoolID  uuid.UUID  `json:"school_id"`
	Name      string     `json:"name"`
	ClassName string     `json:"class_name"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	Allergies string     `json:"allergies"`
}

func (s *StudentService) Create(ctx context.Context, in CreateStudentInput) (*store.Student, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errs.BadRequestFields("name is required", map[string]string{"name": "required"})
	}

	school, err := s.store.Schools.GetByID(ctx, in.SchoolID)
	if err != nil {
		return nil, storeErr(err, "school", "")
	}

	if in.ParentID != nil {
		if _, err := s.store.Users.GetByID(ctx, *in.ParentID); err != nil {
			return nil, storeErr(err, "parent", "")
		}
	}

	student := &store.Student{
		OrganizationID: school.OrganizationID,
		BranchID:       school.BranchID,
		SchoolID:       school.ID,
		Name:           strings.TrimSpace(in.Name),
		ClassName:      in.ClassName,
		ParentID:       in.ParentID,
		Allergies:      in.Allergies,
		IsActive:       true,
	}

	if err := s.store.Students.Create(ctx, student); err != nil {
		return nil, errs.Unexpected(err)
	}

	s.audit.Record(ctx, Entry{
		Action:       "STUDENT_CREATE",
		ResourceType: "STUDENT",
		ResourceID:   &student.ID,
		Details:      map[string]any{"school_id": student.SchoolID},
	})

	return student, nil
}

func (s *StudentService) Get(ctx context.Context, id uuid.UUID) (*store.Student, error) {
	student, err := s.store.Students.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "student", "")
	}

	return student, nil
}

func (s *StudentService) List(ctx context.Context, params store.ListParams) ([]*store.Student, int64, error) {
	students, total, err := s.store.Students.List(ctx, params)
	if err != nil {
		return nil, 0, errs.Unexpected(err)
	}

	return students, total, nil
}

type UpdateStudentInput struct {
	Name      *string    `json:"name,omitempty"`
	ClassName *string    `json:"class_name,omitempty"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	Allergies *string    `json:"allergies,omitempty"`
	IsActive  *bool      `json:"is_active,omitempty"`
}

func (s *StudentService) Update(ctx context.Context, id uuid.UUID, in UpdateStudentInput) (*store.Student, error) {
	student, err := s.store.Students.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "student", "")
	}

	if in.Name != nil {
		student.Name = strings.TrimSpace(*in.Name)
	}

	if in.ClassName != nil {
		student.ClassName = *in.ClassName
	}

	if in.ParentID != nil {
		if _, err := s.store.Users.GetByID(ctx, *in.ParentID); err != nil {
			return nil, storeErr(err, "parent", "")
		}

		student.ParentID = in.ParentID
	}

	if in.Allergies != nil {
		student.Allergies = *in.Allergies
	}

	if in.IsActive != nil {
		student.IsActive = *in.IsActive
	}

	if err := s.store.Students.Update(ctx, student); err != nil {
		return nil, errs.Unexpected(err)
	}

	s.audit.Record(ctx, Entry{
		Action:       "STUDENT_UPDATE",
		ResourceType: "STUDENT",
		ResourceID:   &student.ID,
	})

	return student, nil
}

func (s *StudentService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.store.Students.GetByID(ctx, id); err != nil {
		return storeErr(err, "student", "")
	}

	if err := s.store.Students.Delete(ctx, id); err != nil {
		return storeErr(err, "student", "")
	}

	s.audit.Record(ctx, Entry{
		Action:       "STUDENT_DELETE",
		ResourceType: "STUDENT",
		ResourceID:   &id,
	})

	return nil
}
