package biz

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"github.com/mbgplatform/mbg/internal/errs"
	"github.com/mbgplatform/mbg/internal/store"
)

type BranchServiceParams struct {
	fx.In

	Store *store.Store
	Audit *AuditService
}

func NewBranchService(params BranchServiceParams) *BranchService {
	return &BranchService{
		AbstractService: &AbstractService{store: params.Store},
		audit:           params.Audit,
		orgLocks:        map[uuid.UUID]*sync.Mutex{},
	}
}

type BranchService struct {
	*AbstractService

	audit *AuditService

	// orgLocks serializes branch creation per organization so the quota
	// check-then-create cannot race within this process. The composite
	// unique index on (organization_id, code) remains the cross-process
	// guard; concurrent creates on separate instances can still briefly
	// exceed the quota by the number of instances.
	mu       sync.Mutex
	orgLocks map[uuid.UUID]*sync.Mutex
}

func (s *BranchService) orgLock(orgID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.orgLocks[orgID]
	if !ok {
		lock = &sync.Mutex{}
		s.orgLocks[orgID] = lock
	}

	return lock
}

type CreateBranchInput struct {
	OrganizationID uuid.UUID  `json:"organization_id"`
	Code           string     `json:"code"`
	Name           string     `json:"name"`
	Address        string     `json:"address"`
	City           string     `json:"city"`
	Phone          string     `json:"phone"`
	Email          string     `json:"email"`
	IsHeadquarters bool       `json:"is_headquarters"`
	ManagerID      *uuid.UUID `json:"manager_id,omitempty"`
}

func (s *BranchService) Create(ctx context.Context, in CreateBranchInput) (*store.Branch, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" || strings.TrimSpace(in.Name) == "" {
		return nil, errs.BadRequestFields("code and name are required", map[string]string{
			"code": "required",
			"name": "required",
		})
	}

	org, err := s.store.Organizations.GetByID(ctx, in.OrganizationID)
	if err != nil {
		return nil, storeErr(err, "organization", "")
	}

	lock := s.orgLock(org.ID)
	lock.Lock()
	defer lock.Unlock()

	count, err := s.store.Branches.CountByOrganization(ctx, org.ID)
	if err != nil {
		return nil, errs.Unexpected(err)
	}

	if count >= int64(org.MaxBranches) {
		return nil, errs.BadRequest("maximum branch limit reached")
	}

	if in.ManagerID != nil {
		if _, err := s.store.Users.GetByID(ctx, *in.ManagerID); err != nil {
			return nil, storeErr(err, "manager", "")
		}
	}

	branch := &store.Branch{
		OrganizationID: org.ID,
		Code:           code,
		Name:           strings.TrimSpace(in.Name),
		Address:        in.Address,
		City:           in.City,
		Phone:          in.Phone,
		Email:          in.Email,
		IsActive:       true,
		IsHeadquarters: in.IsHeadquarters,
		ManagerID:      in.ManagerID,
	}

	if err := s.store.Branches.Create(ctx, branch); err != nil {
		return nil, storeErr(err, "branch", "branch code already exists in organization")
	}

	s.audit.Record(ctx, Entry{
		Action:       "BRANCH_CREATE",
		ResourceType: "BRANCH",
		ResourceID:   &branch.ID,
		Details:      map[string]any{"code": branch.Code, "organization_id": branch.OrganizationID},
	})

	return branch, nil
}

func (s *BranchService) Get(ctx context.Context, id uuid.UUID) (*store.Branch, error) {
	branch, err := s.store.Branches.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "branch", "")
	}

	return branch, nil
}

func (s *BranchService) List(ctx context.Context, params store.ListParams) ([]*store.Branch, int64, error) {
	branches, total, err := s.store.Branches.List(ctx, params)
	if err != nil {
		return nil, 0, errs.Unexpected(err)
	}

	return branches, total, nil
}

type UpdateBranchInput struct {
	Name           *string    `json:"name,omitempty"`
	Address        *string    `json:"address,omitempty"`
	City           *string    `json:"city,omitempty"`
	Phone          *string    `json:"phone,omitempty"`
	Email          *string    `json:"email,omitempty"`
	IsActive       *bool      `json:"is_active,omitempty"`
	IsHeadquarters *bool      `json:"is_headquarters,omitempty"`
	ManagerID      *uuid.UUID `json:"manager_id,omitempty"`
}

func (s *BranchService) Update(ctx context.Context, id uuid.UUID, in UpdateBranchInput) (*store.Branch, error) {
	branch, err := s.store.Branches.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "branch", "")
	}

	if in.Name != nil {
		branch.Name = strings.TrimSpace(*in.Name)
	}

	if in.Address != nil {
		branch.Address = *in.Address
	}

	if in.City != nil {
		branch.City = *in.City
	}

	if in.Phone != nil {
		branch.Phone = *in.Phone
	}

	if in.Email != nil {
		branch.Email = *in.Email
	}

	if in.IsActive != nil {
		branch.IsActive = *in.IsActive
	}

	if in.IsHeadquarters != nil {
		branch.IsHeadquarters = *in.IsHeadquarters
	}

	if in.ManagerID != nil {
		if _, err := s.store.Users.GetByID(ctx, *in.ManagerID); err != nil {
			return nil, storeErr(err, "manager", "")
		}

		branch.ManagerID = in.ManagerID
	}

	if err := s.store.Branches.Update(ctx, branch); err != nil {
		return nil, storeErr(err, "branch", "branch code already exists in organization")
	}

	s.audit.Record(ctx, Entry{
		Action:       "BRANCH_UPDATE",
		ResourceType: "BRANCH",
		ResourceID:   &branch.ID,
	})

	return branch, nil
}

func (s *BranchService) Delete(ctx context.Context, id uuid.UUID) error {
	branch, err := s.store.Branches.GetByID(ctx, id)
	if err != nil {
		return storeErr(err, "branch", "")
	}

	if err := s.store.Branches.Delete(ctx, id); err != nil {
		return storeErr(err, "branch", "")
	}

	s.audit.Record(ctx, Entry{
		Action:       "BRANCH_DELETE",
		ResourceType: "BRANCH",
		ResourceID:   &branch.ID,
		Details:      map[string]any{"code": branch.Code},
	})

	return nil
}
