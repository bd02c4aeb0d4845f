package biz

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"github.com/mbgplatform/mbg/internal/errs"
	"github.com/mbgplatform/mbg/internal/objects"
	"github.com/mbgplatform/mbg/internal/scopes"
	"github.com/mbgplatform/mbg/internal/store"
)

type UserServiceParams struct {
	fx.In

	Store *store.Store
	Audit *AuditService
}

func NewUserService(params UserServiceParams) *UserService {
	return &UserService{
		AbstractService: &AbstractService{store: params.Store},
		audit:           params.Audit,
	}
}

type UserService struct {
	*AbstractService

	audit *AuditService
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (objects.UserInfo, error) {
	user, err := s.store.Users.GetByID(ctx, id)
	if err != nil {
		return objects.UserInfo{}, storeErr(err, "user", "")
	}

	return toUserInfo(user), nil
}

func (s *UserService) List(ctx context.Context, params store.ListParams) ([]objects.UserInfo, int64, error) {
	users, total, err := s.store.Users.List(ctx, params)
	if err != nil {
		return nil, 0, errs.Unexpected(err)
	}

	infos := make([]objects.UserInfo, 0, len(users))
	for _, user := range users {
		infos = append(infos, toUserInfo(user))
	}

	return infos, total, nil
}

type UpdateUserInput struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, in UpdateUserInput) (objects.UserInfo, error) {
	user, err := s.store.Users.GetByID(ctx, id)
	if err != nil {
		return objects.UserInfo{}, storeErr(err, "user", "")
	}

	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}

	if in.LastName != nil {
		user.LastName = *in.LastName
	}

	if in.Phone != nil {
		user.Phone = *in.Phone
	}

	if err := s.store.Users.Update(ctx, user); err != nil {
		return objects.UserInfo{}, storeErr(err, "user", "email already registered")
	}

	s.audit.Record(ctx, Entry{
		Action:       "USER_UPDATE",
		ResourceType: "USER",
		ResourceID:   &user.ID,
	})

	return toUserInfo(user), nil
}

// UpdateRole assigns a role from the closed set. Unknown role names are
// rejected before any write.
func (s *UserService) UpdateRole(ctx context.Context, id uuid.UUID, roleName string) (objects.UserInfo, error) {
	role, err := scopes.ParseRole(roleName)
	if err != nil {
		return objects.UserInfo{}, errs.BadRequest(err.Error())
	}

	user, err := s.store.Users.GetByID(ctx, id)
	if err != nil {
		return objects.UserInfo{}, storeErr(err, "user", "")
	}

	previous := user.Role
	user.Role = role

	if err := s.store.Users.Update(ctx, user); err != nil {
		return objects.UserInfo{}, errs.Unexpected(err)
	}

	s.audit.Record(ctx, Entry{
		Action:       "USER_ROLE_UPDATE",
		ResourceType: "USER",
		ResourceID:   &user.ID,
		Details:      map[string]any{"from": previous, "to": role},
	})

	return toUserInfo(user), nil
}

// SetActive enables or disables an account. Accounts are never deleted so
// audit entries keep resolving to their actor.
func (s *UserService) SetActive(ctx context.Context, id uuid.UUID, active bool) (objects.UserInfo, error) {
	user, err := s.store.Users.GetByID(ctx, id)
	if err != nil {
		return objects.UserInfo{}, storeErr(err, "user", "")
	}

	user.IsActive = active

	if err := s.store.Users.Update(ctx, user); err != nil {
		return objects.UserInfo{}, errs.Unexpected(err)
	}

	action := "USER_DEACTIVATE"
	if active {
		action = "USER_ACTIVATE"
	}

	s.audit.Record(ctx, Entry{
		Action:       action,
		ResourceType: "USER",
		ResourceID:   &user.ID,
	})

	return toUserInfo(user), nil
}
