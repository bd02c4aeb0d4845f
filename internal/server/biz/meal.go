package biz

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"github.com/mbgplatform/mbg/internal/errs"
	"github.com/mbgplatform/mbg/internal/store"
)

type MealServiceParams struct {
	fx.In

	Store *store.Store
	Audit *AuditService
}

func NewMealService(params MealServiceParams) *MealService {
	return &MealService{
		AbstractService: &AbstractService{store: params.Store},
		audit:           params.Audit,
	}
}

type MealService struct {
	*AbstractService

	audit *AuditService
}

type CreateMealInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Calories    int             `json:"calories"`
	Price       decimal.Decimal `json:"price"`
	SupplierID  *uuid.UUID      `json:"supplier_id,omitempty"`
}

func (s *MealService) Create(ctx context.Context, in CreateMealInput) (*store.Meal, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errs.BadRequestFields("name is required", map[string]string{"name": "required"})
	}

	if in.Price.IsNegative() {
		return nil, errs.BadRequest("price must not be negative")
	}

	if in.SupplierID != nil {
		if _, err := s.store.Suppliers.GetByID(ctx, *in.SupplierID); err != nil {
			return nil, storeErr(err, "supplier", "")
		}
	}

	meal := &store.Meal{
		SupplierID:  in.SupplierID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Calories:    in.Calories,
		Price:       in.Price,
		IsActive:    true,
	}

	if err := s.store.Meals.Create(ctx, meal); err != nil {
		return nil, errs.Unexpected(err)
	}

	s.audit.Record(ctx, Entry{
		Action:       "MEAL_CREATE",
		ResourceType: "MEAL",
		ResourceID:   &meal.ID,
		Details:      map[string]any{"name": meal.Name},
	})

	return meal, nil
}

func (s *MealService) Get(ctx context.Context, id uuid.UUID) (*store.Meal, error) {
	meal, err := s.store.Meals.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "meal", "")
	}

	return meal, nil
}

func (s *MealService) List(ctx context.Context, params store.ListParams) ([]*store.Meal, int64, error) {
	meals, total, err := s.store.Meals.List(ctx, params)
	if err != nil {
		return nil, 0, errs.Unexpected(err)
	}

	return meals, total, nil
}

type UpdateMealInput struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Calories    *int             `json:"calories,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	SupplierID  *uuid.UUID       `json:"supplier_id,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

func (s *MealService) Update(ctx context.Context, id uuid.UUID, in UpdateMealInput) (*store.Meal, error) {
	meal, err := s.store.Meals.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "meal", "")
	}

	if in.Name != nil {
		meal.Name = strings.TrimSpace(*in.Name)
	}

	if in.Description != nil {
		meal.Description = *in.Description
	}

	if in.Calories != nil {
		meal.Calories = *in.Calories
	}

	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, errs.BadRequest("price must not be negative")
		}

		meal.Price = *in.Price
	}

	if in.SupplierID != nil {
		if _, err := s.store.Suppliers.GetByID(ctx, *in.SupplierID); err != nil {
			return nil, storeErr(err, "supplier", "")
		}

		meal.SupplierID = in.SupplierID
	}

	if in.IsActive != nil {
		meal.IsActive = *in.IsActive
	}

	if err := s.store.Meals.Update(ctx, meal); err != nil {
		return nil, errs.Unexpected(err)
	}

	s.audit.Record(ctx, Entry{
		Action:       "MEAL_UPDATE",
		ResourceType: "MEAL",
		ResourceID:   &meal.ID,
	})

	return meal, nil
}

func (s *MealService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.store.Meals.GetByID(ctx, id); err != nil {
		return storeErr(err, "meal", "")
	}

	if err := s.store.Meals.Delete(ctx, id); err != nil {
		return storeErr(err, "meal", "")
	}

	s.audit.Record(ctx, Entry{
		Action:       "MEAL_DELETE",
		ResourceType: "MEAL",
		ResourceID:   &id,
	})

	return nil
}
