package biz

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"github.com/mbgplatform/mbg/internal/errs"
	"github.com/mbgplatform/mbg/internal/store"
)

type OrderServiceParams struct {
	fx.In

	Store *store.Store
	Audit *AuditService
}

func NewOrderService(params OrderServiceParams) *OrderService {
	return &OrderService{
		AbstractService: &AbstractService{store: params.Store},
		audit:           params.Audit,
	}
}

type OrderService struct {
	*AbstractService

	audit *AuditService
}

// validTransitions encodes the order lifecycle. Delivered and cancelled are
// terminal.
var validTransitions = map[store.OrderStatus][]store.OrderStatus{
	store.OrderStatusPending:   {store.OrderStatusConfirmed, store.OrderStatusCancelled},
	store.OrderStatusConfirmed: {store.OrderStatusDelivered, store.OrderStatusCancelled},
}

func canTransition(from, to store.OrderStatus) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}

	return false
}

type CreateOrderInput struct {
	SupplierID   uuid.UUID  `json:"supplier_id"`
	SchoolID     uuid.UUID  `json:"school_id"`
	MealID       uuid.UUID  `json:"meal_id"`
	Quantity     int        `json:"quantity"`
	DeliveryDate *time.Time `json:"delivery_date,omitempty"`
}

// Create resolves all three references inside the ambient tenant scope, so a
// reference into another organization fails as not found. The total is
// priced server-side from the meal.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*store.Order, error) {
	if in.Quantity <= 0 {
		return nil, errs.BadRequest("quantity must be positive")
	}

	supplier, err := s.store.Suppliers.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, storeErr(err, "supplier", "")
	}

	school, err := s.store.Schools.GetByID(ctx, in.SchoolID)
	if err != nil {
		return nil, storeErr(err, "school", "")
	}

	meal, err := s.store.Meals.GetByID(ctx, in.MealID)
	if err != nil {
		return nil, storeErr(err, "meal", "")
	}

	order := &store.Order{
		OrganizationID: school.OrganizationID,
		BranchID:       school.BranchID,
		SupplierID:     supplier.ID,
		SchoolID:       school.ID,
		MealID:         meal.ID,
		Quantity:       in.Quantity,
		TotalPrice:     meal.Price.Mul(decimal.NewFromInt(int64(in.Quantity))),
		Status:         store.OrderStatusPending,
		DeliveryDate:   in.DeliveryDate,
	}

	if err := s.store.Orders.Create(ctx, order); err != nil {
		return nil, errs.Unexpected(err)
	}

	s.audit.Record(ctx, Entry{
		Action:       "ORDER_CREATE",
		ResourceType: "ORDER",
		ResourceID:   &order.ID,
		Details: map[string]any{
			"school_id":   order.SchoolID,
			"supplier_id": order.SupplierID,
			"meal_id":     order.MealID,
			"quantity":    order.Quantity,
			"total_price": order.TotalPrice,
		},
	})

	return order, nil
}

func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*store.Order, error) {
	order, err := s.store.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "order", "")
	}

	return order, nil
}

func (s *OrderService) List(ctx context.Context, params store.ListParams) ([]*store.Order, int64, error) {
	orders, total, err := s.store.Orders.List(ctx, params)
	if err != nil {
		return nil, 0, errs.Unexpected(err)
	}

	return orders, total, nil
}

// UpdateStatus advances the lifecycle. Illegal transitions are rejected.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status store.OrderStatus) (*store.Order, error) {
	switch status {
	case store.OrderStatusPending, store.OrderStatusConfirmed, store.OrderStatusDelivered, store.OrderStatusCancelled:
	default:
		return nil, errs.BadRequest("unknown order status: " + string(status))
	}

	order, err := s.store.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "order", "")
	}

	if !canTransition(order.Status, status) {
		return nil, errs.BadRequest("cannot transition order from " + string(order.Status) + " to " + string(status))
	}

	previous := order.Status
	order.Status = status

	if err := s.store.Orders.Update(ctx, order); err != nil {
		return nil, errs.Unexpected(err)
	}

	s.audit.Record(ctx, Entry{
		Action:       "ORDER_STATUS_UPDATE",
		ResourceType: "ORDER",
		ResourceID:   &order.ID,
		Details:      map[string]any{"from": previous, "to": status},
	})

	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := s.store.Orders.GetByID(ctx, id)
	if err != nil {
		return storeErr(err, "order", "")
	}

	if order.Status != store.OrderStatusPending {
		return errs.BadRequest("only pending orders can be deleted")
	}

	if err := s.store.Orders.Delete(ctx, id); err != nil {
		return storeErr(err, "order", "")
	}

	s.audit.Record(ctx, Entry{
		Action:       "ORDER_DELETE",
		ResourceType: "ORDER",
		ResourceID:   &id,
	})

	return nil
}
