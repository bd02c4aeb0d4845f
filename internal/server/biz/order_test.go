package biz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbgplatform/mbg/internal/contexts"
	"github.com/mbgplatform/mbg/internal/errs"
	"github.com/mbgplatform/mbg/internal/store"
)

type orderFixture struct {
	env      *testEnv
	supplier *store.Supplier
	school   *store.School
	meal     *store.Meal
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	env := newTestEnv(t)
	ctx := contexts.WithOrganizationID(systemCtx(), mustOrg(t, env, "ORD", 5).ID)

	supplier, err := env.Suppliers.Create(ctx, CreateSupplierInput{Name: "Fresh Foods"})
	require.NoError(t, err)

	school, err := env.Schools.Create(ctx, CreateSchoolInput{Name: "North Primary"})
	require.NoError(t, err)

	meal, err := env.Meals.Create(ctx, CreateMealInput{
		Name:       "Rice bowl",
		Price:      decimal.RequireFromString("12.50"),
		SupplierID: &supplier.ID,
	})
	require.NoError(t, err)

	return &orderFixture{env: env, supplier: supplier, school: school, meal: meal}
}

func TestOrderCreate(t *testing.T) {
	f := newOrderFixture(t)
	ctx := contexts.WithOrganizationID(systemCtx(), f.school.OrganizationID)

	t.Run("prices server side", func(t *testing.T) {
		order, err := f.env.Orders.Create(ctx, CreateOrderInput{
			SupplierID: f.supplier.ID,
			SchoolID:   f.school.ID,
			MealID:     f.meal.ID,
			Quantity:   4,
		})
		require.NoError(t, err)
		assert.Equal(t, store.OrderStatusPending, order.Status)
		assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("50.00")),
			"got %s", order.TotalPrice)
	})

	t.Run("zero quantity", func(t *testing.T) {
		_, err := f.env.Orders.Create(ctx, CreateOrderInput{
			SupplierID: f.supplier.ID,
			SchoolID:   f.school.ID,
			MealID:     f.meal.ID,
		})
		require.Error(t, err)
		assert.Equal(t, errs.KindBadRequest, errs.KindOf(err))
	})

	t.Run("unknown supplier", func(t *testing.T) {
		_, err := f.env.Orders.Create(ctx, CreateOrderInput{
			SupplierID: uuid.New(),
			SchoolID:   f.school.ID,
			MealID:     f.meal.ID,
			Quantity:   1,
		})
		require.Error(t, err)
		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	})

	t.Run("unknown school", func(t *testing.T) {
		_, err := f.env.Orders.Create(ctx, CreateOrderInput{
			SupplierID: f.supplier.ID,
			SchoolID:   uuid.New(),
			MealID:     f.meal.ID,
			Quantity:   1,
		})
		require.Error(t, err)
		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	})

	t.Run("unknown meal", func(t *testing.T) {
		_, err := f.env.Orders.Create(ctx, CreateOrderInput{
			SupplierID: f.supplier.ID,
			SchoolID:   f.school.ID,
			MealID:     uuid.New(),
			Quantity:   1,
		})
		require.Error(t, err)
		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	})
}

func TestOrderStatusTransitions(t *testing.T) {
	f := newOrderFixture(t)
	ctx := contexts.WithOrganizationID(systemCtx(), f.school.OrganizationID)

	newOrder := func(t *testing.T) *store.Order {
		order, err := f.env.Orders.Create(ctx, CreateOrderInput{
			SupplierID: f.supplier.ID,
			SchoolID:   f.school.ID,
			MealID:     f.meal.ID,
			Quantity:   1,
		})
		require.NoError(t, err)

		return order
	}

	t.Run("pending to confirmed to delivered", func(t *testing.T) {
		order := newOrder(t)

		order, err := f.env.Orders.UpdateStatus(ctx, order.ID, store.OrderStatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, store.OrderStatusConfirmed, order.Status)

		order, err = f.env.Orders.UpdateStatus(ctx, order.ID, store.OrderStatusDelivered)
		require.NoError(t, err)
		assert.Equal(t, store.OrderStatusDelivered, order.Status)
	})

	t.Run("pending cannot be delivered directly", func(t *testing.T) {
		order := newOrder(t)

		_, err := f.env.Orders.UpdateStatus(ctx, order.ID, store.OrderStatusDelivered)
		require.Error(t, err)
		assert.Equal(t, errs.KindBadRequest, errs.KindOf(err))
	})

	t.Run("delivered is terminal", func(t *testing.T) {
		order := newOrder(t)

		_, err := f.env.Orders.UpdateStatus(ctx, order.ID, store.OrderStatusConfirmed)
		require.NoError(t, err)
		_, err = f.env.Orders.UpdateStatus(ctx, order.ID, store.OrderStatusDelivered)
		require.NoError(t, err)

		_, err = f.env.Orders.UpdateStatus(ctx, order.ID, store.OrderStatusCancelled)
		require.Error(t, err)
		assert.Equal(t, errs.KindBadRequest, errs.KindOf(err))
	})

	t.Run("unknown status", func(t *testing.T) {
		order := newOrder(t)

		_, err := f.env.Orders.UpdateStatus(ctx, order.ID, store.OrderStatus("SHIPPED"))
		require.Error(t, err)
		assert.Equal(t, errs.KindBadRequest, errs.KindOf(err))
	})

	t.Run("only pending orders can be deleted", func(t *testing.T) {
		order := newOrder(t)

		_, err := f.env.Orders.UpdateStatus(ctx, order.ID, store.OrderStatusConfirmed)
		require.NoError(t, err)

		err = f.env.Orders.Delete(ctx, order.ID)
		require.Error(t, err)
		assert.Equal(t, errs.KindBadRequest, errs.KindOf(err))

		pending := newOrder(t)
		assert.NoError(t, f.env.Orders.Delete(ctx, pending.ID))
	})
}
