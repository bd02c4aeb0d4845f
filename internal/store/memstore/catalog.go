package memstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mbgplatform/mbg/internal/store"
)

type schoolRepo struct {
	d *data
}

func (r *schoolRepo) Create(ctx context.Context, school *store.School) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	ensureID(&school.ID)
	defaultTenant(ctx, &school.OrganizationID, &school.BranchID)
	stamp(&school.CreatedAt, &school.UpdatedAt)
	r.d.schools[school.ID] = clone(school)

	return nil
}

func (r *schoolRepo) GetByID(ctx context.Context, id uuid.UUID) (*store.School, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	school, ok := r.d.schools[id]
	if !ok || !orgVisible(ctx, school.OrganizationID) {
		return nil, store.ErrNotFound
	}

	return clone(school), nil
}

func (r *schoolRepo) List(ctx context.Context, params store.ListParams) ([]*store.School, int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var schools []*store.School
	for _, school := range r.d.schools {
		if orgVisible(ctx, school.OrganizationID) && branchVisible(ctx, school.BranchID) {
			schools = append(schools, clone(school))
		}
	}

	schools, total := page(schools, func(s *store.School) time.Time { return s.CreatedAt }, params)

	return schools, total, nil
}

func (r *schoolRepo) Update(_ context.Context, school *store.School) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	if _, ok := r.d.schools[school.ID]; !ok {
		return store.ErrNotFound
	}

	stamp(nil, &school.UpdatedAt)
	r.d.schools[school.ID] = clone(school)

	return nil
}

func (r *schoolRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	school, ok := r.d.schools[id]
	if !ok || !orgVisible(ctx, school.OrganizationID) {
		return store.ErrNotFound
	}

	delete(r.d.schools, id)

	return nil
}

func (r *schoolRepo) Count(ctx context.Context) (int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var total int64
	for _, school := range r.d.schools {
		if orgVisible(ctx, school.OrganizationID) {
			total++
		}
	}

	return total, nil
}

type studentRepo struct {
	d *data
}

func (r *studentRepo) Create(ctx context.Context, student *store.Student) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	ensureID(&student.ID)
	defaultTenant(ctx, &student.OrganizationID, &student.BranchID)
	stamp(&student.CreatedAt, &student.UpdatedAt)
	r.d.students[student.ID] = clone(student)

	return nil
}

func (r *studentRepo) GetByID(ctx context.Context, id uuid.UUID) (*store.Student, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	student, ok := r.d.students[id]
	if !ok || !orgVisible(ctx, student.OrganizationID) {
		return nil, store.ErrNotFound
	}

	return clone(student), nil
}

func (r *studentRepo) List(ctx context.Context, params store.ListParams) ([]*store.Student, int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var students []*store.Student
	for _, student := range r.d.students {
		if orgVisible(ctx, student.OrganizationID) && branchVisible(ctx, student.BranchID) {
			students = append(students, clone(student))
		}
	}

	students, total := page(students, func(s *store.Student) time.Time { return s.CreatedAt }, params)

	return students, total, nil
}

func (r *studentRepo) Update(_ context.Context, student *store.Student) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	if _, ok := r.d.students[student.ID]; !ok {
		return store.ErrNotFound
	}

	stamp(nil, &student.UpdatedAt)
	r.d.students[student.ID] = clone(student)

	return nil
}

func (r *studentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	student, ok := r.d.students[id]
	if !ok || !orgVisible(ctx, student.OrganizationID) {
		return store.ErrNotFound
	}

	delete(r.d.students, id)

	return nil
}

func (r *studentRepo) Count(ctx context.Context) (int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var total int64
	for _, student := range r.d.students {
		if orgVisible(ctx, student.OrganizationID) {
			total++
		}
	}

	return total, nil
}

type mealRepo struct {
	d *data
}

func (r *mealRepo) Create(ctx context.Context, meal *store.Meal) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	ensureID(&meal.ID)
	defaultTenant(ctx, &meal.OrganizationID, nil)
	stamp(&meal.CreatedAt, &meal.UpdatedAt)
	r.d.meals[meal.ID] = clone(meal)

	return nil
}

func (r *mealRepo) GetByID(ctx context.Context, id uuid.UUID) (*store.Meal, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	meal, ok := r.d.meals[id]
	if !ok || !orgVisible(ctx, meal.OrganizationID) {
		return nil, store.ErrNotFound
	}

	return clone(meal), nil
}

func (r *mealRepo) List(ctx context.Context, params store.ListParams) ([]*store.Meal, int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var meals []*store.Meal
	for _, meal := range r.d.meals {
		if orgVisible(ctx, meal.OrganizationID) {
			meals = append(meals, clone(meal))
		}
	}

	meals, total := page(meals, func(m *store.Meal) time.Time { return m.CreatedAt }, params)

	return meals, total, nil
}

func (r *mealRepo) Update(_ context.Context, meal *store.Meal) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	if _, ok := r.d.meals[meal.ID]; !ok {
		return store.ErrNotFound
	}

	stamp(nil, &meal.UpdatedAt)
	r.d.meals[meal.ID] = clone(meal)

	return nil
}

func (r *mealRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	meal, ok := r.d.meals[id]
	if !ok || !orgVisible(ctx, meal.OrganizationID) {
		return store.ErrNotFound
	}

	delete(r.d.meals, id)

	return nil
}

func (r *mealRepo) Count(ctx context.Context) (int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var total int64
	for _, meal := range r.d.meals {
		if orgVisible(ctx, meal.OrganizationID) {
			total++
		}
	}

	return total, nil
}

type supplierRepo struct {
	d *data
}

func (r *supplierRepo) Create(ctx context.Context, supplier *store.Supplier) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	ensureID(&supplier.ID)
	defaultTenant(ctx, &supplier.OrganizationID, nil)
	stamp(&supplier.CreatedAt, &supplier.UpdatedAt)
	r.d.suppliers[supplier.ID] = clone(supplier)

	return nil
}

func (r *supplierRepo) GetByID(ctx context.Context, id uuid.UUID) (*store.Supplier, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	supplier, ok := r.d.suppliers[id]
	if !ok || !orgVisible(ctx, supplier.OrganizationID) {
		return nil, store.ErrNotFound
	}

	return clone(supplier), nil
}

func (r *supplierRepo) List(ctx context.Context, params store.ListParams) ([]*store.Supplier, int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var suppliers []*store.Supplier
	for _, supplier := range r.d.suppliers {
		if orgVisible(ctx, supplier.OrganizationID) {
			suppliers = append(suppliers, clone(supplier))
		}
	}

	suppliers, total := page(suppliers, func(s *store.Supplier) time.Time { return s.CreatedAt }, params)

	return suppliers, total, nil
}

func (r *supplierRepo) Update(_ context.Context, supplier *store.Supplier) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	if _, ok := r.d.suppliers[supplier.ID]; !ok {
		return store.ErrNotFound
	}

	stamp(nil, &supplier.UpdatedAt)
	r.d.suppliers[supplier.ID] = clone(supplier)

	return nil
}

func (r *supplierRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	supplier, ok := r.d.suppliers[id]
	if !ok || !orgVisible(ctx, supplier.OrganizationID) {
		return store.ErrNotFound
	}

	delete(r.d.suppliers, id)

	return nil
}

func (r *supplierRepo) Count(ctx context.Context) (int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var total int64
	for _, supplier := range r.d.suppliers {
		if orgVisible(ctx, supplier.OrganizationID) {
			total++
		}
	}

	return total, nil
}

type orderRepo struct {
	d *data
}

func (r *orderRepo) Create(ctx context.Context, order *store.Order) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	ensureID(&order.ID)
	defaultTenant(ctx, &order.OrganizationID, &order.BranchID)
	stamp(&order.CreatedAt, &order.UpdatedAt)
	r.d.orders[order.ID] = clone(order)

	return nil
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*store.Order, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	order, ok := r.d.orders[id]
	if !ok || !orgVisible(ctx, order.OrganizationID) {
		return nil, store.ErrNotFound
	}

	return clone(order), nil
}

func (r *orderRepo) List(ctx context.Context, params store.ListParams) ([]*store.Order, int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var orders []*store.Order
	for _, order := range r.d.orders {
		if orgVisible(ctx, order.OrganizationID) && branchVisible(ctx, order.BranchID) {
			orders = append(orders, clone(order))
		}
	}

	orders, total := page(orders, func(o *store.Order) time.Time { return o.CreatedAt }, params)

	return orders, total, nil
}

func (r *orderRepo) Update(_ context.Context, order *store.Order) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	if _, ok := r.d.orders[order.ID]; !ok {
		return store.ErrNotFound
	}

	stamp(nil, &order.UpdatedAt)
	r.d.orders[order.ID] = clone(order)

	return nil
}

func (r *orderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	order, ok := r.d.orders[id]
	if !ok || !orgVisible(ctx, order.OrganizationID) {
		return store.ErrNotFound
	}

	delete(r.d.orders, id)

	return nil
}

func (r *orderRepo) Count(ctx context.Context) (int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var total int64
	for _, order := range r.d.orders {
		if orgVisible(ctx, order.OrganizationID) {
			total++
		}
	}

	return total, nil
}

type documentRepo struct {
	d *data
}

func (r *documentRepo) Create(ctx context.Context, doc *store.Document) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	ensureID(&doc.ID)
	defaultTenant(ctx, &doc.OrganizationID, nil)
	stamp(&doc.CreatedAt, &doc.UpdatedAt)
	r.d.documents[doc.ID] = clone(doc)

	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, id uuid.UUID) (*store.Document, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	doc, ok := r.d.documents[id]
	if !ok || !orgVisible(ctx, doc.OrganizationID) {
		return nil, store.ErrNotFound
	}

	return clone(doc), nil
}

func (r *documentRepo) List(ctx context.Context, params store.ListParams) ([]*store.Document, int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var docs []*store.Document
	for _, doc := range r.d.documents {
		if orgVisible(ctx, doc.OrganizationID) {
			docs = append(docs, clone(doc))
		}
	}

	docs, total := page(docs, func(d *store.Document) time.Time { return d.CreatedAt }, params)

	return docs, total, nil
}

func (r *documentRepo) Update(_ context.Context, doc *store.Document) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	if _, ok := r.d.documents[doc.ID]; !ok {
		return store.ErrNotFound
	}

	stamp(nil, &doc.UpdatedAt)
	r.d.documents[doc.ID] = clone(doc)

	return nil
}

func (r *documentRepo) CountByStatus(ctx context.Context, status store.DocumentStatus) (int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var total int64
	for _, doc := range r.d.documents {
		if doc.Status == status && orgVisible(ctx, doc.OrganizationID) {
			total++
		}
	}

	return total, nil
}

type financialRecordRepo struct {
	d *data
}

func (r *financialRecordRepo) Create(ctx context.Context, record *store.FinancialRecord) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	ensureID(&record.ID)
	defaultTenant(ctx, &record.OrganizationID, &record.BranchID)
	stamp(&record.CreatedAt, nil)

	if record.RecordedAt.IsZero() {
		record.RecordedAt = time.Now()
	}

	r.d.finances[record.ID] = clone(record)

	return nil
}

func (r *financialRecordRepo) GetByID(ctx context.Context, id uuid.UUID) (*store.FinancialRecord, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	record, ok := r.d.finances[id]
	if !ok || !orgVisible(ctx, record.OrganizationID) {
		return nil, store.ErrNotFound
	}

	return clone(record), nil
}

func (r *financialRecordRepo) List(ctx context.Context, from, to *time.Time, params store.ListParams) ([]*store.FinancialRecord, int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var records []*store.FinancialRecord
	for _, record := range r.d.finances {
		if !orgVisible(ctx, record.OrganizationID) || !branchVisible(ctx, record.BranchID) {
			continue
		}

		if from != nil && record.RecordedAt.Before(*from) {
			continue
		}

		if to != nil && record.RecordedAt.After(*to) {
			continue
		}

		records = append(records, clone(record))
	}

	records, total := page(records, func(f *store.FinancialRecord) time.Time { return f.RecordedAt }, params)

	return records, total, nil
}
