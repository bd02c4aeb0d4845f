package biz

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"github.com/mbgplatform/mbg/internal/errs"
	"github.com/mbgplatform/mbg/internal/store"
)

type FinanceServiceParams struct {
	fx.In

	Store *store.Store
	Audit *AuditService
}

func NewFinanceService(params FinanceServiceParams) *FinanceService {
	return &FinanceService{
		AbstractService: &AbstractService{store: params.Store},
		audit:           params.Audit,
	}
}

type FinanceService struct {
	*AbstractService

	audit *AuditService
}

type CreateFinancialRecordInput struct {
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	RecordedAt  *time.Time      `json:"recorded_at,omitempty"`
}

func (s *FinanceService) Create(ctx context.Context, in CreateFinancialRecordInput) (*store.FinancialRecord, error) {
	recordType := store.FinancialRecordType(strings.ToUpper(strings.TrimSpace(in.Type)))
	if recordType != store.FinancialRecordIncome && recordType != store.FinancialRecordExpense {
		return nil, errs.BadRequest("type must be INCOME or EXPENSE")
	}

	if !in.Amount.IsPositive() {
		return nil, errs.BadRequest("amount must be positive")
	}

	record := &store.FinancialRecord{
		Type:        recordType,
		Category:    in.Category,
		Amount:      in.Amount,
		Description: in.Description,
	}

	if in.RecordedAt != nil {
		record.RecordedAt = *in.RecordedAt
	}

	if err := s.store.Finances.Create(ctx, record); err != nil {
		return nil, errs.Unexpected(err)
	}

	s.audit.Record(ctx, Entry{
		Action:       "FINANCE_RECORD_CREATE",
		ResourceType: "FINANCIAL_RECORD",
		ResourceID:   &record.ID,
		Details:      map[string]any{"type": record.Type, "amount": record.Amount},
	})

	return record, nil
}

func (s *FinanceService) Get(ctx context.Context, id uuid.UUID) (*store.FinancialRecord, error) {
	record, err := s.store.Finances.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "financial record", "")
	}

	return record, nil
}

// List returns records inside the period, newest first.
func (s *FinanceService) List(ctx context.Context, from, to *time.Time, params store.ListParams) ([]*store.FinancialRecord, int64, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, 0, errs.BadRequest("period start is after period end")
	}

	records, total, err := s.store.Finances.List(ctx, from, to, params)
	if err != nil {
		return nil, 0, errs.Unexpected(err)
	}

	return records, total, nil
}
