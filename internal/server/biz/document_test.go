package biz

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbgplatform/mbg/internal/authz"
	"github.com/mbgplatform/mbg/internal/errs"
	"github.com/mbgplatform/mbg/internal/scopes"
	"github.com/mbgplatform/mbg/internal/store"
)

func TestDocumentReviewFlow(t *testing.T) {
	env := newTestEnv(t)

	submitter := uuid.New()
	reviewer := uuid.New()
	submitCtx := authz.NewUserContext(context.Background(), submitter, scopes.RoleSchoolAdmin)
	reviewCtx := authz.NewUserContext(context.Background(), reviewer, scopes.RoleGovernanceAdmin)

	doc, err := env.Documents.Submit(submitCtx, SubmitDocumentInput{Title: "Kitchen inspection", DocType: "INSPECTION"})
	require.NoError(t, err)
	assert.Equal(t, store.DocumentStatusPending, doc.Status)
	assert.Equal(t, submitter, doc.SubmittedBy)

	t.Run("empty title", func(t *testing.T) {
		_, err := env.Documents.Submit(submitCtx, SubmitDocumentInput{Title: "  "})
		require.Error(t, err)
		assert.Equal(t, errs.KindBadRequest, errs.KindOf(err))
	})

	t.Run("approve", func(t *testing.T) {
		reviewed, err := env.Documents.Review(reviewCtx, doc.ID, true, "all good")
		require.NoError(t, err)
		assert.Equal(t, store.DocumentStatusApproved, reviewed.Status)
		require.NotNil(t, reviewed.ReviewedBy)
		assert.Equal(t, reviewer, *reviewed.ReviewedBy)
	})

	t.Run("settled documents cannot be re-reviewed", func(t *testing.T) {
		_, err := env.Documents.Review(reviewCtx, doc.ID, false, "changed my mind")
		require.Error(t, err)
		assert.Equal(t, errs.KindBadRequest, errs.KindOf(err))
	})

	t.Run("reject", func(t *testing.T) {
		other, err := env.Documents.Submit(submitCtx, SubmitDocumentInput{Title: "Budget plan"})
		require.NoError(t, err)

		rejected, err := env.Documents.Review(reviewCtx, other.ID, false, "missing figures")
		require.NoError(t, err)
		assert.Equal(t, store.DocumentStatusRejected, rejected.Status)
		assert.Equal(t, "missing figures", rejected.ReviewNote)
	})
}

func TestFinanceRecords(t *testing.T) {
	env := newTestEnv(t)
	ctx := systemCtx()

	t.Run("type must be income or expense", func(t *testing.T) {
		_, err := env.Finance.Create(ctx, CreateFinancialRecordInput{
			Type:   "LOAN",
			Amount: decimal.RequireFromString("10"),
		})
		require.Error(t, err)
		assert.Equal(t, errs.KindBadRequest, errs.KindOf(err))
	})

	t.Run("amount must be positive", func(t *testing.T) {
		_, err := env.Finance.Create(ctx, CreateFinancialRecordInput{
			Type:   "INCOME",
			Amount: decimal.Zero,
		})
		require.Error(t, err)
		assert.Equal(t, errs.KindBadRequest, errs.KindOf(err))
	})

	t.Run("period listing", func(t *testing.T) {
		old := time.Now().AddDate(0, -2, 0)
		_, err := env.Finance.Create(ctx, CreateFinancialRecordInput{
			Type:       "EXPENSE",
			Category:   "CATERING",
			Amount:     decimal.RequireFromString("150.00"),
			RecordedAt: &old,
		})
		require.NoError(t, err)

		_, err = env.Finance.Create(ctx, CreateFinancialRecordInput{
			Type:     "income",
			Category: "SUBSIDY",
			Amount:   decimal.RequireFromString("900.00"),
		})
		require.NoError(t, err)

		from := time.Now().AddDate(0, -1, 0)
		records, total, err := env.Finance.List(ctx, &from, nil, store.ListParams{})
		require.NoError(t, err)
		require.EqualValues(t, 1, total)
		assert.Equal(t, store.FinancialRecordIncome, records[0].Type)
	})

	t.Run("inverted period", func(t *testing.T) {
		from := time.Now()
		to := from.AddDate(0, 0, -1)
		_, _, err := env.Finance.List(ctx, &from, &to, store.ListParams{})
		require.Error(t, err)
		assert.Equal(t, errs.KindBadRequest, errs.KindOf(err))
	})
}
