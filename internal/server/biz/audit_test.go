package biz

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbgplatform/mbg/internal/authz"
	"github.com/mbgplatform/mbg/internal/scopes"
	"github.com/mbgplatform/mbg/internal/store"
	"github.com/mbgplatform/mbg/internal/store/memstore"
)

// failingAuditRepo simulates a broken trail backend.
type failingAuditRepo struct {
	store.AuditLogRepo
}

func (f *failingAuditRepo) Create(context.Context, *store.AuditLog) error {
	return errors.New("disk full")
}

func TestAuditRecordSwallowsFailures(t *testing.T) {
	s := memstore.New()
	require.NoError(t, store.Seed(systemCtx(), s))

	s.AuditLogs = &failingAuditRepo{AuditLogRepo: s.AuditLogs}
	env := newTestEnvWithStore(t, s)

	// The business operation must succeed even though every audit write
	// fails.
	org, err := env.Orgs.Create(systemCtx(), CreateOrganizationInput{Code: "ACME", Name: "Acme"})
	require.NoError(t, err)
	require.NotNil(t, org)

	fetched, err := env.Orgs.Get(systemCtx(), org.ID)
	require.NoError(t, err)
	assert.Equal(t, "ACME", fetched.Code)
}

func TestAuditRecordCapturesActor(t *testing.T) {
	env := newTestEnv(t)

	userID := uuid.New()
	ctx := authz.NewUserContext(context.Background(), userID, scopes.RoleOrgAdmin)

	env.Audit.Record(ctx, Entry{Action: "SCHOOL_CREATE", ResourceType: "SCHOOL"})

	entries, total, err := env.Audit.List(systemCtx(), store.AuditFilter{}, store.ListParams{})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.NotNil(t, entries[0].UserID)
	assert.Equal(t, userID, *entries[0].UserID)
}

func TestAuditListFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := systemCtx()

	actorA := uuid.New()
	actorB := uuid.New()

	env.Audit.Record(ctx, Entry{Action: "ORDER_CREATE", ResourceType: "ORDER", ActorID: &actorA})
	env.Audit.Record(ctx, Entry{Action: "ORDER_DELETE", ResourceType: "ORDER", ActorID: &actorA})
	env.Audit.Record(ctx, Entry{Action: "MEAL_CREATE", ResourceType: "MEAL", ActorID: &actorB})

	t.Run("by actor", func(t *testing.T) {
		entries, total, err := env.Audit.List(ctx, store.AuditFilter{UserID: &actorA}, store.ListParams{})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Len(t, entries, 2)
	})

	t.Run("by resource type", func(t *testing.T) {
		_, total, err := env.Audit.List(ctx, store.AuditFilter{ResourceType: "MEAL"}, store.ListParams{})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
	})

	t.Run("by window", func(t *testing.T) {
		future := time.Now().Add(time.Hour)
		_, total, err := env.Audit.List(ctx, store.AuditFilter{From: &future}, store.ListParams{})
		require.NoError(t, err)
		assert.EqualValues(t, 0, total)
	})
}

func TestAuditAnalytics(t *testing.T) {
	env := newTestEnv(t)
	ctx := systemCtx()

	actor := uuid.New()
	env.Audit.Record(ctx, Entry{Action: "ORDER_CREATE", ResourceType: "ORDER", ActorID: &actor})
	env.Audit.Record(ctx, Entry{Action: "ORDER_CREATE", ResourceType: "ORDER", ActorID: &actor})
	env.Audit.Record(ctx, Entry{Action: "MEAL_CREATE", ResourceType: "MEAL"})

	analytics, err := env.Audit.Analytics(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 3, analytics.TotalActions)
	assert.EqualValues(t, 2, analytics.ActionsByType["ORDER_CREATE"])
	assert.EqualValues(t, 1, analytics.ActionsByType["MEAL_CREATE"])
	assert.EqualValues(t, 2, analytics.ActionsByResource["ORDER"])
	assert.EqualValues(t, 2, analytics.ActionsByActor[actor.String()])
	assert.EqualValues(t, 1, analytics.ActionsByActor["system"])
	assert.EqualValues(t, 3, analytics.ActionsPerDay[time.Now().Format("2006-01-02")])
}

func TestAuditSurvivesBusinessFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := systemCtx()

	org := mustOrg(t, env, "TRAIL", 1)

	_, err := env.Branches.Create(ctx, CreateBranchInput{OrganizationID: org.ID, Code: "B1", Name: "First"})
	require.NoError(t, err)

	// Second create trips the quota; the earlier audit rows must remain.
	_, err = env.Branches.Create(ctx, CreateBranchInput{OrganizationID: org.ID, Code: "B2", Name: "Second"})
	require.Error(t, err)

	_, total, err := env.Audit.List(ctx, store.AuditFilter{ResourceType: "BRANCH"}, store.ListParams{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}
