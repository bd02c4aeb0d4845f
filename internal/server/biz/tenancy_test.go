package biz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbgplatform/mbg/internal/contexts"
	"github.com/mbgplatform/mbg/internal/errs"
	"github.com/mbgplatform/mbg/internal/store"
)

// Tenant isolation: with an ambient organization in scope, reads are
// filtered to that organization and cross-tenant point reads fail as not
// found.
func TestTenantIsolation(t *testing.T) {
	env := newTestEnv(t)

	orgA := mustOrg(t, env, "ALPHA", 5)
	orgB := mustOrg(t, env, "BETA", 5)

	ctxA := contexts.WithOrganizationID(systemCtx(), orgA.ID)
	ctxB := contexts.WithOrganizationID(systemCtx(), orgB.ID)

	schoolA, err := env.Schools.Create(ctxA, CreateSchoolInput{Name: "Alpha Primary"})
	require.NoError(t, err)
	require.Equal(t, orgA.ID, schoolA.OrganizationID)

	schoolB, err := env.Schools.Create(ctxB, CreateSchoolInput{Name: "Beta Primary"})
	require.NoError(t, err)
	require.Equal(t, orgB.ID, schoolB.OrganizationID)

	t.Run("lists are scoped to the ambient organization", func(t *testing.T) {
		schools, total, err := env.Schools.List(ctxA, store.ListParams{})
		require.NoError(t, err)
		require.EqualValues(t, 1, total)
		assert.Equal(t, schoolA.ID, schools[0].ID)
	})

	t.Run("cross-tenant reads are not found", func(t *testing.T) {
		_, err := env.Schools.Get(ctxA, schoolB.ID)
		require.Error(t, err)
		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	})

	t.Run("platform scope sees everything", func(t *testing.T) {
		_, total, err := env.Schools.List(systemCtx(), store.ListParams{})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
	})

	t.Run("cross-tenant references fail on create", func(t *testing.T) {
		// A student in org A cannot point at a school in org B.
		_, err := env.Students.Create(ctxA, CreateStudentInput{
			SchoolID: schoolB.ID,
			Name:     "Lost Child",
		})
		require.Error(t, err)
		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	})
}

func TestBranchScopeNarrowsLists(t *testing.T) {
	env := newTestEnv(t)

	org := mustOrg(t, env, "BRNCH", 5)
	orgCtx := contexts.WithOrganizationID(systemCtx(), org.ID)

	branch, err := env.Branches.Create(orgCtx, CreateBranchInput{
		OrganizationID: org.ID,
		Code:           "B1",
		Name:           "First",
	})
	require.NoError(t, err)

	branchCtx := contexts.WithBranchID(contexts.WithOrganizationID(systemCtx(), org.ID), branch.ID)

	_, err = env.Schools.Create(branchCtx, CreateSchoolInput{Name: "Branch School"})
	require.NoError(t, err)

	_, err = env.Schools.Create(orgCtx, CreateSchoolInput{Name: "Org-wide School"})
	require.NoError(t, err)

	t.Run("branch scope sees only its schools", func(t *testing.T) {
		schools, total, err := env.Schools.List(branchCtx, store.ListParams{})
		require.NoError(t, err)
		require.EqualValues(t, 1, total)
		require.NotNil(t, schools[0].BranchID)
		assert.Equal(t, branch.ID, *schools[0].BranchID)
	})

	t.Run("organization scope sees both", func(t *testing.T) {
		_, total, err := env.Schools.List(orgCtx, store.ListParams{})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
	})
}

func TestGovernanceDashboard(t *testing.T) {
	env := newTestEnv(t)

	org := mustOrg(t, env, "DASH", 5)
	ctx := contexts.WithOrganizationID(systemCtx(), org.ID)

	_, err := env.Schools.Create(ctx, CreateSchoolInput{Name: "Dash Primary"})
	require.NoError(t, err)

	_, err = env.Documents.Submit(systemCtx(), SubmitDocumentInput{Title: "Hygiene report"})
	// Submit requires a user principal; system has no user id.
	require.Error(t, err)

	dashboard, err := env.Governance.GetDashboard(systemCtx())
	require.NoError(t, err)
	assert.EqualValues(t, 1, dashboard.TotalSchools)
	assert.EqualValues(t, 0, dashboard.PendingDocuments)
}
