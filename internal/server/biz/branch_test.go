package biz

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbgplatform/mbg/internal/errs"
)

func TestBranchCreate(t *testing.T) {
	env := newTestEnv(t)
	ctx := systemCtx()

	org := mustOrg(t, env, "ACME", 3)

	t.Run("success", func(t *testing.T) {
		branch, err := env.Branches.Create(ctx, CreateBranchInput{
			OrganizationID: org.ID,
			Code:           "hq",
			Name:           "Headquarters",
			IsHeadquarters: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "HQ", branch.Code)
		assert.Equal(t, org.ID, branch.OrganizationID)
	})

	t.Run("duplicate code in organization conflicts", func(t *testing.T) {
		_, err := env.Branches.Create(ctx, CreateBranchInput{
			OrganizationID: org.ID,
			Code:           "HQ",
			Name:           "Duplicate",
		})
		require.Error(t, err)
		assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	})

	t.Run("same code in another organization is fine", func(t *testing.T) {
		other := mustOrg(t, env, "OTHER", 3)

		_, err := env.Branches.Create(ctx, CreateBranchInput{
			OrganizationID: other.ID,
			Code:           "HQ",
			Name:           "Other HQ",
		})
		assert.NoError(t, err)
	})

	t.Run("unknown organization", func(t *testing.T) {
		_, err := env.Branches.Create(ctx, CreateBranchInput{
			OrganizationID: uuid.New(),
			Code:           "X",
			Name:           "Nowhere",
		})
		require.Error(t, err)
		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	})

	t.Run("unknown manager", func(t *testing.T) {
		managerID := uuid.New()
		_, err := env.Branches.Create(ctx, CreateBranchInput{
			OrganizationID: org.ID,
			Code:           "MGR",
			Name:           "Managed",
			ManagerID:      &managerID,
		})
		require.Error(t, err)
		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	})
}

func TestBranchQuota(t *testing.T) {
	env := newTestEnv(t)
	ctx := systemCtx()

	org := mustOrg(t, env, "SMALL", 2)

	for i := 0; i < 2; i++ {
		_, err := env.Branches.Create(ctx, CreateBranchInput{
			OrganizationID: org.ID,
			Code:           fmt.Sprintf("B%d", i),
			Name:           fmt.Sprintf("Branch %d", i),
		})
		require.NoError(t, err)
	}

	_, err := env.Branches.Create(ctx, CreateBranchInput{
		OrganizationID: org.ID,
		Code:           "OVER",
		Name:           "Over quota",
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindBadRequest, errs.KindOf(err))
}

func TestBranchQuotaUnderConcurrency(t *testing.T) {
	env := newTestEnv(t)
	ctx := systemCtx()

	const quota = 3

	org := mustOrg(t, env, "RACE", quota)

	var wg sync.WaitGroup

	errCh := make(chan error, 10)

	for i := 0; i < 10; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			_, err := env.Branches.Create(ctx, CreateBranchInput{
				OrganizationID: org.ID,
				Code:           fmt.Sprintf("C%d", i),
				Name:           fmt.Sprintf("Concurrent %d", i),
			})
			errCh <- err
		}(i)
	}

	wg.Wait()
	close(errCh)

	var created int
	for err := range errCh {
		if err == nil {
			created++
		}
	}

	assert.Equal(t, quota, created)

	count, err := env.Store.Branches.CountByOrganization(ctx, org.ID)
	require.NoError(t, err)
	assert.EqualValues(t, quota, count)
}

func TestBranchUpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := systemCtx()

	org := mustOrg(t, env, "UPD", 5)

	branch, err := env.Branches.Create(ctx, CreateBranchInput{
		OrganizationID: org.ID,
		Code:           "B1",
		Name:           "Old name",
	})
	require.NoError(t, err)

	name := "New name"
	updated, err := env.Branches.Update(ctx, branch.ID, UpdateBranchInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "New name", updated.Name)

	require.NoError(t, env.Branches.Delete(ctx, branch.ID))

	_, err = env.Branches.Get(ctx, branch.ID)
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}
