package biz

import (
	"errors"

	"github.com/mbgplatform/mbg/internal/errs"
	"github.com/mbgplatform/mbg/internal/store"
)

// AbstractService is embedded by every service and carries the shared
// repository bundle.
type AbstractService struct {
	store *store.Store
}

// Store exposes the repository bundle (used by the seeding entrypoint).
func (a *AbstractService) Store() *store.Store {
	return a.store
}

// storeErr maps store sentinels onto the error taxonomy. resource names the
// entity for not-found messages; conflictMsg explains the uniqueness clash.
func storeErr(err error, resource, conflictMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return errs.NotFound(resource)
	case errors.Is(err, store.ErrConflict):
		return errs.Conflict(conflictMsg)
	default:
		return errs.Unexpected(err)
	}
}
