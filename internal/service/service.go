// Package service contains the portal's business logic: article lifecycle,
// catalog management, listing, authentication and search. Services sit
// between the API layer and the store and own all permission checks.
package service

import (
	"errors"

	domainerrors "github.com/f246632/rijeka-online/internal/errors"
	"github.com/f246632/rijeka-online/internal/store"
)

// mapStoreErr translates store sentinels into domain errors so handlers
// only ever deal with the domain error taxonomy.
func mapStoreErr(err error, notFoundMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return domainerrors.NotFound(notFoundMsg)
	case errors.Is(err, store.ErrConflict):
		return domainerrors.Conflict("the record was modified concurrently")
	case errors.Is(err, store.ErrUnavailable):
		return domainerrors.StorageUnavailable(err)
	default:
		return err
	}
}

// Per-entity shorthands so call sites name the record, not a message.
func mapArticleErr(err error) error  { return mapStoreErr(err, "article not found") }
func mapCategoryErr(err error) error { return mapStoreErr(err, "category not found") }
func mapTagErr(err error) error      { return mapStoreErr(err, "tag not found") }
func mapUserErr(err error) error     { return mapStoreErr(err, "user not found") }
func mapSessionErr(err error) error  { return mapStoreErr(err, "session not found") }
