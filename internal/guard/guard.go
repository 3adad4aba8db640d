// Package guard resolves request identity and record ownership. Guards are
// plain functions composed inside handlers: each takes what it needs as an
// explicit argument instead of relying on call-order side effects.
package guard

import (
	"context"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"WebStarter/internal/apierr"
	"WebStarter/internal/middleware"
	"WebStarter/internal/model"
)

// UserFinder is the identity lookup the guards need from the user layer.
type UserFinder interface {
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
}

// Owned is any record with an immutable owning user.
type Owned interface {
	OwnerID() int64
}

// Identity resolves the session user id from the context into a full account.
// Fails 401 when the request carries no session and 404 when the session
// references an account that no longer exists.
func Identity(ctx context.Context, users UserFinder) (*model.User, error) {
	uid, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, apierr.New("login required", http.StatusUnauthorized, apierr.CodeLoginRequired)
	}
	user, err := users.GetUserByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.New("user no longer exists", http.StatusNotFound, apierr.CodeNotFound)
		}
		return nil, err
	}
	return user, nil
}

// ResolveOwned loads the record with the given id and checks that identity owns
// it. A nil identity is a programming error — the identity guard must run
// first — and is reported as a 500 rather than silently treated as anonymous.
func ResolveOwned[T Owned](ctx context.Context, identity *model.User, id int64, find func(context.Context, int64) (T, error)) (T, error) {
	var zero T

	if identity == nil {
		return zero, apierr.New("identity not resolved", http.StatusInternalServerError, apierr.CodeInvalidParams)
	}
	if id == 0 {
		return zero, apierr.New("missing resource id", http.StatusBadRequest, apierr.CodeInvalidParams)
	}

	rec, err := find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, apierr.New("resource not found", http.StatusNotFound, apierr.CodeNotFound)
		}
		return zero, err
	}
	if rec.OwnerID() != identity.ID {
		return zero, apierr.New("cannot operate on another user's resource", http.StatusForbidden, apierr.CodeForbidden)
	}
	return rec, nil
}
