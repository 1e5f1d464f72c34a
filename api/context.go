package api

import (
	"context"
	"errors"

	"github.com/akdeniz-handel/catalog-backend/models"
)

type keyType string

const (
	userKey keyType = "user"
)

// ctxWithUser adds the authenticated user to the context
func ctxWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// ctxGetUser retrieves the authenticated user from the context
func ctxGetUser(ctx context.Context) (*models.User, error) {
	ctxValue := ctx.Value(userKey)
	if ctxValue == nil {
		return nil, errors.New("user not found in context")
	}
	user, ok := ctxValue.(*models.User)
	if !ok {
		return nil, errors.New("context value is not of type `*models.User`")
	}
	return user, nil
}

// ctxUserOrNil is for endpoints where authentication is optional.
func ctxUserOrNil(ctx context.Context) *models.User {
	user, err := ctxGetUser(ctx)
	if err != nil {
		return nil
	}
	return user
}
