package authnz

import (
	"context"

	"github.com/uswitch/typearchive/pkg/middleware"
)

type contextKey string

const UserContextKey contextKey = "authnz-user"

type Authenticator interface {
	middleware.Middleware
}

func WithUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

func UserFromContext(ctx context.Context) (string, bool) {
	user, ok := ctx.Value(UserContextKey).(string)
	return user, ok && user != ""
}
