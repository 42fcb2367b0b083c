package auth

import (
	"context"

	"github.com/pkg/errors"
)

const (
	XUserNameHeader = "X-User-Name"
	XUserRoleHeader = "X-User-Role"
)

type ctxKey int

const (
	userNameKey ctxKey = iota + 1
	userRoleKey
)

var ErrNoCredentials = errors.New("no credentials in context")

func SetAuthContext(ctx context.Context, userName, role string) context.Context {
	ctx = context.WithValue(ctx, userNameKey, userName)
	return context.WithValue(ctx, userRoleKey, role)
}

// GetCredentials returns the username and role the caller claimed.
func GetCredentials(ctx context.Context) (userName, role string, err error) {
	userName, _ = ctx.Value(userNameKey).(string)
	role, _ = ctx.Value(userRoleKey).(string)
	if userName == "" || role == "" {
		return "", "", ErrNoCredentials
	}
	return userName, role, nil
}
