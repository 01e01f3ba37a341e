package graphql

import (
	"context"

	"github.com/ButyrinIA/blog/internal/models"
)

type contextKey string

const (
	tokenContextKey    contextKey = "token"
	authUserContextKey contextKey = "authUser"
	loadersContextKey  contextKey = "loaders"
)

// WithToken кладет bearer-токен запроса в контекст; вызывается HTTP-слоем
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

func tokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey).(string)
	return token, ok
}

func withAuthUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, authUserContextKey, user)
}

func authUserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(authUserContextKey).(*models.User)
	return user, ok
}

// requireAuthUser возвращает пользователя, положенного в контекст authGuard;
// отсутствие означает, что операция вызвана в обход цепочки guard-функций
func requireAuthUser(ctx context.Context) (*models.User, error) {
	user, ok := authUserFromContext(ctx)
	if !ok {
		return nil, &AuthenticationError{Message: "Unauthorized! Token not provided!"}
	}
	return user, nil
}
