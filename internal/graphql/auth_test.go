package graphql

import (
	"context"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ButyrinIA/blog/internal/models"
)

func TestCompose_Order(t *testing.T) {
	var trace []string
	first := func(p graphql.ResolveParams, next resolverFn) (interface{}, error) {
		trace = append(trace, "first")
		return next(p)
	}
	second := func(p graphql.ResolveParams, next resolverFn) (interface{}, error) {
		trace = append(trace, "second")
		return next(p)
	}
	resolver := func(p graphql.ResolveParams) (interface{}, error) {
		trace = append(trace, "resolver")
		return "ok", nil
	}

	result, err := compose(first, second)(resolver)(graphql.ResolveParams{})
	assert.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, []string{"first", "second", "resolver"}, trace)
}

func TestCompose_ShortCircuit(t *testing.T) {
	deny := func(p graphql.ResolveParams, next resolverFn) (interface{}, error) {
		return nil, &AuthenticationError{Message: "Unauthorized! Token not provided!"}
	}
	called := false
	resolver := func(p graphql.ResolveParams) (interface{}, error) {
		called = true
		return nil, nil
	}

	result, err := compose(deny)(resolver)(graphql.ResolveParams{})
	assert.Nil(t, result)
	var authErr *AuthenticationError
	assert.ErrorAs(t, err, &authErr)
	assert.False(t, called)
}

func TestCompose_GuardExtendsContext(t *testing.T) {
	user := &models.User{ID: 1, Name: "Ana"}
	inject := func(p graphql.ResolveParams, next resolverFn) (interface{}, error) {
		p.Context = withAuthUser(p.Context, user)
		return next(p)
	}
	resolver := func(p graphql.ResolveParams) (interface{}, error) {
		return requireAuthUser(p.Context)
	}

	result, err := compose(inject)(resolver)(graphql.ResolveParams{Context: context.Background()})
	assert.NoError(t, err)
	assert.Equal(t, user, result)
}

func TestAuthGuard_Success(t *testing.T) {
	store := newMockStorage()
	store.users.On("FindByID", mock.Anything, int64(7), []string{"id", "email"}).Return(&models.User{ID: 7, Email: "ana@mail.com"}, nil)

	resolver := newTestResolver(store)
	token, err := resolver.Auth.GenerateToken(7)
	assert.NoError(t, err)

	p := graphql.ResolveParams{Context: WithToken(context.Background(), token)}
	result, err := resolver.authGuard(p, func(p graphql.ResolveParams) (interface{}, error) {
		authUser, err := requireAuthUser(p.Context)
		assert.NoError(t, err)
		return authUser.Email, nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "ana@mail.com", result)
	store.users.AssertExpectations(t)
}

func TestAuthGuard_NoToken(t *testing.T) {
	resolver := newTestResolver(newMockStorage())

	_, err := resolver.authGuard(graphql.ResolveParams{Context: context.Background()}, func(p graphql.ResolveParams) (interface{}, error) {
		t.Fatal("резолвер не должен вызываться без токена")
		return nil, nil
	})
	var authErr *AuthenticationError
	assert.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Unauthorized! Token not provided!", err.Error())
}

func TestAuthGuard_InvalidToken(t *testing.T) {
	resolver := newTestResolver(newMockStorage())

	p := graphql.ResolveParams{Context: WithToken(context.Background(), "not-a-jwt")}
	_, err := resolver.authGuard(p, func(p graphql.ResolveParams) (interface{}, error) {
		t.Fatal("резолвер не должен вызываться с невалидным токеном")
		return nil, nil
	})
	var authErr *AuthenticationError
	assert.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Unauthorized! Invalid token!", err.Error())
}

func TestAuthGuard_UnknownUser(t *testing.T) {
	store := newMockStorage()
	store.users.On("FindByID", mock.Anything, int64(7), []string{"id", "email"}).Return(nil, nil)

	resolver := newTestResolver(store)
	token, err := resolver.Auth.GenerateToken(7)
	assert.NoError(t, err)

	p := graphql.ResolveParams{Context: WithToken(context.Background(), token)}
	_, err = resolver.authGuard(p, func(p graphql.ResolveParams) (interface{}, error) {
		return "должно быть недостижимо", nil
	})
	var authErr *AuthenticationError
	assert.ErrorAs(t, err, &authErr)
}
