package graphql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ButyrinIA/blog/internal/models"
)

func TestLoadUser_BatchesSiblingLookups(t *testing.T) {
	store := newMockStorage()
	store.users.On("FindByIDs", mock.Anything, mock.MatchedBy(func(ids []int64) bool {
		return len(ids) == 2
	}), userLoaderFields).Return([]*models.User{
		{ID: 1, Name: "Ana"},
		{ID: 2, Name: "Иван"},
	}, nil).Once()

	resolver := newTestResolver(store)
	ctx := resolver.WithLoaders(context.Background())
	loaders, ok := loadersFromContext(ctx)
	assert.True(t, ok)

	// оба thunk-а создаются до первого вызова, батчер собирает их в один запрос
	firstThunk := loaders.Users.Load(ctx, int64(1))
	secondThunk := loaders.Users.Load(ctx, int64(2))

	first, err := firstThunk()
	assert.NoError(t, err)
	assert.Equal(t, "Ana", first.Name)

	second, err := secondThunk()
	assert.NoError(t, err)
	assert.Equal(t, "Иван", second.Name)

	store.users.AssertNumberOfCalls(t, "FindByIDs", 1)
}

func TestLoadUser_MissingKey(t *testing.T) {
	store := newMockStorage()
	store.users.On("FindByIDs", mock.Anything, mock.Anything, userLoaderFields).Return([]*models.User{}, nil)

	resolver := newTestResolver(store)
	ctx := resolver.WithLoaders(context.Background())

	user, err := resolver.loadUser(ctx, 42)
	assert.Nil(t, user)
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, "User with id 42 not found!", err.Error())
}

func TestLoadUser_WithoutLoaderFallsBackToPointLookup(t *testing.T) {
	store := newMockStorage()
	store.users.On("FindByID", mock.Anything, int64(5), userLoaderFields).Return(&models.User{ID: 5, Name: "Ana"}, nil)

	resolver := newTestResolver(store)
	user, err := resolver.loadUser(context.Background(), 5)
	assert.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)
	store.users.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoadUser_CachesWithinRequest(t *testing.T) {
	store := newMockStorage()
	store.users.On("FindByIDs", mock.Anything, []int64{3}, userLoaderFields).Return([]*models.User{{ID: 3}}, nil).Once()

	resolver := newTestResolver(store)
	ctx := resolver.WithLoaders(context.Background())

	first, err := resolver.loadUser(ctx, 3)
	assert.NoError(t, err)
	second, err := resolver.loadUser(ctx, 3)
	assert.NoError(t, err)
	assert.Same(t, first, second)
	store.users.AssertNumberOfCalls(t, "FindByIDs", 1)
}
