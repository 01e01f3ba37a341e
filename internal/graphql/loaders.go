package graphql

import (
	"context"

	"github.com/graph-gophers/dataloader/v7"

	"github.com/ButyrinIA/blog/internal/models"
)

// Колонки, которые батчер пользователей читает для вложенных полей author/user.
// Хэш пароля через loader недоступен.
var userLoaderFields = []string{"id", "name", "email", "photo", "createdAt", "updatedAt"}

// Loaders живут в контексте одного запроса: сколько бы сиблингов ни запросили
// своего автора, в хранилище уходит один батч по уникальным id
type Loaders struct {
	Users *dataloader.Loader[int64, *models.User]
}

func (r *Resolver) newLoaders() *Loaders {
	return &Loaders{
		Users: dataloader.NewBatchedLoader(r.batchUsers),
	}
}

// WithLoaders подвешивает свежий набор loader-ов к контексту запроса
func (r *Resolver) WithLoaders(ctx context.Context) context.Context {
	return context.WithValue(ctx, loadersContextKey, r.newLoaders())
}

func loadersFromContext(ctx context.Context) (*Loaders, bool) {
	loaders, ok := ctx.Value(loadersContextKey).(*Loaders)
	return loaders, ok
}

func (r *Resolver) batchUsers(ctx context.Context, keys []int64) []*dataloader.Result[*models.User] {
	results := make([]*dataloader.Result[*models.User], len(keys))

	users, err := r.Storage.Users().FindByIDs(ctx, keys, userLoaderFields)
	if err != nil {
		for i := range keys {
			results[i] = &dataloader.Result[*models.User]{Error: err}
		}
		return results
	}

	byID := make(map[int64]*models.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}
	for i, key := range keys {
		if user, ok := byID[key]; ok {
			results[i] = &dataloader.Result[*models.User]{Data: user}
		} else {
			results[i] = &dataloader.Result[*models.User]{Error: &NotFoundError{Entity: "User", ID: key}}
		}
	}
	return results
}

// loadUser читает пользователя через батчер текущего запроса; если loader
// в контексте отсутствует (прямой вызов резолвера), идет точечный запрос
func (r *Resolver) loadUser(ctx context.Context, id int64) (*models.User, error) {
	if loaders, ok := loadersFromContext(ctx); ok {
		return loaders.Users.Load(ctx, id)()
	}
	user, err := r.Storage.Users().FindByID(ctx, id, userLoaderFields)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &NotFoundError{Entity: "User", ID: id}
	}
	return user, nil
}
