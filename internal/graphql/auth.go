package graphql

import (
	"github.com/graphql-go/graphql"
)

// authGuard проверяет bearer-токен, находит пользователя и кладет его
// в контекст как authUser; без валидного токена резолвер не выполняется
func (r *Resolver) authGuard(p graphql.ResolveParams, next resolverFn) (interface{}, error) {
	token, ok := tokenFromContext(p.Context)
	if !ok || token == "" {
		return nil, &AuthenticationError{Message: "Unauthorized! Token not provided!"}
	}

	userID, err := r.Auth.ParseToken(token)
	if err != nil {
		return nil, &AuthenticationError{Message: "Unauthorized! Invalid token!"}
	}

	user, err := r.Storage.Users().FindByID(p.Context, userID, []string{"id", "email"})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &AuthenticationError{Message: "Unauthorized! Invalid token!"}
	}

	p.Context = withAuthUser(p.Context, user)
	return next(p)
}

// authResolvers — стандартная цепочка guard-функций для защищенных операций
func (r *Resolver) authResolvers() []guardFn {
	return []guardFn{r.authGuard}
}
