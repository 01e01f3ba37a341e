package graphql

import (
	"github.com/graphql-go/graphql"
)

type resolverFn = graphql.FieldResolveFn

// guardFn либо вызывает next (возможно, с дополненным контекстом),
// либо завершает выполнение ошибкой, не доходя до резолвера
type guardFn func(p graphql.ResolveParams, next resolverFn) (interface{}, error)

// compose оборачивает резолвер упорядоченной цепочкой guard-функций:
// compose(a, b)(r) эквивалентно a(b(r)), первый guard выполняется первым
func compose(guards ...guardFn) func(resolverFn) resolverFn {
	return func(resolver resolverFn) resolverFn {
		chain := resolver
		for i := len(guards) - 1; i >= 0; i-- {
			guard := guards[i]
			next := chain
			chain = func(p graphql.ResolveParams) (interface{}, error) {
				return guard(p, next)
			}
		}
		return chain
	}
}
