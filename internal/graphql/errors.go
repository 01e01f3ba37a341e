package graphql

import (
	"errors"
	"fmt"
	"log"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
)

// Ошибки предметной области проходят к клиенту как есть, с кодом в extensions.
// Все остальное считается ошибкой инфраструктуры и скрывается за generic-ответом.

type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found!", e.Entity, e.ID)
}

func (e *NotFoundError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": "NOT_FOUND"}
}

type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

func (e *AuthenticationError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": "UNAUTHENTICATED"}
}

type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

func (e *AuthorizationError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": "FORBIDDEN"}
}

type BadInputError struct {
	Message string
}

func (e *BadInputError) Error() string {
	return e.Message
}

func (e *BadInputError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": "BAD_USER_INPUT"}
}

type internalError struct{}

func (internalError) Error() string {
	return "internal server error"
}

func (internalError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": "INTERNAL_SERVER_ERROR"}
}

// handleErrors нормализует отказ резолвера: типизированные ошибки проходят
// без изменений, остальные логируются и заменяются generic-ошибкой
func handleErrors(next resolverFn) resolverFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		result, err := next(p)
		if err == nil {
			return result, nil
		}
		var extended gqlerrors.ExtendedError
		if errors.As(err, &extended) {
			return nil, err
		}
		log.Printf("внутренняя ошибка при разрешении поля %s: %v", p.Info.FieldName, err)
		return nil, internalError{}
	}
}
