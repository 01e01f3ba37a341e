package graphql

import (
	"fmt"
	"strconv"

	"github.com/graphql-go/graphql"

	"github.com/ButyrinIA/blog/internal/auth"
	"github.com/ButyrinIA/blog/internal/storage"
)

// Resolver хранит зависимости всех резолверов: хранилище и менеджер токенов
type Resolver struct {
	Storage storage.Storage
	Auth    *auth.Manager
}

func NewResolver(storage storage.Storage, auth *auth.Manager) *Resolver {
	return &Resolver{Storage: storage, Auth: auth}
}

// parseID разбирает внешний строковый идентификатор в числовой id хранилища
func parseID(value interface{}) (int64, error) {
	raw := fmt.Sprintf("%v", value)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &BadInputError{Message: fmt.Sprintf("invalid id %q", raw)}
	}
	return id, nil
}

// pagination извлекает first/offset; значения по умолчанию (10, 0)
// подставляет сама схема
func pagination(args map[string]interface{}) (first, offset int) {
	first, offset = 10, 0
	if v, ok := args["first"].(int); ok {
		first = v
	}
	if v, ok := args["offset"].(int); ok {
		offset = v
	}
	return first, offset
}

func inputArg(p graphql.ResolveParams) (map[string]interface{}, error) {
	input, ok := p.Args["input"].(map[string]interface{})
	if !ok {
		return nil, &BadInputError{Message: "input is required"}
	}
	return input, nil
}

func stringField(input map[string]interface{}, name string) string {
	value, _ := input[name].(string)
	return value
}

func optionalStringField(input map[string]interface{}, name string) *string {
	if value, ok := input[name].(string); ok {
		return &value
	}
	return nil
}
