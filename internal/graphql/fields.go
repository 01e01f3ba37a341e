package graphql

import (
	"strings"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
)

// selectedFields собирает имена полей верхнего уровня текущего selection set,
// раскрывая фрагменты, но не спускаясь внутрь вложенных выборок
func selectedFields(info graphql.ResolveInfo) []string {
	if len(info.FieldASTs) == 0 {
		return nil
	}
	var fields []string
	for _, fieldAST := range info.FieldASTs {
		fields = collectFields(fields, fieldAST.GetSelectionSet(), info.Fragments)
	}
	return fields
}

func collectFields(fields []string, set *ast.SelectionSet, fragments map[string]ast.Definition) []string {
	if set == nil {
		return fields
	}
	for _, selection := range set.Selections {
		switch sel := selection.(type) {
		case *ast.Field:
			name := sel.Name.Value
			if strings.HasPrefix(name, "__") {
				continue
			}
			fields = append(fields, name)
		case *ast.FragmentSpread:
			if def, ok := fragments[sel.Name.Value]; ok {
				if fragment, ok := def.(*ast.FragmentDefinition); ok {
					fields = collectFields(fields, fragment.GetSelectionSet(), fragments)
				}
			}
		case *ast.InlineFragment:
			fields = collectFields(fields, sel.GetSelectionSet(), fragments)
		}
	}
	return fields
}

// projectFields возвращает (выбранные поля ∪ keep) \ exclude без дубликатов,
// с сохранением порядка. Пустой результат означает для хранилища "все колонки".
func projectFields(info graphql.ResolveInfo, keep, exclude []string) []string {
	fields := append(selectedFields(info), keep...)

	excluded := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excluded[name] = true
	}

	seen := make(map[string]bool, len(fields))
	result := make([]string, 0, len(fields))
	for _, name := range fields {
		if seen[name] || excluded[name] {
			continue
		}
		seen[name] = true
		result = append(result, name)
	}
	return result
}
