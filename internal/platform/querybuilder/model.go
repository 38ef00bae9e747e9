package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel builds an INSERT for every exported db-tagged field of model.
// The suffix is appended verbatim, which is where the repositories hang their
// ON CONFLICT clauses.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return "", nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return "", nil, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	var cols []string
	var vals []any
	for _, field := range reflect.VisibleFields(value.Type()) {
		if field.PkgPath != "" || field.Anonymous {
			continue
		}
		col := dbColumn(field)
		if col == "" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.FieldByIndex(field.Index).Interface())
	}
	if len(cols) == 0 {
		return "", nil, fmt.Errorf("model has no db columns")
	}

	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSQL()
}

func dbColumn(field reflect.StructField) string {
	tag := strings.TrimSpace(field.Tag.Get("db"))
	if tag == "" || tag == "-" {
		return ""
	}
	col, _, _ := strings.Cut(tag, ",")
	col = strings.TrimSpace(col)
	if col == "-" {
		return ""
	}
	return col
}
