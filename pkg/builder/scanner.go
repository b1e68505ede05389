package builder

import (
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"

	"github.com/strideworks/storefront/pkg/schema"
)

// scanIntoStruct scans the current row into dest using table metadata to
// match returned columns to struct fields. Columns without a matching
// field are discarded.
func scanIntoStruct(rows pgx.Rows, dest any, table *schema.Table) error {
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Pointer || destValue.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("dest must be a pointer to struct")
	}
	destValue = destValue.Elem()

	fieldDescriptions := rows.FieldDescriptions()
	scanTargets := make([]any, len(fieldDescriptions))

	for i, fd := range fieldDescriptions {
		col := table.Column(fd.Name)
		if col == nil {
			continue
		}
		field := destValue.FieldByName(col.GoField)
		if !field.IsValid() || !field.CanSet() {
			continue
		}
		scanTargets[i] = field.Addr().Interface()
	}

	var discard any
	for i := range scanTargets {
		if scanTargets[i] == nil {
			scanTargets[i] = &discard
		}
	}

	if err := rows.Scan(scanTargets...); err != nil {
		return fmt.Errorf("failed to scan row: %w", err)
	}
	return nil
}

// structToValues extracts column names and values from a model struct,
// skipping database-generated columns.
func structToValues(model any, table *schema.Table) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be a struct, got %s", value.Kind())
	}

	columns := make([]string, 0, len(table.Columns))
	values := make([]any, 0, len(table.Columns))
	for _, col := range table.Columns {
		if col.Auto {
			continue
		}
		field := value.FieldByName(col.GoField)
		if !field.IsValid() {
			return nil, nil, fmt.Errorf("field %s not found on %s", col.GoField, value.Type().Name())
		}
		columns = append(columns, col.Name)
		values = append(values, field.Interface())
	}
	return columns, values, nil
}
