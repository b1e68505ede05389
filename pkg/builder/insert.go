package builder

import (
	"context"
	"fmt"
	"strings"

	"github.com/strideworks/storefront/pkg/registry"
	"github.com/strideworks/storefront/pkg/runtime"
	"github.com/strideworks/storefront/pkg/schema"
)

// InsertQuery represents a type-safe INSERT query.
type InsertQuery[T any] struct {
	exec      Executor
	table     *schema.Table
	err       error
	values    []T
	returning []string
}

// Insert creates a new type-safe INSERT query.
// Usage: builder.Insert[Product](db).Values(product).One(ctx)
func Insert[T any](src Source) *InsertQuery[T] {
	var model T
	q := &InsertQuery[T]{exec: src.executor()}
	q.table, q.err = registry.GetOrRegister(model)
	return q
}

// Values adds rows to insert.
func (q *InsertQuery[T]) Values(values ...T) *InsertQuery[T] {
	q.values = append(q.values, values...)
	return q
}

// Returning specifies columns to return.
func (q *InsertQuery[T]) Returning(columns ...string) *InsertQuery[T] {
	q.returning = append(q.returning, columns...)
	return q
}

// ToSQL generates the INSERT SQL and arguments.
func (q *InsertQuery[T]) ToSQL() (string, []any, error) {
	if q.err != nil {
		return "", nil, q.err
	}
	if len(q.values) == 0 {
		return "", nil, fmt.Errorf("no values to insert")
	}

	var sql strings.Builder
	var args []any
	paramNum := 1

	sql.WriteString("INSERT INTO ")
	sql.WriteString(q.table.Name)

	columns, _, err := structToValues(q.values[0], q.table)
	if err != nil {
		return "", nil, fmt.Errorf("failed to extract values: %w", err)
	}
	sql.WriteString(" (")
	sql.WriteString(strings.Join(columns, ", "))
	sql.WriteString(") VALUES ")

	valueClauses := make([]string, len(q.values))
	for i, val := range q.values {
		_, rowValues, err := structToValues(val, q.table)
		if err != nil {
			return "", nil, fmt.Errorf("failed to extract values from row %d: %w", i, err)
		}
		placeholders := make([]string, len(rowValues))
		for j := range rowValues {
			placeholders[j] = fmt.Sprintf("$%d", paramNum)
			paramNum++
			args = append(args, rowValues[j])
		}
		valueClauses[i] = "(" + strings.Join(placeholders, ", ") + ")"
	}
	sql.WriteString(strings.Join(valueClauses, ", "))

	if len(q.returning) > 0 {
		sql.WriteString(" RETURNING ")
		sql.WriteString(strings.Join(q.returning, ", "))
	}

	return sql.String(), args, nil
}

// Exec executes the INSERT and returns the number of affected rows.
func (q *InsertQuery[T]) Exec(ctx context.Context) (int64, error) {
	sql, args, err := q.ToSQL()
	if err != nil {
		return 0, err
	}
	if q.exec == nil {
		return 0, runtime.ErrNoConnection
	}
	tag, err := q.exec.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to execute insert: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ExecReturning executes the INSERT and scans the RETURNING rows.
func (q *InsertQuery[T]) ExecReturning(ctx context.Context) ([]T, error) {
	if len(q.returning) == 0 {
		q.Returning("*")
	}
	sql, args, err := q.ToSQL()
	if err != nil {
		return nil, err
	}
	if q.exec == nil {
		return nil, runtime.ErrNoConnection
	}

	rows, err := q.exec.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute insert: %w", err)
	}
	defer rows.Close()

	var results []T
	for rows.Next() {
		var item T
		if err := scanIntoStruct(rows, &item, q.table); err != nil {
			return nil, err
		}
		results = append(results, item)
	}
	return results, rows.Err()
}

// One executes the INSERT of a single row and returns it.
func (q *InsertQuery[T]) One(ctx context.Context) (T, error) {
	var zero T
	results, err := q.ExecReturning(ctx)
	if err != nil {
		return zero, err
	}
	if len(results) == 0 {
		return zero, runtime.ErrNotFound
	}
	return results[0], nil
}
