package builder

import (
	"context"
	"fmt"
	"strings"

	"github.com/strideworks/storefront/pkg/registry"
	"github.com/strideworks/storefront/pkg/runtime"
	"github.com/strideworks/storefront/pkg/schema"
)

// DeleteQuery represents a type-safe DELETE query.
type DeleteQuery[T any] struct {
	exec      Executor
	table     *schema.Table
	err       error
	where     []Condition
	returning []string
}

// Delete creates a new type-safe DELETE query.
// Usage: builder.Delete[CartItem](db).Where(...).Exec(ctx)
func Delete[T any](src Source) *DeleteQuery[T] {
	var model T
	q := &DeleteQuery[T]{exec: src.executor()}
	q.table, q.err = registry.GetOrRegister(model)
	return q
}

// Where adds a WHERE condition.
func (q *DeleteQuery[T]) Where(condition Condition) *DeleteQuery[T] {
	q.where = append(q.where, condition)
	return q
}

// And adds an AND condition.
func (q *DeleteQuery[T]) And(condition Condition) *DeleteQuery[T] {
	condition.Logic = LogicAnd
	return q.Where(condition)
}

// Returning specifies columns to return.
func (q *DeleteQuery[T]) Returning(columns ...string) *DeleteQuery[T] {
	q.returning = append(q.returning, columns...)
	return q
}

// ToSQL generates the DELETE SQL and arguments.
func (q *DeleteQuery[T]) ToSQL() (string, []any, error) {
	if q.err != nil {
		return "", nil, q.err
	}

	var sql strings.Builder
	var args []any

	sql.WriteString("DELETE FROM ")
	sql.WriteString(q.table.Name)

	if len(q.where) > 0 {
		wb := NewWhereBuilder()
		wb.conditions = q.where
		whereSQL, whereArgs, err := wb.Build()
		if err != nil {
			return "", nil, fmt.Errorf("failed to build WHERE clause: %w", err)
		}
		sql.WriteString(" ")
		sql.WriteString(whereSQL)
		args = append(args, whereArgs...)
	}

	if len(q.returning) > 0 {
		sql.WriteString(" RETURNING ")
		sql.WriteString(strings.Join(q.returning, ", "))
	}

	return sql.String(), args, nil
}

// Exec executes the DELETE and returns the number of affected rows.
func (q *DeleteQuery[T]) Exec(ctx context.Context) (int64, error) {
	sql, args, err := q.ToSQL()
	if err != nil {
		return 0, err
	}
	if q.exec == nil {
		return 0, runtime.ErrNoConnection
	}
	tag, err := q.exec.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to execute delete: %w", err)
	}
	return tag.RowsAffected(), nil
}
