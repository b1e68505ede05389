package builder

import (
	"context"
	"fmt"
	"strings"

	"github.com/strideworks/storefront/pkg/registry"
	"github.com/strideworks/storefront/pkg/runtime"
	"github.com/strideworks/storefront/pkg/schema"
)

// OrderDirection is an ORDER BY direction.
type OrderDirection string

const (
	Asc  OrderDirection = "ASC"
	Desc OrderDirection = "DESC"
)

// OrderBy is one ORDER BY term.
type OrderBy struct {
	Column    string
	Direction OrderDirection
}

// SelectQuery represents a type-safe SELECT query.
type SelectQuery[T any] struct {
	exec    Executor
	table   *schema.Table
	err     error
	columns []string
	where   []Condition
	orderBy []OrderBy
	limit   *int
	offset  *int
}

// Select creates a new type-safe SELECT query.
// Usage: builder.Select[Product](db).Where(...).All(ctx)
func Select[T any](src Source) *SelectQuery[T] {
	var model T
	q := &SelectQuery[T]{exec: src.executor(), columns: []string{"*"}}
	q.table, q.err = registry.GetOrRegister(model)
	return q
}

// Columns specifies which columns to select.
func (q *SelectQuery[T]) Columns(cols ...string) *SelectQuery[T] {
	q.columns = cols
	return q
}

// Where adds a WHERE condition.
func (q *SelectQuery[T]) Where(condition Condition) *SelectQuery[T] {
	q.where = append(q.where, condition)
	return q
}

// And adds an AND condition.
func (q *SelectQuery[T]) And(condition Condition) *SelectQuery[T] {
	condition.Logic = LogicAnd
	return q.Where(condition)
}

// Or adds an OR condition.
func (q *SelectQuery[T]) Or(condition Condition) *SelectQuery[T] {
	condition.Logic = LogicOr
	return q.Where(condition)
}

// OrderByAsc adds an ascending ORDER BY term.
func (q *SelectQuery[T]) OrderByAsc(column string) *SelectQuery[T] {
	q.orderBy = append(q.orderBy, OrderBy{Column: column, Direction: Asc})
	return q
}

// OrderByDesc adds a descending ORDER BY term.
func (q *SelectQuery[T]) OrderByDesc(column string) *SelectQuery[T] {
	q.orderBy = append(q.orderBy, OrderBy{Column: column, Direction: Desc})
	return q
}

// Limit sets the LIMIT clause.
func (q *SelectQuery[T]) Limit(limit int) *SelectQuery[T] {
	q.limit = &limit
	return q
}

// Offset sets the OFFSET clause.
func (q *SelectQuery[T]) Offset(offset int) *SelectQuery[T] {
	q.offset = &offset
	return q
}

// ToSQL generates the SQL query and arguments.
func (q *SelectQuery[T]) ToSQL() (string, []any, error) {
	if q.err != nil {
		return "", nil, q.err
	}

	var sql strings.Builder
	var args []any

	sql.WriteString("SELECT ")
	if len(q.columns) == 0 || (len(q.columns) == 1 && q.columns[0] == "*") {
		sql.WriteString("*")
	} else {
		sql.WriteString(strings.Join(q.columns, ", "))
	}
	sql.WriteString(" FROM ")
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

	if len(q.orderBy) > 0 {
		sql.WriteString(" ORDER BY ")
		parts := make([]string, len(q.orderBy))
		for i, order := range q.orderBy {
			parts[i] = order.Column + " " + string(order.Direction)
		}
		sql.WriteString(strings.Join(parts, ", "))
	}

	if q.limit != nil {
		sql.WriteString(fmt.Sprintf(" LIMIT %d", *q.limit))
	}
	if q.offset != nil {
		sql.WriteString(fmt.Sprintf(" OFFSET %d", *q.offset))
	}

	return sql.String(), args, nil
}

// All executes the query and returns all results.
func (q *SelectQuery[T]) All(ctx context.Context) ([]T, error) {
	sql, args, err := q.ToSQL()
	if err != nil {
		return nil, err
	}
	if q.exec == nil {
		return nil, runtime.ErrNoConnection
	}

	rows, err := q.exec.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
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

// First executes the query and returns the first result, or
// runtime.ErrNotFound when no row matches.
func (q *SelectQuery[T]) First(ctx context.Context) (T, error) {
	var zero T
	q.Limit(1)

	sql, args, err := q.ToSQL()
	if err != nil {
		return zero, err
	}
	if q.exec == nil {
		return zero, runtime.ErrNoConnection
	}

	rows, err := q.exec.Query(ctx, sql, args...)
	if err != nil {
		return zero, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return zero, err
		}
		return zero, runtime.ErrNotFound
	}

	var result T
	if err := scanIntoStruct(rows, &result, q.table); err != nil {
		return zero, err
	}
	return result, nil
}

// Count executes a COUNT query with the same conditions.
func (q *SelectQuery[T]) Count(ctx context.Context) (int64, error) {
	if q.err != nil {
		return 0, q.err
	}
	if q.exec == nil {
		return 0, runtime.ErrNoConnection
	}

	var sql strings.Builder
	var args []any
	sql.WriteString("SELECT COUNT(*) FROM ")
	sql.WriteString(q.table.Name)

	if len(q.where) > 0 {
		wb := NewWhereBuilder()
		wb.conditions = q.where
		whereSQL, whereArgs, err := wb.Build()
		if err != nil {
			return 0, err
		}
		sql.WriteString(" ")
		sql.WriteString(whereSQL)
		args = append(args, whereArgs...)
	}

	var count int64
	if err := q.exec.QueryRow(ctx, sql.String(), args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks whether any rows match the query.
func (q *SelectQuery[T]) Exists(ctx context.Context) (bool, error) {
	count, err := q.Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
