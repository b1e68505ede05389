package builder

import (
	"context"
	"fmt"
	"strings"

	"github.com/strideworks/storefront/pkg/registry"
	"github.com/strideworks/storefront/pkg/runtime"
	"github.com/strideworks/storefront/pkg/schema"
)

// setClause is one SET assignment. Assignments keep insertion order so
// generated SQL is deterministic.
type setClause struct {
	column string
	value  any
	expr   string
	isExpr bool
}

// UpdateQuery represents a type-safe UPDATE query.
type UpdateQuery[T any] struct {
	exec      Executor
	table     *schema.Table
	err       error
	sets      []setClause
	where     []Condition
	returning []string
}

// Update creates a new type-safe UPDATE query.
// Usage: builder.Update[Product](db).Set("name", "Runner").Where(...).Exec(ctx)
func Update[T any](src Source) *UpdateQuery[T] {
	var model T
	q := &UpdateQuery[T]{exec: src.executor()}
	q.table, q.err = registry.GetOrRegister(model)
	return q
}

// Set assigns a column a parameter value.
func (q *UpdateQuery[T]) Set(column string, value any) *UpdateQuery[T] {
	q.sets = append(q.sets, setClause{column: column, value: value})
	return q
}

// SetExpr assigns a column the result of a SQL expression evaluated in the
// database. Each ? in expr is replaced by a positional parameter bound to
// the corresponding arg, letting read-modify-write updates (counters, stock
// decrements) run atomically in one statement.
func (q *UpdateQuery[T]) SetExpr(column string, expr string, args ...any) *UpdateQuery[T] {
	q.sets = append(q.sets, setClause{column: column, expr: expr, value: args, isExpr: true})
	return q
}

// Where adds a WHERE condition.
func (q *UpdateQuery[T]) Where(condition Condition) *UpdateQuery[T] {
	q.where = append(q.where, condition)
	return q
}

// And adds an AND condition.
func (q *UpdateQuery[T]) And(condition Condition) *UpdateQuery[T] {
	condition.Logic = LogicAnd
	return q.Where(condition)
}

// Returning specifies columns to return.
func (q *UpdateQuery[T]) Returning(columns ...string) *UpdateQuery[T] {
	q.returning = append(q.returning, columns...)
	return q
}

// ToSQL generates the UPDATE SQL and arguments.
func (q *UpdateQuery[T]) ToSQL() (string, []any, error) {
	if q.err != nil {
		return "", nil, q.err
	}
	if len(q.sets) == 0 {
		return "", nil, fmt.Errorf("no columns to update")
	}

	var sql strings.Builder
	var args []any
	paramNum := 1

	sql.WriteString("UPDATE ")
	sql.WriteString(q.table.Name)
	sql.WriteString(" SET ")

	setParts := make([]string, 0, len(q.sets))
	for _, set := range q.sets {
		if set.isExpr {
			expr := set.expr
			exprArgs := set.value.([]any)
			for _, arg := range exprArgs {
				idx := strings.Index(expr, "?")
				if idx < 0 {
					return "", nil, fmt.Errorf("expression %q has fewer placeholders than arguments", set.expr)
				}
				expr = expr[:idx] + fmt.Sprintf("$%d", paramNum) + expr[idx+1:]
				args = append(args, arg)
				paramNum++
			}
			if strings.Contains(expr, "?") {
				return "", nil, fmt.Errorf("expression %q has more placeholders than arguments", set.expr)
			}
			setParts = append(setParts, fmt.Sprintf("%s = %s", set.column, expr))
		} else {
			setParts = append(setParts, fmt.Sprintf("%s = $%d", set.column, paramNum))
			args = append(args, set.value)
			paramNum++
		}
	}
	sql.WriteString(strings.Join(setParts, ", "))

	if len(q.where) > 0 {
		wb := NewWhereBuilderWithStart(paramNum)
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

// Exec executes the UPDATE and returns the number of affected rows.
func (q *UpdateQuery[T]) Exec(ctx context.Context) (int64, error) {
	sql, args, err := q.ToSQL()
	if err != nil {
		return 0, err
	}
	if q.exec == nil {
		return 0, runtime.ErrNoConnection
	}
	tag, err := q.exec.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to execute update: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ExecReturning executes the UPDATE and scans the RETURNING rows.
func (q *UpdateQuery[T]) ExecReturning(ctx context.Context) ([]T, error) {
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
		return nil, fmt.Errorf("failed to execute update: %w", err)
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

// One executes the UPDATE expecting exactly one affected row and returns
// it, or runtime.ErrNotFound when nothing matched.
func (q *UpdateQuery[T]) One(ctx context.Context) (T, error) {
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
