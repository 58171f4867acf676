package sqlkit

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// comparison operators accepted by Where and OrWhere.
var allowedOperators = map[string]struct{}{
	"=":           {},
	"!=":          {},
	"<>":          {},
	"<":           {},
	">":           {},
	"<=":          {},
	">=":          {},
	"LIKE":        {},
	"NOT LIKE":    {},
	"IN":          {},
	"NOT IN":      {},
	"IS NULL":     {},
	"IS NOT NULL": {},
}

var allowedJoinTypes = map[string]struct{}{
	"INNER":      {},
	"LEFT":       {},
	"RIGHT":      {},
	"FULL OUTER": {},
	"CROSS":      {},
}

type whereClause struct {
	connector string
	expr      string
}

// Builder accumulates clauses for a multi-table SELECT and renders them in a
// fixed order: SELECT, FROM, JOINs, WHERE, GROUP BY, HAVING, ORDER BY, LIMIT.
//
// Every placeholder name is derived from the column name plus a monotonic
// per-builder counter, so referencing the same column in several conditions
// never collides and rendered statements are reproducible. The first
// validation failure sticks: later calls become no-ops and ToStatement
// returns the recorded error.
//
// Builders are not safe for concurrent use; build the statement on one
// goroutine and share the rendered Statement instead.
type Builder struct {
	table   string
	columns []string
	joins   []string
	wheres  []whereClause
	groupBy string
	having  string
	orderBy []string
	limit   int
	args    map[string]any
	counter int
	err     error
}

// NewBuilder starts a SELECT against the given table. An invalid table name
// is recorded and reported by ToStatement.
func NewBuilder(table string) *Builder {
	b := &Builder{args: make(map[string]any)}
	quoted, err := QuoteIdentifier(table)
	if err != nil {
		b.err = err
		return b
	}
	b.table = quoted
	return b
}

// Select sets the projected columns. Without it the statement renders
// SELECT *.
func (b *Builder) Select(columns ...string) *Builder {
	if b.err != nil {
		return b
	}
	quoted := make([]string, len(columns))
	for i, col := range columns {
		q, err := QuoteIdentifier(col)
		if err != nil {
			b.err = err
			return b
		}
		quoted[i] = q
	}
	b.columns = quoted
	return b
}

// Where appends an AND-connected condition. The operator must belong to the
// fixed allow-list; IS NULL and IS NOT NULL ignore the value, and IN and
// NOT IN expand a slice value into one placeholder per element.
func (b *Builder) Where(column, operator string, value any) *Builder {
	return b.condition("AND", column, operator, value)
}

// OrWhere appends an OR-connected condition with the same operator rules as
// Where.
func (b *Builder) OrWhere(column, operator string, value any) *Builder {
	return b.condition("OR", column, operator, value)
}

// WhereRaw appends a literal AND-connected fragment verbatim. The builder
// does not parse the fragment; bind any placeholders it references with
// WithParam. Never build the fragment from caller-influenced strings.
func (b *Builder) WhereRaw(condition string) *Builder {
	if b.err != nil {
		return b
	}
	b.wheres = append(b.wheres, whereClause{connector: "AND", expr: condition})
	return b
}

// WithParam binds a value for a placeholder referenced by WhereRaw or Having
// fragments.
func (b *Builder) WithParam(name string, value any) *Builder {
	if b.err != nil {
		return b
	}
	b.args[name] = value
	return b
}

// Join appends a join clause. The join type must be one of INNER, LEFT,
// RIGHT, FULL OUTER or CROSS (case-insensitive) and the table name is
// validated, but the ON condition is inserted verbatim because it may
// reference qualified or aliased names the identifier guard cannot judge.
// The ON text is the caller's responsibility; never build it from
// caller-influenced strings.
func (b *Builder) Join(joinType, table, on string) *Builder {
	if b.err != nil {
		return b
	}
	jt := strings.ToUpper(strings.TrimSpace(joinType))
	if _, ok := allowedJoinTypes[jt]; !ok {
		b.err = errors.Join(ErrInvalidJoinType, fmt.Errorf("%q", joinType))
		return b
	}
	quoted, err := QuoteIdentifier(table)
	if err != nil {
		b.err = err
		return b
	}
	b.joins = append(b.joins, fmt.Sprintf("%s JOIN %s ON %s", jt, quoted, on))
	return b
}

// GroupBy sets the grouping column. Only one grouping column is supported;
// calling it again replaces the previous one.
func (b *Builder) GroupBy(column string) *Builder {
	if b.err != nil {
		return b
	}
	quoted, err := QuoteIdentifier(column)
	if err != nil {
		b.err = err
		return b
	}
	b.groupBy = quoted
	return b
}

// Having sets the HAVING fragment verbatim; bind placeholders with WithParam.
// A HAVING without a GROUP BY renders as written and the engine rejects it.
func (b *Builder) Having(condition string) *Builder {
	if b.err != nil {
		return b
	}
	b.having = condition
	return b
}

// OrderBy appends an ORDER BY entry. The direction must be ASC or DESC,
// case-insensitive.
func (b *Builder) OrderBy(column, direction string) *Builder {
	if b.err != nil {
		return b
	}
	quoted, err := QuoteIdentifier(column)
	if err != nil {
		b.err = err
		return b
	}
	dir, err := normalizeDirection(direction)
	if err != nil {
		b.err = err
		return b
	}
	b.orderBy = append(b.orderBy, quoted+" "+dir)
	return b
}

// Limit caps the result set. The value must be at least 1; use no Limit call
// for an unbounded statement.
func (b *Builder) Limit(n int) *Builder {
	if b.err != nil {
		return b
	}
	if n < 1 {
		b.err = errors.Join(ErrInvalidLimit, fmt.Errorf("got %d", n))
		return b
	}
	b.limit = n
	return b
}

// ToStatement renders the accumulated clauses, or returns the first
// validation error recorded while building.
func (b *Builder) ToStatement() (Statement, error) {
	if b.err != nil {
		return Statement{}, b.err
	}

	projection := "*"
	if len(b.columns) > 0 {
		projection = strings.Join(b.columns, ", ")
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(projection)
	sb.WriteString(" FROM ")
	sb.WriteString(b.table)

	for _, join := range b.joins {
		sb.WriteString(" ")
		sb.WriteString(join)
	}

	for i, w := range b.wheres {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" ")
			sb.WriteString(w.connector)
			sb.WriteString(" ")
		}
		sb.WriteString(w.expr)
	}

	if b.groupBy != "" {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(b.groupBy)
	}
	if b.having != "" {
		sb.WriteString(" HAVING ")
		sb.WriteString(b.having)
	}
	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(b.limit))
	}

	args := make(map[string]any, len(b.args))
	for k, v := range b.args {
		args[k] = v
	}
	return Statement{Query: sb.String(), Args: args}, nil
}

// Execute renders the statement and runs it through the CRUD prepared-query
// path, returning the rows.
func (b *Builder) Execute(ctx context.Context, crud *CRUD) ([]map[string]any, error) {
	stmt, err := b.ToStatement()
	if err != nil {
		return nil, err
	}
	return crud.PreparedQuery(ctx, stmt.Query, stmt.Args)
}

func (b *Builder) condition(connector, column, operator string, value any) *Builder {
	if b.err != nil {
		return b
	}

	op := strings.ToUpper(strings.TrimSpace(operator))
	if _, ok := allowedOperators[op]; !ok {
		b.err = errors.Join(ErrInvalidOperator, fmt.Errorf("%q", operator))
		return b
	}

	quoted, err := QuoteIdentifier(column)
	if err != nil {
		b.err = err
		return b
	}

	switch op {
	case "IS NULL", "IS NOT NULL":
		b.wheres = append(b.wheres, whereClause{connector: connector, expr: quoted + " " + op})
		return b
	case "IN", "NOT IN":
		base := b.nextPlaceholder(column)
		elems, err := sliceElements(value)
		if err != nil {
			b.err = err
			return b
		}
		placeholders := make([]string, len(elems))
		for i, elem := range elems {
			name := base + "_" + strconv.Itoa(i)
			placeholders[i] = "@" + name
			b.args[name] = elem
		}
		expr := fmt.Sprintf("%s %s (%s)", quoted, op, strings.Join(placeholders, ", "))
		b.wheres = append(b.wheres, whereClause{connector: connector, expr: expr})
		return b
	default:
		name := b.nextPlaceholder(column)
		b.args[name] = value
		b.wheres = append(b.wheres, whereClause{connector: connector, expr: quoted + " " + op + " @" + name})
		return b
	}
}

// nextPlaceholder derives a unique placeholder name from the column and the
// per-builder counter.
func (b *Builder) nextPlaceholder(column string) string {
	name := placeholderName(column) + "_" + strconv.Itoa(b.counter)
	b.counter++
	return name
}

// sliceElements flattens a slice or array value for IN expansion. Empty or
// non-slice values are rejected so an IN clause never renders without
// members.
func sliceElements(value any) ([]any, error) {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, errors.Join(ErrEmptyArgument, fmt.Errorf("IN requires a slice, got %T", value))
	}
	if rv.Len() == 0 {
		return nil, errors.Join(ErrEmptyArgument, errors.New("IN requires at least one element"))
	}
	elems := make([]any, rv.Len())
	for i := range elems {
		elems[i] = rv.Index(i).Interface()
	}
	return elems, nil
}
