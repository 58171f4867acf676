package sqlkit

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Statement is a rendered SQL statement with its named arguments.
// The query text contains @name placeholders only; values never appear
// inline except validated identifiers and whitelisted keywords.
type Statement struct {
	Query string
	Args  map[string]any
}

// Order is a single ORDER BY entry.
type Order struct {
	Column    string
	Direction string
}

// SelectOptions configures buildSelect. Zero values mean the clause is omitted:
// empty Columns renders SELECT *, empty Where renders no WHERE clause, and a
// Limit of zero or less renders no LIMIT clause.
type SelectOptions struct {
	Columns []string
	Where   map[string]any
	OrderBy []Order
	Limit   int
}

// buildInsert renders INSERT INTO <table> (<cols>) VALUES (<placeholders>).
// Each value binds through its own placeholder; placeholders are never shared
// across columns, so no value can silently overwrite another at bind time.
// Columns are rendered in sorted order for deterministic output.
func buildInsert(table string, values map[string]any) (Statement, error) {
	if len(values) == 0 {
		return Statement{}, errors.Join(ErrEmptyArgument, errors.New("insert requires values"))
	}

	quotedTable, err := QuoteIdentifier(table)
	if err != nil {
		return Statement{}, err
	}

	columns := sortedKeys(values)
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	args := make(map[string]any, len(columns))

	for i, col := range columns {
		q, err := QuoteIdentifier(col)
		if err != nil {
			return Statement{}, err
		}
		ph := uniquePlaceholder(placeholderName(col), args)
		quoted[i] = q
		placeholders[i] = "@" + ph
		args[ph] = values[col]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quotedTable,
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
	)
	return Statement{Query: query, Args: args}, nil
}

// buildUpdate renders UPDATE <table> SET ... WHERE ... . SET and WHERE
// placeholders live in distinct namespaces (set_ and where_ prefixes) so a
// column appearing in both clauses cannot collide. Both mappings are required:
// an unconditioned UPDATE is never rendered.
func buildUpdate(table string, set, where map[string]any) (Statement, error) {
	if len(set) == 0 {
		return Statement{}, errors.Join(ErrEmptyArgument, errors.New("update requires set values"))
	}
	if len(where) == 0 {
		return Statement{}, errors.Join(ErrEmptyArgument, errors.New("update requires where conditions"))
	}

	quotedTable, err := QuoteIdentifier(table)
	if err != nil {
		return Statement{}, err
	}

	args := make(map[string]any, len(set)+len(where))

	setParts := make([]string, 0, len(set))
	for _, col := range sortedKeys(set) {
		q, err := QuoteIdentifier(col)
		if err != nil {
			return Statement{}, err
		}
		ph := uniquePlaceholder("set_"+placeholderName(col), args)
		setParts = append(setParts, q+" = @"+ph)
		args[ph] = set[col]
	}

	whereParts, err := renderWhereEqual(where, "where_", args)
	if err != nil {
		return Statement{}, err
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		quotedTable,
		strings.Join(setParts, ", "),
		strings.Join(whereParts, " AND "),
	)
	return Statement{Query: query, Args: args}, nil
}

// buildDelete renders DELETE FROM <table> WHERE ... . The where mapping is
// required: an unconditioned DELETE is never rendered.
func buildDelete(table string, where map[string]any) (Statement, error) {
	if len(where) == 0 {
		return Statement{}, errors.Join(ErrEmptyArgument, errors.New("delete requires where conditions"))
	}

	quotedTable, err := QuoteIdentifier(table)
	if err != nil {
		return Statement{}, err
	}

	args := make(map[string]any, len(where))
	whereParts, err := renderWhereEqual(where, "", args)
	if err != nil {
		return Statement{}, err
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE %s",
		quotedTable,
		strings.Join(whereParts, " AND "),
	)
	return Statement{Query: query, Args: args}, nil
}

// buildSelect renders a SELECT statement. Order directions are validated
// against ASC and DESC (case-insensitive, uppercased on output); anything else
// fails rather than falling back to a default. Limit renders as a literal
// integer because it arrives as a typed int, never caller text.
func buildSelect(table string, opts SelectOptions) (Statement, error) {
	quotedTable, err := QuoteIdentifier(table)
	if err != nil {
		return Statement{}, err
	}

	projection := "*"
	if len(opts.Columns) > 0 {
		cols := make([]string, len(opts.Columns))
		for i, col := range opts.Columns {
			q, err := QuoteIdentifier(col)
			if err != nil {
				return Statement{}, err
			}
			cols[i] = q
		}
		projection = strings.Join(cols, ", ")
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(projection)
	sb.WriteString(" FROM ")
	sb.WriteString(quotedTable)

	args := make(map[string]any, len(opts.Where))
	if len(opts.Where) > 0 {
		whereParts, err := renderWhereEqual(opts.Where, "", args)
		if err != nil {
			return Statement{}, err
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(whereParts, " AND "))
	}

	if len(opts.OrderBy) > 0 {
		orderParts := make([]string, len(opts.OrderBy))
		for i, ord := range opts.OrderBy {
			q, err := QuoteIdentifier(ord.Column)
			if err != nil {
				return Statement{}, err
			}
			dir, err := normalizeDirection(ord.Direction)
			if err != nil {
				return Statement{}, err
			}
			orderParts[i] = q + " " + dir
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(orderParts, ", "))
	}

	if opts.Limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(opts.Limit))
	}

	return Statement{Query: sb.String(), Args: args}, nil
}

// renderWhereEqual renders equality conditions for each column in sorted
// order, binding each value through its own prefixed placeholder.
func renderWhereEqual(where map[string]any, prefix string, args map[string]any) ([]string, error) {
	parts := make([]string, 0, len(where))
	for _, col := range sortedKeys(where) {
		q, err := QuoteIdentifier(col)
		if err != nil {
			return nil, err
		}
		ph := uniquePlaceholder(prefix+placeholderName(col), args)
		parts = append(parts, q+" = @"+ph)
		args[ph] = where[col]
	}
	return parts, nil
}

// uniquePlaceholder returns base, or base with a numeric suffix when two
// columns fold to the same placeholder name (qualified names lose their dots,
// so "a.b" and "a_b" would otherwise share one binding).
func uniquePlaceholder(base string, args map[string]any) string {
	name := base
	for i := 2; ; i++ {
		if _, exists := args[name]; !exists {
			return name
		}
		name = base + "_" + strconv.Itoa(i)
	}
}

// normalizeDirection validates a sort direction against the ASC/DESC
// whitelist. Input is case-insensitive; output is uppercased.
func normalizeDirection(direction string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(direction)) {
	case "ASC":
		return "ASC", nil
	case "DESC":
		return "DESC", nil
	default:
		return "", errors.Join(ErrInvalidSortDirection, fmt.Errorf("%q", direction))
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
