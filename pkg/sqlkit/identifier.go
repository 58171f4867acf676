package sqlkit

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// identifierPattern accepts SQL identifiers: a letter or underscore followed by
// letters, digits, underscores, or dots for schema-qualified names.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// ValidateIdentifier checks that name is safe to embed in SQL text as a table
// or column reference. Every identifier, whether literal or caller-supplied,
// must pass through this check before it touches a statement.
func ValidateIdentifier(name string) error {
	if !identifierPattern.MatchString(name) {
		return errors.Join(ErrInvalidIdentifier, fmt.Errorf("%q", name))
	}
	return nil
}

// QuoteIdentifier validates name and returns it wrapped in double quotes,
// with each dot-separated part quoted individually so qualified names keep
// their qualification: "schema"."table". Any embedded quote character is
// doubled on output.
func QuoteIdentifier(name string) (string, error) {
	if err := ValidateIdentifier(name); err != nil {
		return "", err
	}

	parts := strings.Split(name, ".")
	for i, part := range parts {
		if part == "" {
			return "", errors.Join(ErrInvalidIdentifier, fmt.Errorf("%q", name))
		}
		parts[i] = `"` + strings.ReplaceAll(part, `"`, `""`) + `"`
	}
	return strings.Join(parts, "."), nil
}

// placeholderName derives a named-parameter-safe placeholder from a column
// reference. Dots from qualified names are replaced so the result stays a
// valid placeholder token for both pgx named args and database/sql.
func placeholderName(column string) string {
	return strings.ReplaceAll(column, ".", "_")
}
