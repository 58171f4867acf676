// Package sqlkit builds parameterized SQL statements with strict identifier
// validation and named-placeholder binding.
//
// The package never interpolates values into SQL text. Every table and column
// name passes through [ValidateIdentifier] before it is quoted into a
// statement, every value binds through its own @name placeholder, and the
// only literals ever rendered are validated identifiers, whitelisted keywords
// (ASC, DESC, join types, comparison operators) and typed integer limits.
//
// # Features
//
//   - Identifier allow-list validation and dialect quoting via [QuoteIdentifier]
//   - Guarded single-table CRUD statements through [CRUD]
//   - Multi-clause SELECT construction through [Builder]
//   - Collision-free placeholder naming with a per-builder counter
//   - Pluggable execution through the [Executor] interface
//
// # Usage
//
// CRUD statements against any Executor implementation:
//
//	import (
//		"context"
//
//		"github.com/dmitrymomot/anvil/pkg/sqlkit"
//	)
//
//	crud := sqlkit.NewCRUD(exec, logger)
//
//	ok, err := crud.Insert(ctx, "products", map[string]any{
//		"name":  "Widget",
//		"price": 9.99,
//	})
//	if err != nil {
//		// Validation fault: bad identifier or empty argument.
//	}
//	if !ok {
//		// Execution fault: already logged, nothing to unwrap.
//	}
//
// Fluent SELECT construction:
//
//	stmt, err := sqlkit.NewBuilder("products").
//		Select("id", "name", "price").
//		Where("price", ">", 10).
//		Where("price", "<", 100).
//		OrderBy("name", "asc").
//		Limit(20).
//		ToStatement()
//
// Each condition binds through its own placeholder (price_0, price_1), so
// repeating a column never overwrites an earlier value.
//
// # Error Handling
//
// Validation faults surface as sentinel errors checked with [errors.Is]:
//
//   - [ErrInvalidIdentifier] - name failed the identifier allow-list
//   - [ErrInvalidSortDirection] - direction was not ASC or DESC
//   - [ErrInvalidOperator] - operator outside the comparison allow-list
//   - [ErrInvalidJoinType] - join type outside the join allow-list
//   - [ErrInvalidLimit] - limit below 1
//   - [ErrEmptyArgument] - required mapping or slice was empty
//
// Execution faults on writes are logged and reported as a false result;
// reads surface [ErrExecution] instead.
package sqlkit
