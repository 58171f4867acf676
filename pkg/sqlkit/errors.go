package sqlkit

import "errors"

var (
	// ErrInvalidIdentifier is returned when a table or column name fails validation.
	ErrInvalidIdentifier = errors.New("sqlkit: invalid identifier")

	// ErrInvalidSortDirection is returned when an ORDER BY direction is not ASC or DESC.
	ErrInvalidSortDirection = errors.New("sqlkit: invalid sort direction")

	// ErrInvalidOperator is returned when a WHERE operator is not in the allow-list.
	ErrInvalidOperator = errors.New("sqlkit: invalid operator")

	// ErrInvalidJoinType is returned when a JOIN type is not in the allow-list.
	ErrInvalidJoinType = errors.New("sqlkit: invalid join type")

	// ErrInvalidLimit is returned when a LIMIT value is less than one.
	ErrInvalidLimit = errors.New("sqlkit: limit must be a positive integer")

	// ErrEmptyArgument is returned when a required mapping or list is empty,
	// such as an UPDATE without SET values or a DELETE without a WHERE clause.
	ErrEmptyArgument = errors.New("sqlkit: empty required argument")

	// ErrExecution is returned when the underlying storage engine fails.
	// CRUD operations log the engine error and surface only this sentinel;
	// PreparedQuery joins the engine error for finer diagnosis.
	ErrExecution = errors.New("sqlkit: execution failed")
)
