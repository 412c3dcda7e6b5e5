package mysqlstmt

var (
	// ErrNoTable occurs when a statement that requires a table is built without one.
	ErrNoTable = NewError("statement has no table")
	// ErrNoColumns occurs when a SELECT has neither columns nor a table.
	ErrNoColumns = NewError("select has no columns and no table")
	// ErrNoValues occurs when an INSERT/REPLACE or UPDATE has nothing to write.
	ErrNoValues = NewError("statement has no values")
	// ErrNoSelects occurs when a UNION has no member selects.
	ErrNoSelects = NewError("union has no selects")
	// ErrIncompatibleValues occurs when Set, Columns/SetBatch and Select
	// are combined on the same INSERT.
	ErrIncompatibleValues = NewError("set values, batch values and select are mutually exclusive")
	// ErrColumnsRequired occurs when batch values or an insert-select is
	// configured without naming the target columns.
	ErrColumnsRequired = NewError("columns must be named before values can be built")
	// ErrInvalidPredicate occurs when a condition group is created with a
	// connective other than AND or OR.
	ErrInvalidPredicate = NewError("predicate must be AND or OR")
	// ErrInvalidOperator occurs when a comparison uses an unknown operator
	// or an operator incompatible with its value.
	ErrInvalidOperator = NewError("invalid comparison operator")
	// ErrInvalidJoinCond occurs when a join condition is not one of the
	// supported forms.
	ErrInvalidJoinCond = NewError("invalid join condition")
	// ErrArgumentMismatch occurs when the number of '?' markers does not
	// match the number of arguments.
	ErrArgumentMismatch = NewError("mismatch between number of placeholders and arguments")
	// ErrInvalidValue occurs when a value cannot be rendered as a literal.
	ErrInvalidValue = NewError("cannot render value as a SQL literal")
	// ErrNotUTF8 occurs when a string value is not valid UTF-8.
	ErrNotUTF8 = NewError("invalid UTF-8")
	// ErrUnqualifiedDelete occurs when a DELETE has no WHERE clause and
	// AllowUnqualified was not called.
	ErrUnqualifiedDelete = NewError("unqualified delete affects every row, call AllowUnqualified if that is intended")
	// ErrMultiTableClause occurs when ORDER BY or LIMIT is used with a
	// multi-table UPDATE or DELETE.
	ErrMultiTableClause = NewError("ORDER BY and LIMIT are invalid with multiple tables")
	// ErrNegativeLimit occurs when LIMIT or OFFSET is negative.
	ErrNegativeLimit = NewError("LIMIT and OFFSET must not be negative")
	// ErrOffsetWithoutLimit occurs when OFFSET is set but LIMIT is not.
	ErrOffsetWithoutLimit = NewError("OFFSET requires LIMIT")
	// ErrSelectPlaceholders occurs when an INSERT ... SELECT subselect has
	// placeholder args and AllowSelectPlaceholders was not called.
	ErrSelectPlaceholders = NewError("insert-select subquery has placeholders, call AllowSelectPlaceholders if that is intended")
	// ErrInvalidLock occurs when a lock statement is missing its name or
	// has a non-positive timeout.
	ErrInvalidLock = NewError("lock requires a name and a positive timeout")
	// ErrAliasRequired occurs when a derived table is added without an alias.
	ErrAliasRequired = NewError("derived table requires an alias")
)

// Error is the error type returned by this package.
type Error struct {
	Code    int
	Message string
}

// Error returns the enclosed error message.
func (e *Error) Error() string {
	return e.Message
}

// NewError creates a new mysqlstmt Error.
func NewError(msg string) error {
	return &Error{Message: msg}
}

// newSQLErr is the common error return shape of ToSQL.
func newSQLErr(err error) (string, []interface{}, error) {
	return "", nil, err
}
