package mysqlstmt

// Replace starts a REPLACE statement. REPLACE deletes rows that conflict on
// a unique key before inserting, so it shares the INSERT surface. IGNORE is
// meaningless with REPLACE and is rejected.
func Replace(table string, opts ...Option) *InsertBuilder {
	b := InsertInto(table, opts...)
	b.verb = "REPLACE"
	return b
}
