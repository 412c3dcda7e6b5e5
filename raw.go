package mysqlstmt

// RawBuilder wraps a complete SQL statement and its args so it can be passed
// wherever a Builder is expected.
type RawBuilder struct {
	stmt
	sql  string
	args []interface{}
}

// SQL creates a RawBuilder.
func SQL(sql string, args ...interface{}) *RawBuilder {
	return &RawBuilder{stmt: newStmt(nil), sql: sql, args: args}
}

// ToSQL returns the statement unchanged. With placeholders disabled the args
// are interpolated into the text.
func (b *RawBuilder) ToSQL() (string, []interface{}, error) {
	if b.sql == "" {
		return newSQLErr(NewError("raw statement is empty"))
	}
	if b.placeholder == "" && len(b.args) > 0 {
		sql, err := Interpolate(b.sql, b.args)
		if err != nil {
			return newSQLErr(err)
		}
		return sql, nil, nil
	}
	return b.finish(b.sql, b.args)
}
