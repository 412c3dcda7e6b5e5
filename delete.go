package mysqlstmt

import (
	"bytes"
	"strings"
)

// DeleteBuilder builds DELETE statements. A DELETE without a WHERE clause is
// rejected unless AllowUnqualified is called, since it would delete every
// row. Multi-table deletes render the USING form; ORDER BY and LIMIT are
// only valid on single-table deletes.
type DeleteBuilder struct {
	stmt
	joinClause
	orderLimit

	tables           []string
	where            whereClause
	ignore           bool
	allowUnqualified bool
}

// DeleteFrom starts a DELETE statement. table may be empty and supplied
// later with From.
func DeleteFrom(table string, opts ...Option) *DeleteBuilder {
	b := &DeleteBuilder{stmt: newStmt(opts), where: newWhereClause("WHERE")}
	if table != "" {
		b.tables = append(b.tables, table)
	}
	return b
}

// From adds target table references.
func (b *DeleteBuilder) From(tables ...string) *DeleteBuilder {
	b.tables = append(b.tables, tables...)
	return b
}

// AllowUnqualified permits a DELETE without a WHERE clause.
func (b *DeleteBuilder) AllowUnqualified() *DeleteBuilder {
	b.allowUnqualified = true
	return b
}

// Ignore renders the IGNORE keyword.
func (b *DeleteBuilder) Ignore() *DeleteBuilder {
	b.ignore = true
	return b
}

// SetOption adds a query option rendered after DELETE, e.g. QUICK.
func (b *DeleteBuilder) SetOption(opts ...string) *DeleteBuilder {
	b.setOption(opts...)
	return b
}

// Join adds an inner join, turning this into a multi-table delete.
func (b *DeleteBuilder) Join(table string, cond interface{}) *DeleteBuilder {
	b.addJoin(&b.stmt, "", table, cond)
	return b
}

// LeftJoin adds a LEFT JOIN.
func (b *DeleteBuilder) LeftJoin(table string, cond interface{}) *DeleteBuilder {
	b.addJoin(&b.stmt, "LEFT", table, cond)
	return b
}

// RightJoin adds a RIGHT JOIN.
func (b *DeleteBuilder) RightJoin(table string, cond interface{}) *DeleteBuilder {
	b.addJoin(&b.stmt, "RIGHT", table, cond)
	return b
}

// Where adds "column = value" to the active condition group.
func (b *DeleteBuilder) Where(column string, value interface{}) *DeleteBuilder {
	b.where.active().Eq(column, value)
	return b
}

// WhereOp adds "column op value" to the active condition group.
func (b *DeleteBuilder) WhereOp(column, op string, value interface{}) *DeleteBuilder {
	b.where.active().Op(column, op, value)
	return b
}

// WhereEq adds an equality comparison per map entry in sorted key order.
func (b *DeleteBuilder) WhereEq(eq Eq) *DeleteBuilder {
	b.where.active().EqAll(eq)
	return b
}

// WhereRaw adds "column op raw" with raw written verbatim.
func (b *DeleteBuilder) WhereRaw(column, op, raw string, params ...interface{}) *DeleteBuilder {
	b.where.active().Raw(column, op, raw, params...)
	return b
}

// WhereExpr adds a free-form predicate expression.
func (b *DeleteBuilder) WhereExpr(expr string, params ...interface{}) *DeleteBuilder {
	b.where.active().Expr(expr, params...)
	return b
}

// WhereBetween adds "column BETWEEN lo AND hi".
func (b *DeleteBuilder) WhereBetween(column string, lo, hi interface{}) *DeleteBuilder {
	b.where.active().Between(column, lo, hi)
	return b
}

// WhereSelect adds "column op (subquery)".
func (b *DeleteBuilder) WhereSelect(column, op string, sub *SelectBuilder) *DeleteBuilder {
	b.where.active().Op(column, op, sub)
	return b
}

// WhereAnd starts a new AND condition group.
func (b *DeleteBuilder) WhereAnd() *DeleteBuilder {
	b.where.root.And()
	return b
}

// WhereOr starts a new OR condition group.
func (b *DeleteBuilder) WhereOr() *DeleteBuilder {
	b.where.root.Or()
	return b
}

// WhereCond attaches a caller-built condition group.
func (b *DeleteBuilder) WhereCond(cond *Cond) *DeleteBuilder {
	b.where.addGroup(cond)
	return b
}

// OrderBy adds ORDER BY expressions. Single-table deletes only.
func (b *DeleteBuilder) OrderBy(exprs ...string) *DeleteBuilder {
	b.orderBy(exprs...)
	return b
}

// Limit caps the number of deleted rows. Single-table deletes only.
func (b *DeleteBuilder) Limit(count int) *DeleteBuilder {
	b.setLimit(&b.stmt, count)
	return b
}

// ToSQL renders the statement.
func (b *DeleteBuilder) ToSQL() (string, []interface{}, error) {
	if b.err != nil {
		return newSQLErr(b.err)
	}
	if len(b.tables) == 0 {
		return newSQLErr(ErrNoTable)
	}
	if b.where.isEmpty() && !b.allowUnqualified {
		return newSQLErr(ErrUnqualifiedDelete)
	}
	multi := len(b.tables) > 1 || len(b.joins) > 0
	if multi && (len(b.orderBys) > 0 || b.hasLimit) {
		return newSQLErr(ErrMultiTableClause)
	}

	var args []interface{}
	var buf bytes.Buffer
	buf.WriteString("DELETE")
	for _, opt := range b.options {
		buf.WriteString(" ")
		buf.WriteString(opt)
	}
	if b.ignore {
		buf.WriteString(" IGNORE")
	}
	buf.WriteString(" FROM ")
	buf.WriteString(strings.Join(b.tables, ", "))
	if multi {
		buf.WriteString(" USING ")
		if len(b.joins) > 0 {
			// joined tables appear via the joins; listing a target here
			// too would duplicate it in table_references
			buf.WriteString(b.tables[0])
			if err := b.renderJoins(&b.stmt, b.tables[0], &buf); err != nil {
				return newSQLErr(err)
			}
		} else {
			buf.WriteString(strings.Join(b.tables, ", "))
		}
	}

	frag, err := b.where.clause(&b.stmt, &args)
	if err != nil {
		return newSQLErr(err)
	}
	if frag != "" {
		buf.WriteString(" ")
		buf.WriteString(frag)
	}

	trailing, err := b.clauses(&b.stmt, &args)
	if err != nil {
		return newSQLErr(err)
	}
	for _, part := range trailing {
		buf.WriteString(" ")
		buf.WriteString(part)
	}

	return b.finish(buf.String(), args)
}
