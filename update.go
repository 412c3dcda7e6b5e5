package mysqlstmt

import (
	"bytes"
	"strings"
)

// UpdateBuilder builds UPDATE statements, including multi-table updates via
// joins or additional table references. ORDER BY and LIMIT are only valid on
// single-table updates.
type UpdateBuilder struct {
	stmt
	setValues
	joinClause
	orderLimit

	tables []string
	where  whereClause
	ignore bool
}

// Update starts an UPDATE statement. table may be empty and supplied later
// with Table.
func Update(table string, opts ...Option) *UpdateBuilder {
	b := &UpdateBuilder{stmt: newStmt(opts), where: newWhereClause("WHERE")}
	if table != "" {
		b.tables = append(b.tables, table)
	}
	return b
}

// Table adds table references.
func (b *UpdateBuilder) Table(tables ...string) *UpdateBuilder {
	b.tables = append(b.tables, tables...)
	return b
}

// Ignore renders the IGNORE keyword.
func (b *UpdateBuilder) Ignore() *UpdateBuilder {
	b.ignore = true
	return b
}

// SetOption adds a query option rendered after UPDATE, e.g. LOW_PRIORITY.
func (b *UpdateBuilder) SetOption(opts ...string) *UpdateBuilder {
	b.setOption(opts...)
	return b
}

// Set assigns a value to a column. An *Expression value is written verbatim
// and a *SelectBuilder renders as a scalar subquery.
func (b *UpdateBuilder) Set(column string, value interface{}) *UpdateBuilder {
	b.set(column, value)
	return b
}

// SetMap assigns values per map entry in sorted key order.
func (b *UpdateBuilder) SetMap(values Values) *UpdateBuilder {
	b.setMap(values)
	return b
}

// SetRaw assigns raw SQL to a column, e.g. SetRaw("counter", "counter + 1").
func (b *UpdateBuilder) SetRaw(column, raw string, params ...interface{}) *UpdateBuilder {
	b.setRaw(column, raw, params)
	return b
}

// Join adds an inner join. See joinClause for the condition forms.
func (b *UpdateBuilder) Join(table string, cond interface{}) *UpdateBuilder {
	b.addJoin(&b.stmt, "", table, cond)
	return b
}

// LeftJoin adds a LEFT JOIN.
func (b *UpdateBuilder) LeftJoin(table string, cond interface{}) *UpdateBuilder {
	b.addJoin(&b.stmt, "LEFT", table, cond)
	return b
}

// RightJoin adds a RIGHT JOIN.
func (b *UpdateBuilder) RightJoin(table string, cond interface{}) *UpdateBuilder {
	b.addJoin(&b.stmt, "RIGHT", table, cond)
	return b
}

// Where adds "column = value" to the active condition group.
func (b *UpdateBuilder) Where(column string, value interface{}) *UpdateBuilder {
	b.where.active().Eq(column, value)
	return b
}

// WhereOp adds "column op value" to the active condition group.
func (b *UpdateBuilder) WhereOp(column, op string, value interface{}) *UpdateBuilder {
	b.where.active().Op(column, op, value)
	return b
}

// WhereEq adds an equality comparison per map entry in sorted key order.
func (b *UpdateBuilder) WhereEq(eq Eq) *UpdateBuilder {
	b.where.active().EqAll(eq)
	return b
}

// WhereRaw adds "column op raw" with raw written verbatim.
func (b *UpdateBuilder) WhereRaw(column, op, raw string, params ...interface{}) *UpdateBuilder {
	b.where.active().Raw(column, op, raw, params...)
	return b
}

// WhereExpr adds a free-form predicate expression.
func (b *UpdateBuilder) WhereExpr(expr string, params ...interface{}) *UpdateBuilder {
	b.where.active().Expr(expr, params...)
	return b
}

// WhereBetween adds "column BETWEEN lo AND hi".
func (b *UpdateBuilder) WhereBetween(column string, lo, hi interface{}) *UpdateBuilder {
	b.where.active().Between(column, lo, hi)
	return b
}

// WhereSelect adds "column op (subquery)".
func (b *UpdateBuilder) WhereSelect(column, op string, sub *SelectBuilder) *UpdateBuilder {
	b.where.active().Op(column, op, sub)
	return b
}

// WhereAnd starts a new AND condition group.
func (b *UpdateBuilder) WhereAnd() *UpdateBuilder {
	b.where.root.And()
	return b
}

// WhereOr starts a new OR condition group.
func (b *UpdateBuilder) WhereOr() *UpdateBuilder {
	b.where.root.Or()
	return b
}

// WhereCond attaches a caller-built condition group.
func (b *UpdateBuilder) WhereCond(cond *Cond) *UpdateBuilder {
	b.where.addGroup(cond)
	return b
}

// OrderBy adds ORDER BY expressions. Single-table updates only.
func (b *UpdateBuilder) OrderBy(exprs ...string) *UpdateBuilder {
	b.orderBy(exprs...)
	return b
}

// Limit caps the number of updated rows. Single-table updates only.
func (b *UpdateBuilder) Limit(count int) *UpdateBuilder {
	b.setLimit(&b.stmt, count)
	return b
}

// ToSQL renders the statement.
func (b *UpdateBuilder) ToSQL() (string, []interface{}, error) {
	if b.err != nil {
		return newSQLErr(b.err)
	}
	if len(b.tables) == 0 {
		return newSQLErr(ErrNoTable)
	}
	if len(b.assignments) == 0 {
		return newSQLErr(ErrNoValues)
	}
	if multi := len(b.tables) > 1 || len(b.joins) > 0; multi && (len(b.orderBys) > 0 || b.hasLimit) {
		return newSQLErr(ErrMultiTableClause)
	}

	var args []interface{}
	var buf bytes.Buffer
	buf.WriteString("UPDATE")
	for _, opt := range b.options {
		buf.WriteString(" ")
		buf.WriteString(opt)
	}
	if b.ignore {
		buf.WriteString(" IGNORE")
	}
	buf.WriteString(" ")
	buf.WriteString(strings.Join(b.tables, ", "))
	if len(b.joins) > 0 {
		if err := b.renderJoins(&b.stmt, b.tables[0], &buf); err != nil {
			return newSQLErr(err)
		}
	}

	buf.WriteString(" SET ")
	if err := b.writeSetClauses(&b.stmt, &buf, &args); err != nil {
		return newSQLErr(err)
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
