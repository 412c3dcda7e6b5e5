package mysqlstmt

import (
	"bytes"
	"strings"
)

type selectColumn struct {
	expr   string
	alias  string
	raw    bool
	params []interface{}
}

type tableFactor struct {
	ref   string // "name" or "name AS alias"
	sub   *SelectBuilder
	alias string
}

// SelectBuilder builds SELECT statements.
type SelectBuilder struct {
	stmt
	joinClause
	orderLimit

	factors  []tableFactor
	cols     []selectColumn
	where    whereClause
	groupBys []string
	having   whereClause
}

// Select starts a SELECT statement. table may be empty and supplied later
// with From.
func Select(table string, opts ...Option) *SelectBuilder {
	b := &SelectBuilder{
		stmt:   newStmt(opts),
		where:  newWhereClause("WHERE"),
		having: newWhereClause("HAVING"),
	}
	if table != "" {
		b.From(table)
	}
	return b
}

// Distinct marks the statement as DISTINCT.
func (b *SelectBuilder) Distinct() *SelectBuilder {
	return b.SetOption("DISTINCT")
}

// SetOption adds a query option rendered after SELECT, e.g. SQL_NO_CACHE.
func (b *SelectBuilder) SetOption(opts ...string) *SelectBuilder {
	b.setOption(opts...)
	return b
}

// From adds table references. A reference may carry an "AS alias" suffix.
func (b *SelectBuilder) From(tables ...string) *SelectBuilder {
	for _, t := range tables {
		b.factors = append(b.factors, tableFactor{ref: t})
	}
	return b
}

// FromAlias adds an aliased table reference.
func (b *SelectBuilder) FromAlias(table, alias string) *SelectBuilder {
	b.factors = append(b.factors, tableFactor{ref: table + " AS " + alias})
	return b
}

// FromSelect adds a derived table. The alias is required by MySQL.
func (b *SelectBuilder) FromSelect(sub *SelectBuilder, alias string) *SelectBuilder {
	if alias == "" {
		b.setErr(ErrAliasRequired)
		return b
	}
	b.factors = append(b.factors, tableFactor{sub: sub, alias: alias})
	return b
}

// Column selects a column reference, optionally with an "AS alias" suffix.
// Repeats are kept; callers sometimes select a column twice on purpose.
func (b *SelectBuilder) Column(name string) *SelectBuilder {
	expr, alias := splitAlias(name)
	return b.addColumn(selectColumn{expr: expr, alias: alias})
}

// Columns selects multiple column references.
func (b *SelectBuilder) Columns(names ...string) *SelectBuilder {
	for _, name := range names {
		b.Column(name)
	}
	return b
}

// ColumnExpr selects a raw expression which is never quoted. params are
// appended as args in placeholder mode and interpolated otherwise.
func (b *SelectBuilder) ColumnExpr(expr string, params ...interface{}) *SelectBuilder {
	return b.addColumn(selectColumn{expr: expr, raw: true, params: params})
}

// ColumnExprAs selects a raw expression with an alias.
func (b *SelectBuilder) ColumnExprAs(expr, alias string, params ...interface{}) *SelectBuilder {
	return b.addColumn(selectColumn{expr: expr, alias: alias, raw: true, params: params})
}

func (b *SelectBuilder) addColumn(col selectColumn) *SelectBuilder {
	b.cols = append(b.cols, col)
	return b
}

// RemoveColumn drops a previously selected column by name or alias.
func (b *SelectBuilder) RemoveColumn(name string) *SelectBuilder {
	for i := range b.cols {
		if b.cols[i].expr == name || b.cols[i].alias == name {
			b.cols = append(b.cols[:i], b.cols[i+1:]...)
			return b
		}
	}
	return b
}

// QualifyColumns prefixes selected columns with a table name. With no
// column names given, every unqualified non-expression column is qualified.
func (b *SelectBuilder) QualifyColumns(table string, cols ...string) *SelectBuilder {
	named := func(string) bool { return true }
	if len(cols) > 0 {
		want := make(map[string]bool, len(cols))
		for _, c := range cols {
			want[c] = true
		}
		named = func(c string) bool { return want[c] }
	}
	for i := range b.cols {
		c := &b.cols[i]
		if c.raw || strings.ContainsRune(c.expr, '.') || !named(c.expr) {
			continue
		}
		c.expr = table + "." + c.expr
	}
	return b
}

// Join adds an inner join. See joinClause for the condition forms.
func (b *SelectBuilder) Join(table string, cond interface{}) *SelectBuilder {
	b.addJoin(&b.stmt, "", table, cond)
	return b
}

// LeftJoin adds a LEFT JOIN.
func (b *SelectBuilder) LeftJoin(table string, cond interface{}) *SelectBuilder {
	b.addJoin(&b.stmt, "LEFT", table, cond)
	return b
}

// RightJoin adds a RIGHT JOIN.
func (b *SelectBuilder) RightJoin(table string, cond interface{}) *SelectBuilder {
	b.addJoin(&b.stmt, "RIGHT", table, cond)
	return b
}

// JoinType adds a join of an arbitrary kind, e.g. "STRAIGHT_JOIN" or
// "LEFT OUTER". "JOIN" is appended unless already present.
func (b *SelectBuilder) JoinType(kind, table string, cond interface{}) *SelectBuilder {
	b.addJoin(&b.stmt, kind, table, cond)
	return b
}

// Where adds "column = value" to the active condition group. Slice values
// compare with IN, nil with IS NULL.
func (b *SelectBuilder) Where(column string, value interface{}) *SelectBuilder {
	b.where.active().Eq(column, value)
	return b
}

// WhereOp adds "column op value" to the active condition group.
func (b *SelectBuilder) WhereOp(column, op string, value interface{}) *SelectBuilder {
	b.where.active().Op(column, op, value)
	return b
}

// WhereEq adds an equality comparison per map entry in sorted key order.
func (b *SelectBuilder) WhereEq(eq Eq) *SelectBuilder {
	b.where.active().EqAll(eq)
	return b
}

// WhereRaw adds "column op raw" with raw written verbatim.
func (b *SelectBuilder) WhereRaw(column, op, raw string, params ...interface{}) *SelectBuilder {
	b.where.active().Raw(column, op, raw, params...)
	return b
}

// WhereExpr adds a free-form predicate expression.
func (b *SelectBuilder) WhereExpr(expr string, params ...interface{}) *SelectBuilder {
	b.where.active().Expr(expr, params...)
	return b
}

// WhereBetween adds "column BETWEEN lo AND hi".
func (b *SelectBuilder) WhereBetween(column string, lo, hi interface{}) *SelectBuilder {
	b.where.active().Between(column, lo, hi)
	return b
}

// WhereSelect adds "column op (subquery)".
func (b *SelectBuilder) WhereSelect(column, op string, sub *SelectBuilder) *SelectBuilder {
	b.where.active().Op(column, op, sub)
	return b
}

// WhereAnd starts a new AND condition group; following Where calls land in it.
func (b *SelectBuilder) WhereAnd() *SelectBuilder {
	b.where.root.And()
	return b
}

// WhereOr starts a new OR condition group; following Where calls land in it.
func (b *SelectBuilder) WhereOr() *SelectBuilder {
	b.where.root.Or()
	return b
}

// WhereCond attaches a caller-built condition group; it also becomes the
// active group.
func (b *SelectBuilder) WhereCond(cond *Cond) *SelectBuilder {
	b.where.addGroup(cond)
	return b
}

// GroupBy adds GROUP BY expressions.
func (b *SelectBuilder) GroupBy(exprs ...string) *SelectBuilder {
	b.groupBys = append(b.groupBys, exprs...)
	return b
}

// Having adds "column = value" to the active HAVING group.
func (b *SelectBuilder) Having(column string, value interface{}) *SelectBuilder {
	b.having.active().Eq(column, value)
	return b
}

// HavingOp adds "column op value" to the active HAVING group.
func (b *SelectBuilder) HavingOp(column, op string, value interface{}) *SelectBuilder {
	b.having.active().Op(column, op, value)
	return b
}

// HavingEq adds an equality comparison per map entry in sorted key order.
func (b *SelectBuilder) HavingEq(eq Eq) *SelectBuilder {
	b.having.active().EqAll(eq)
	return b
}

// HavingRaw adds "column op raw" to the active HAVING group.
func (b *SelectBuilder) HavingRaw(column, op, raw string, params ...interface{}) *SelectBuilder {
	b.having.active().Raw(column, op, raw, params...)
	return b
}

// HavingExpr adds a free-form HAVING expression.
func (b *SelectBuilder) HavingExpr(expr string, params ...interface{}) *SelectBuilder {
	b.having.active().Expr(expr, params...)
	return b
}

// HavingBetween adds "column BETWEEN lo AND hi" to the active HAVING group.
func (b *SelectBuilder) HavingBetween(column string, lo, hi interface{}) *SelectBuilder {
	b.having.active().Between(column, lo, hi)
	return b
}

// HavingSelect adds "column op (subquery)" to the active HAVING group.
func (b *SelectBuilder) HavingSelect(column, op string, sub *SelectBuilder) *SelectBuilder {
	b.having.active().Op(column, op, sub)
	return b
}

// HavingAnd starts a new AND group in the HAVING clause.
func (b *SelectBuilder) HavingAnd() *SelectBuilder {
	b.having.root.And()
	return b
}

// HavingOr starts a new OR group in the HAVING clause.
func (b *SelectBuilder) HavingOr() *SelectBuilder {
	b.having.root.Or()
	return b
}

// HavingCond attaches a caller-built HAVING condition group.
func (b *SelectBuilder) HavingCond(cond *Cond) *SelectBuilder {
	b.having.addGroup(cond)
	return b
}

// OrderBy adds ORDER BY expressions, e.g. "t1c1" or "t1c1 DESC".
func (b *SelectBuilder) OrderBy(exprs ...string) *SelectBuilder {
	b.orderBy(exprs...)
	return b
}

// Limit sets the row count.
func (b *SelectBuilder) Limit(count int) *SelectBuilder {
	b.setLimit(&b.stmt, count)
	return b
}

// Offset sets the row offset. Offset requires Limit.
func (b *SelectBuilder) Offset(n int) *SelectBuilder {
	b.setOffset(&b.stmt, n)
	return b
}

// ToSQL renders the statement. Args align positionally with the placeholder
// markers and are nil when placeholders are disabled.
func (b *SelectBuilder) ToSQL() (string, []interface{}, error) {
	if b.err != nil {
		return newSQLErr(b.err)
	}

	var args []interface{}
	parts := []string{"SELECT"}
	parts = append(parts, b.options...)

	switch {
	case len(b.cols) > 0:
		var cb bytes.Buffer
		for i := range b.cols {
			col := &b.cols[i]
			if i > 0 {
				cb.WriteString(", ")
			}
			if col.raw {
				if err := b.writeRaw(&cb, col.expr, col.params, &args); err != nil {
					return newSQLErr(err)
				}
			} else {
				cb.WriteString(b.quoteColRef(col.expr))
			}
			if col.alias != "" {
				cb.WriteString(" AS ")
				cb.WriteString(b.quoteColRef(col.alias))
			}
		}
		parts = append(parts, cb.String())
	case len(b.factors) > 0:
		parts = append(parts, "*")
	default:
		return newSQLErr(ErrNoColumns)
	}

	if len(b.factors) > 0 {
		var fb bytes.Buffer
		fb.WriteString("FROM ")
		for i := range b.factors {
			f := &b.factors[i]
			if i > 0 {
				fb.WriteString(", ")
			}
			if f.sub != nil {
				if err := b.writeSubquery(&fb, f.sub, &args); err != nil {
					return newSQLErr(err)
				}
				fb.WriteString(" AS ")
				fb.WriteString(f.alias)
			} else {
				fb.WriteString(f.ref)
			}
		}
		if len(b.joins) > 0 {
			rootRef := b.factors[0].ref
			if b.factors[0].sub != nil {
				rootRef = b.factors[0].alias
			}
			if err := b.renderJoins(&b.stmt, rootRef, &fb); err != nil {
				return newSQLErr(err)
			}
		}
		parts = append(parts, fb.String())
	} else if len(b.joins) > 0 {
		return newSQLErr(ErrNoTable)
	}

	frag, err := b.where.clause(&b.stmt, &args)
	if err != nil {
		return newSQLErr(err)
	}
	if frag != "" {
		parts = append(parts, frag)
	}

	if len(b.groupBys) > 0 {
		quoted := make([]string, len(b.groupBys))
		for i, expr := range b.groupBys {
			quoted[i] = b.quoteColRef(expr)
		}
		parts = append(parts, "GROUP BY "+strings.Join(quoted, ", "))
	}

	frag, err = b.having.clause(&b.stmt, &args)
	if err != nil {
		return newSQLErr(err)
	}
	if frag != "" {
		parts = append(parts, frag)
	}

	trailing, err := b.clauses(&b.stmt, &args)
	if err != nil {
		return newSQLErr(err)
	}
	parts = append(parts, trailing...)

	return b.finish(strings.Join(parts, " "), args)
}
