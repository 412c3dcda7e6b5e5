package mysqlstmt

import "bytes"

type unionMember struct {
	sub *SelectBuilder
	raw string
}

// UnionBuilder combines SELECT statements with UNION. Members render
// parenthesized so a trailing ORDER BY or LIMIT applies to the whole union.
// Args splice in member order.
type UnionBuilder struct {
	stmt
	orderLimit

	members []unionMember
	all     bool
}

// Union combines selects with UNION (DISTINCT).
func Union(selects ...*SelectBuilder) *UnionBuilder {
	b := &UnionBuilder{stmt: newStmt(nil)}
	for _, sub := range selects {
		b.Select(sub)
	}
	return b
}

// UnionAll combines selects with UNION ALL.
func UnionAll(selects ...*SelectBuilder) *UnionBuilder {
	b := Union(selects...)
	b.all = true
	return b
}

// NewUnion starts an empty union configured with options.
func NewUnion(opts ...Option) *UnionBuilder {
	return &UnionBuilder{stmt: newStmt(opts)}
}

// All switches to UNION ALL, keeping duplicate rows.
func (b *UnionBuilder) All() *UnionBuilder {
	b.all = true
	return b
}

// Select appends a member select.
func (b *UnionBuilder) Select(sub *SelectBuilder) *UnionBuilder {
	b.members = append(b.members, unionMember{sub: sub})
	return b
}

// SelectSQL appends a prebuilt SELECT string as a member.
func (b *UnionBuilder) SelectSQL(sql string) *UnionBuilder {
	b.members = append(b.members, unionMember{raw: sql})
	return b
}

// OrderBy adds ORDER BY expressions applied to the whole union.
func (b *UnionBuilder) OrderBy(exprs ...string) *UnionBuilder {
	b.orderBy(exprs...)
	return b
}

// Limit sets the row count for the whole union.
func (b *UnionBuilder) Limit(count int) *UnionBuilder {
	b.setLimit(&b.stmt, count)
	return b
}

// Offset sets the row offset. Offset requires Limit.
func (b *UnionBuilder) Offset(n int) *UnionBuilder {
	b.setOffset(&b.stmt, n)
	return b
}

// ToSQL renders the statement.
func (b *UnionBuilder) ToSQL() (string, []interface{}, error) {
	if b.err != nil {
		return newSQLErr(b.err)
	}
	if len(b.members) == 0 {
		return newSQLErr(ErrNoSelects)
	}

	sep := " UNION "
	if b.all {
		sep = " UNION ALL "
	}

	var args []interface{}
	var buf bytes.Buffer
	for i := range b.members {
		m := &b.members[i]
		if i > 0 {
			buf.WriteString(sep)
		}
		if m.sub != nil {
			if err := b.writeSubquery(&buf, m.sub, &args); err != nil {
				return newSQLErr(err)
			}
		} else {
			buf.WriteString("(")
			buf.WriteString(m.raw)
			buf.WriteString(")")
		}
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
