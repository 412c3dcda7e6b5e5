package mysqlstmt

import (
	"bytes"

	"github.com/pkg/errors"
)

// InsertBuilder builds INSERT and REPLACE statements. Row values come from
// exactly one of three sources: Set-style assignments, Columns plus batch
// rows, or Columns plus a subselect.
type InsertBuilder struct {
	stmt
	setValues

	verb   string
	table  string
	cols   []string
	batch  [][]interface{}
	sub    *SelectBuilder
	subSQL string
	ignore bool

	allowSelectPlaceholders bool
}

// InsertInto starts an INSERT statement.
func InsertInto(table string, opts ...Option) *InsertBuilder {
	return &InsertBuilder{stmt: newStmt(opts), verb: "INSERT", table: table}
}

// Into sets the target table.
func (b *InsertBuilder) Into(table string) *InsertBuilder {
	b.table = table
	return b
}

// Ignore renders the IGNORE keyword, skipping rows that hit key conflicts.
func (b *InsertBuilder) Ignore() *InsertBuilder {
	b.ignore = true
	return b
}

// SetOption adds a query option rendered after the verb, e.g. LOW_PRIORITY.
func (b *InsertBuilder) SetOption(opts ...string) *InsertBuilder {
	b.setOption(opts...)
	return b
}

// Columns names the target columns for batch rows or an insert-select.
func (b *InsertBuilder) Columns(cols ...string) *InsertBuilder {
	b.cols = append(b.cols, cols...)
	return b
}

// Set assigns a value to a column. An *Expression value is written verbatim
// and a *SelectBuilder renders as a scalar subquery.
func (b *InsertBuilder) Set(column string, value interface{}) *InsertBuilder {
	b.set(column, value)
	return b
}

// SetMap assigns values per map entry in sorted key order.
func (b *InsertBuilder) SetMap(values Values) *InsertBuilder {
	b.setMap(values)
	return b
}

// SetRaw assigns raw SQL to a column, e.g. SetRaw("created_at", "NOW()").
func (b *InsertBuilder) SetRaw(column, raw string, params ...interface{}) *InsertBuilder {
	b.setRaw(column, raw, params)
	return b
}

// SetBatch adds value rows. Each row must match the named Columns; every row
// renders its own parenthesized VALUES group with args flattened in row
// order.
func (b *InsertBuilder) SetBatch(rows [][]interface{}) *InsertBuilder {
	b.batch = append(b.batch, rows...)
	return b
}

// Select makes this an INSERT ... SELECT.
func (b *InsertBuilder) Select(sub *SelectBuilder) *InsertBuilder {
	b.sub = sub
	return b
}

// SelectSQL makes this an INSERT ... SELECT from a prebuilt SELECT string.
func (b *InsertBuilder) SelectSQL(sql string) *InsertBuilder {
	b.subSQL = sql
	return b
}

// AllowSelectPlaceholders permits a parameterized insert-select subquery.
// It is off by default since mixing a driver-prepared INSERT with subquery
// params is usually a mistake.
func (b *InsertBuilder) AllowSelectPlaceholders() *InsertBuilder {
	b.allowSelectPlaceholders = true
	return b
}

// ToSQL renders the statement.
func (b *InsertBuilder) ToSQL() (string, []interface{}, error) {
	if b.err != nil {
		return newSQLErr(b.err)
	}
	if b.table == "" {
		return newSQLErr(ErrNoTable)
	}
	if b.ignore && b.verb != "INSERT" {
		return newSQLErr(NewError("IGNORE is invalid with REPLACE"))
	}

	sources := 0
	if len(b.assignments) > 0 {
		sources++
	}
	if len(b.batch) > 0 {
		sources++
	}
	if b.sub != nil || b.subSQL != "" {
		sources++
	}
	if sources > 1 || (len(b.assignments) > 0 && len(b.cols) > 0) {
		return newSQLErr(ErrIncompatibleValues)
	}
	if sources == 0 {
		return newSQLErr(ErrNoValues)
	}

	var args []interface{}
	var buf bytes.Buffer
	buf.WriteString(b.verb)
	for _, opt := range b.options {
		buf.WriteString(" ")
		buf.WriteString(opt)
	}
	if b.ignore {
		buf.WriteString(" IGNORE")
	}
	buf.WriteString(" INTO ")
	buf.WriteString(b.table)

	switch {
	case len(b.assignments) > 0:
		if err := b.writeInsertClauses(&b.stmt, &buf, &args); err != nil {
			return newSQLErr(err)
		}

	case len(b.batch) > 0:
		if len(b.cols) == 0 {
			return newSQLErr(ErrColumnsRequired)
		}
		b.writeColumnList(&buf)
		buf.WriteString(" VALUES ")
		for r, row := range b.batch {
			if len(row) != len(b.cols) {
				return newSQLErr(errors.Wrapf(ErrArgumentMismatch, "batch row %d has %d values, want %d", r, len(row), len(b.cols)))
			}
			if r > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString("(")
			for i, v := range row {
				if i > 0 {
					buf.WriteString(", ")
				}
				if err := b.writeValue(&buf, v, &args); err != nil {
					return newSQLErr(err)
				}
			}
			buf.WriteString(")")
		}

	default:
		if len(b.cols) == 0 {
			return newSQLErr(ErrColumnsRequired)
		}
		b.writeColumnList(&buf)
		buf.WriteString(" ")
		if b.sub != nil {
			sql, subArgs, err := b.sub.ToSQL()
			if err != nil {
				return newSQLErr(err)
			}
			if len(subArgs) > 0 {
				if !b.allowSelectPlaceholders {
					return newSQLErr(ErrSelectPlaceholders)
				}
				if b.placeholder == "" {
					if sql, err = Interpolate(sql, subArgs); err != nil {
						return newSQLErr(err)
					}
				} else {
					args = append(args, subArgs...)
				}
			}
			buf.WriteString(sql)
		} else {
			buf.WriteString(b.subSQL)
		}
	}

	return b.finish(buf.String(), args)
}

func (b *InsertBuilder) writeColumnList(buf *bytes.Buffer) {
	buf.WriteString(" (")
	for i, col := range b.cols {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(b.quoteColRef(col))
	}
	buf.WriteString(")")
}
