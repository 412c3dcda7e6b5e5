package mysqlstmt

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/mgutz/str"
	"github.com/pkg/errors"

	"mysqlstmt/common"
)

var bufPool = common.NewBufferPool()

// Expression holds a raw SQL fragment with optional placeholder args. It is
// accepted wherever a value is expected, for example
//
//	b.Set("updated_at", mysqlstmt.Expr("NOW()"))
//	b.Where("age", mysqlstmt.Expr("(SELECT AVG(age) FROM people WHERE city = ?)", city))
type Expression struct {
	Sql  string
	Args []interface{}
}

// Expr stores a raw SQL fragment with optional args.
func Expr(sql string, args ...interface{}) *Expression {
	return &Expression{Sql: sql, Args: args}
}

// Interpolate replaces each '?' in sql with the literal form of the
// corresponding arg. String args are always quoted and escaped. Slice args
// render as a parenthesized list.
func Interpolate(sql string, args []interface{}) (string, error) {
	if !utf8.ValidString(sql) {
		return "", ErrNotUTF8
	}
	if strings.Count(sql, "?") != len(args) {
		return "", logger.Error("interpolate: placeholder count does not match args", "sql", sql)
	}
	if len(args) == 0 {
		return sql, nil
	}

	// literals inlined into a final statement are always quoted
	lit := &stmt{quoteAllValues: true}
	buf := bufPool.Get()
	defer bufPool.Put(buf)

	argIdx := 0
	for _, r := range sql {
		if r != '?' {
			buf.WriteRune(r)
			continue
		}
		if err := writeInterpolatedArg(buf, lit, args[argIdx]); err != nil {
			return "", err
		}
		argIdx++
	}
	return buf.String(), nil
}

// MustInterpolate interpolates or panics.
func MustInterpolate(sql string, args []interface{}) string {
	out, err := Interpolate(sql, args)
	if err != nil {
		panic(err)
	}
	return out
}

func writeInterpolatedArg(buf *bytes.Buffer, lit *stmt, arg interface{}) error {
	rv, ok := sliceValue(arg)
	if !ok {
		return lit.writeLiteral(buf, arg)
	}
	if rv.Len() == 0 {
		return ErrInvalidValue
	}
	buf.WriteString("(")
	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			buf.WriteString(", ")
		}
		if err := lit.writeLiteral(buf, rv.Index(i).Interface()); err != nil {
			return err
		}
	}
	buf.WriteString(")")
	return nil
}

// AppliedExpression applies a command to many rows of args, rendering a
// script of ';'-terminated interpolated statements. Useful for fixtures and
// migration scripts executed outside of prepared statements.
type AppliedExpression struct {
	cmd  string
	rows [][]interface{}
}

// AppliedExpr creates an AppliedExpression.
func AppliedExpr(cmd string, rows ...[]interface{}) *AppliedExpression {
	return &AppliedExpression{cmd: cmd, rows: rows}
}

// ToSQL renders the script. Args are always nil since every value is inlined.
func (ae *AppliedExpression) ToSQL() (string, []interface{}, error) {
	if ae.cmd == "" {
		return "", nil, ErrNoValues
	}
	var buf bytes.Buffer
	for i, row := range ae.rows {
		one, err := Interpolate(ae.cmd, row)
		if err != nil {
			return "", nil, errors.Wrapf(err, "applying row %d", i)
		}
		if i > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(str.EnsureSuffix(one, ";"))
	}
	return buf.String(), nil, nil
}
