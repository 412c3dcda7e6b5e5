package mysqlstmt

import (
	"database/sql/driver"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"mysqlstmt/common"
)

const mysqlTimeFormat = "2006-01-02 15:04:05"

// Eq is a map of column names to equality-compared values. Keys are applied
// in sorted order so the generated SQL is deterministic.
type Eq map[string]interface{}

// Values is a map of column names to values for SET and VALUES lists. Keys
// are applied in sorted order.
type Values map[string]interface{}

// Builder is implemented by every statement builder.
type Builder interface {
	ToSQL() (string, []interface{}, error)
}

// Option configures a builder at construction time.
type Option func(*stmt)

// WithoutPlaceholders renders values inline instead of as parameters.
// ToSQL then returns nil args.
func WithoutPlaceholders() Option {
	return func(s *stmt) { s.placeholder = "" }
}

// WithPlaceholder overrides the parameter marker.
func WithPlaceholder(marker string) Option {
	return func(s *stmt) { s.placeholder = marker }
}

// WithQuoteChar overrides the identifier quote character.
func WithQuoteChar(c rune) Option {
	return func(s *stmt) { s.quoteChar = c }
}

// WithColRefQuoting enables or disables quoting of column references.
func WithColRefQuoting(quote bool) Option {
	return func(s *stmt) { s.quoteAllColRefs = quote }
}

// WithValueQuoting enables or disables quoting of inlined string values.
// When disabled the caller is responsible for escaping and quoting.
func WithValueQuoting(quote bool) Option {
	return func(s *stmt) { s.quoteAllValues = quote }
}

// WithParameterizedLimit renders LIMIT counts as placeholders instead of
// literal integers.
func WithParameterizedLimit(parameterize bool) Option {
	return func(s *stmt) { s.parameterizeLimit = parameterize }
}

// stmt holds the state shared by every statement builder.
type stmt struct {
	placeholder       string
	quoteChar         rune
	quoteAllColRefs   bool
	quoteAllValues    bool
	parameterizeLimit bool
	options           []string
	err               error
}

func newStmt(opts []Option) stmt {
	s := stmt{
		placeholder:       Config.Placeholder,
		quoteChar:         Config.QuoteChar,
		quoteAllColRefs:   Config.QuoteAllColRefs,
		quoteAllValues:    Config.QuoteAllValues,
		parameterizeLimit: Config.ParameterizeLimit,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// setErr records the first error only. Later calls on a failed builder are
// no-ops and ToSQL returns the recorded error.
func (s *stmt) setErr(err error) {
	if s.err == nil {
		s.err = err
	}
}

func (s *stmt) setOption(opts ...string) {
	s.options = append(s.options, opts...)
}

// writeValue renders one leaf value, either as a placeholder with the value
// appended to args, or as an inline literal when placeholders are disabled.
// nil always renders as NULL with no argument.
func (s *stmt) writeValue(buf common.BufferWriter, value interface{}, args *[]interface{}) error {
	if value == nil {
		buf.WriteString("NULL")
		return nil
	}
	if s.placeholder != "" {
		buf.WriteString(s.placeholder)
		*args = append(*args, value)
		return nil
	}
	return s.writeLiteral(buf, value)
}

// writeRaw writes caller-provided SQL. In placeholder mode its params are
// appended to args as-is; in inline mode they are interpolated into the SQL.
func (s *stmt) writeRaw(buf common.BufferWriter, sql string, params []interface{}, args *[]interface{}) error {
	if s.placeholder != "" || len(params) == 0 {
		buf.WriteString(sql)
		if len(params) > 0 {
			*args = append(*args, params...)
		}
		return nil
	}
	inlined, err := Interpolate(sql, params)
	if err != nil {
		return err
	}
	buf.WriteString(inlined)
	return nil
}

// writeLiteral renders value as a SQL literal.
func (s *stmt) writeLiteral(buf common.BufferWriter, value interface{}) error {
	if value == nil {
		buf.WriteString("NULL")
		return nil
	}
	if valuer, ok := value.(driver.Valuer); ok {
		v, err := valuer.Value()
		if err != nil {
			return err
		}
		return s.writeLiteral(buf, v)
	}
	switch v := value.(type) {
	case time.Time:
		buf.WriteString("'")
		buf.WriteString(v.Format(mysqlTimeFormat))
		buf.WriteString("'")
		return nil
	case []byte:
		return s.writeStringLiteral(buf, string(v))
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Bool:
		// MySQL booleans are TINYINT
		if rv.Bool() {
			buf.WriteString("1")
		} else {
			buf.WriteString("0")
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		buf.WriteString(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		buf.WriteString(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		buf.WriteString(strconv.FormatFloat(rv.Float(), 'f', -1, 64))
	case reflect.String:
		return s.writeStringLiteral(buf, rv.String())
	default:
		return ErrInvalidValue
	}
	return nil
}

func (s *stmt) writeStringLiteral(buf common.BufferWriter, v string) error {
	if !utf8.ValidString(v) {
		return ErrNotUTF8
	}
	if s.quoteAllValues {
		buf.WriteString(QuoteValue(v))
	} else {
		buf.WriteString(v)
	}
	return nil
}

// writeSubquery renders a parenthesized subselect, splicing its args into the
// outer statement. With placeholders disabled the subquery args are inlined.
func (s *stmt) writeSubquery(buf common.BufferWriter, sub *SelectBuilder, args *[]interface{}) error {
	sql, subArgs, err := sub.ToSQL()
	if err != nil {
		return err
	}
	if len(subArgs) > 0 {
		if s.placeholder == "" {
			if sql, err = Interpolate(sql, subArgs); err != nil {
				return err
			}
		} else {
			*args = append(*args, subArgs...)
		}
	}
	buf.WriteString("(")
	buf.WriteString(sql)
	buf.WriteString(")")
	return nil
}

// orderLimit is the trailing ORDER BY / LIMIT state shared by SELECT,
// UPDATE, DELETE and UNION.
type orderLimit struct {
	orderBys []string
	limit    int
	offset   int
	hasLimit bool
}

func (ol *orderLimit) orderBy(exprs ...string) {
	ol.orderBys = append(ol.orderBys, exprs...)
}

func (ol *orderLimit) setLimit(s *stmt, count int) {
	if count < 0 {
		s.setErr(ErrNegativeLimit)
		return
	}
	ol.limit = count
	ol.hasLimit = true
}

func (ol *orderLimit) setOffset(s *stmt, n int) {
	if n < 0 {
		s.setErr(ErrNegativeLimit)
		return
	}
	ol.offset = n
}

// clauses renders the trailing ORDER BY and LIMIT parts.
func (ol *orderLimit) clauses(s *stmt, args *[]interface{}) ([]string, error) {
	var parts []string
	if len(ol.orderBys) > 0 {
		quoted := make([]string, len(ol.orderBys))
		for i, expr := range ol.orderBys {
			quoted[i] = s.quoteColRef(expr)
		}
		parts = append(parts, "ORDER BY "+strings.Join(quoted, ", "))
	}
	if !ol.hasLimit {
		if ol.offset > 0 {
			return nil, ErrOffsetWithoutLimit
		}
		return parts, nil
	}
	if s.parameterizeLimit && s.placeholder != "" {
		if ol.offset > 0 {
			parts = append(parts, "LIMIT "+s.placeholder+", "+s.placeholder)
			*args = append(*args, ol.offset, ol.limit)
		} else {
			parts = append(parts, "LIMIT "+s.placeholder)
			*args = append(*args, ol.limit)
		}
	} else {
		if ol.offset > 0 {
			parts = append(parts, "LIMIT "+strconv.Itoa(ol.offset)+", "+strconv.Itoa(ol.limit))
		} else {
			parts = append(parts, "LIMIT "+strconv.Itoa(ol.limit))
		}
	}
	return parts, nil
}

// sliceValue reports whether value is a slice or array, excluding []byte
// which renders as a single string value.
func sliceValue(value interface{}) (reflect.Value, bool) {
	if value == nil {
		return reflect.Value{}, false
	}
	if _, ok := value.([]byte); ok {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(value)
	if k := rv.Kind(); k == reflect.Slice || k == reflect.Array {
		return rv, true
	}
	return reflect.Value{}, false
}

// splitAlias splits a "name AS alias" reference. The separator is matched
// case-insensitively so "t1 as a1" resolves too.
func splitAlias(ref string) (name, alias string) {
	for i := 0; i+4 <= len(ref); i++ {
		if ref[i] == ' ' && ref[i+3] == ' ' && strings.EqualFold(ref[i+1:i+3], "AS") {
			return ref[:i], ref[i+4:]
		}
	}
	return ref, ""
}

// finish is the common ToSQL tail: inline mode returns nil args.
func (s *stmt) finish(sql string, args []interface{}) (string, []interface{}, error) {
	if s.placeholder == "" || len(args) == 0 {
		return sql, nil, nil
	}
	return sql, args, nil
}
