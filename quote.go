package mysqlstmt

import "strings"

// quoteColRef quotes a column reference with the statement's quote
// character. References that are already quoted, contain '*', a space or a
// '(' (expressions) pass through unchanged. A single "table.column"
// qualifier quotes only the column part.
func (s *stmt) quoteColRef(col string) string {
	if !s.quoteAllColRefs || col == "" {
		return col
	}
	if strings.ContainsAny(col, "* (") || strings.ContainsRune(col, s.quoteChar) {
		return col
	}
	q := string(s.quoteChar)
	if i := strings.IndexByte(col, '.'); i >= 0 {
		return col[:i+1] + q + col[i+1:] + q
	}
	return q + col + q
}

// QuoteValue returns val as a single-quoted SQL string literal with
// backslash-escaped quotes and backslashes.
func QuoteValue(val string) string {
	return "'" + escaper.Replace(val) + "'"
}

var escaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)
