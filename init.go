// Package mysqlstmt builds MySQL statements programmatically. Each statement
// kind (SELECT, INSERT, REPLACE, UPDATE, DELETE, UNION, advisory locks) has a
// fluent builder whose ToSQL method returns the SQL text and the ordered
// arguments for its '?' placeholders. Disabling placeholders renders values
// inline instead.
package mysqlstmt

import (
	"github.com/mgutz/logxi"
)

var logger logxi.Logger

// Config holds package-wide defaults applied when a builder is created.
// Individual builders override these with functional options.
var Config = struct {
	// Placeholder is the parameter marker written for each value. Empty
	// string disables parameterization and values are rendered inline.
	Placeholder string

	// QuoteChar is the identifier quote character.
	QuoteChar rune

	// QuoteAllColRefs controls whether column references are quoted.
	QuoteAllColRefs bool

	// QuoteAllValues controls whether inlined string values are quoted.
	// Leave false if values are escaped and quoted by the caller.
	QuoteAllValues bool

	// ParameterizeLimit renders LIMIT counts as placeholders instead of
	// literal integers.
	ParameterizeLimit bool
}{
	Placeholder:     "?",
	QuoteChar:       '`',
	QuoteAllColRefs: true,
}

func init() {
	logger = logxi.New("mysqlstmt")
}
