package mysqlstmt

import (
	"testing"

	"gopkg.in/stretchr/testify.v1/assert"
)

func TestQuoteColRef(t *testing.T) {
	s := newStmt(nil)

	assert.Equal(t, "`col`", s.quoteColRef("col"))
	assert.Equal(t, "tab.`col`", s.quoteColRef("tab.col"))

	// expressions and pre-quoted references pass through
	assert.Equal(t, "*", s.quoteColRef("*"))
	assert.Equal(t, "t1.*", s.quoteColRef("t1.*"))
	assert.Equal(t, "COUNT(*)", s.quoteColRef("COUNT(*)"))
	assert.Equal(t, "a + b", s.quoteColRef("a + b"))
	assert.Equal(t, "`already`", s.quoteColRef("`already`"))
	assert.Equal(t, "", s.quoteColRef(""))
}

func TestQuoteColRefDisabled(t *testing.T) {
	s := newStmt([]Option{WithColRefQuoting(false)})
	assert.Equal(t, "col", s.quoteColRef("col"))
}

func TestQuoteColRefCustomChar(t *testing.T) {
	s := newStmt([]Option{WithQuoteChar('"')})
	assert.Equal(t, `"col"`, s.quoteColRef("col"))
	assert.Equal(t, `tab."col"`, s.quoteColRef("tab.col"))
	// already quoted with the active char
	assert.Equal(t, `"x"`, s.quoteColRef(`"x"`))
}

func TestQuoteValue(t *testing.T) {
	assert.Equal(t, "'abc'", QuoteValue("abc"))
	assert.Equal(t, `'it\'s'`, QuoteValue("it's"))
	assert.Equal(t, `'a\\b'`, QuoteValue(`a\b`))
}
