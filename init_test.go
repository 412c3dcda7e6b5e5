package mysqlstmt

import (
	"testing"

	"gopkg.in/stretchr/testify.v1/assert"
)

func mustSQL(t *testing.T, b Builder) (string, []interface{}) {
	sql, args, err := b.ToSQL()
	assert.NoError(t, err)
	return sql, args
}

func assertErrSQL(t *testing.T, b Builder, want error) {
	sql, args, err := b.ToSQL()
	assert.Equal(t, want, err)
	assert.Empty(t, sql)
	assert.Nil(t, args)
}
