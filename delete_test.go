package mysqlstmt

import (
	"testing"

	"gopkg.in/stretchr/testify.v1/assert"
)

func TestDeleteBasic(t *testing.T) {
	sql, args := mustSQL(t, DeleteFrom("t1").Where("id", 5))
	assert.Equal(t, "DELETE FROM t1 WHERE `id` = ?", sql)
	assert.Equal(t, []interface{}{5}, args)
}

func TestDeleteUnqualifiedGuard(t *testing.T) {
	assertErrSQL(t, DeleteFrom("t1"), ErrUnqualifiedDelete)

	sql, args := mustSQL(t, DeleteFrom("t1").AllowUnqualified())
	assert.Equal(t, "DELETE FROM t1", sql)
	assert.Nil(t, args)
}

func TestDeleteIgnore(t *testing.T) {
	sql, _ := mustSQL(t, DeleteFrom("t1").Ignore().Where("id", 1))
	assert.Equal(t, "DELETE IGNORE FROM t1 WHERE `id` = ?", sql)
}

func TestDeleteOrderByLimit(t *testing.T) {
	sql, _ := mustSQL(t, DeleteFrom("t1").Where("a", 1).OrderBy("id DESC").Limit(100))
	assert.Equal(t, "DELETE FROM t1 WHERE `a` = ? ORDER BY id DESC LIMIT 100", sql)
}

func TestDeleteMultiTableJoin(t *testing.T) {
	sql, args := mustSQL(t, DeleteFrom("t1").Join("t2", ".id").Where("t2.x", 1))
	assert.Equal(t, "DELETE FROM t1 USING t1 JOIN t2 ON (t1.`id` = t2.`id`) WHERE t2.`x` = ?", sql)
	assert.Equal(t, []interface{}{1}, args)
}

func TestDeleteMultiTargetsWithJoins(t *testing.T) {
	// joined tables must not be repeated in the USING list even when they
	// are also delete targets
	sql, args := mustSQL(t, DeleteFrom("t1").From("t2").
		Join("t2", ".t1c1").
		Join("t3", "..t1c1").
		Where("t3.x", 9))
	assert.Equal(t, "DELETE FROM t1, t2 USING t1 JOIN t2 ON (t1.`t1c1` = t2.`t1c1`) JOIN t3 ON (t2.`t1c1` = t3.`t1c1`) WHERE t3.`x` = ?", sql)
	assert.Equal(t, []interface{}{9}, args)
}

func TestDeleteMultiTableTargets(t *testing.T) {
	sql, _ := mustSQL(t, DeleteFrom("t1").From("t2").
		WhereRaw("t1.id", "=", "t2.id"))
	assert.Equal(t, "DELETE FROM t1, t2 USING t1, t2 WHERE t1.`id` = t2.id", sql)
}

func TestDeleteMultiTableClauseErrors(t *testing.T) {
	assertErrSQL(t, DeleteFrom("t1").Join("t2", ".id").Where("a", 1).Limit(1), ErrMultiTableClause)
	assertErrSQL(t, DeleteFrom("t1").From("t2").WhereRaw("t1.id", "=", "t2.id").OrderBy("id"), ErrMultiTableClause)
}

func TestDeleteNoTable(t *testing.T) {
	assertErrSQL(t, DeleteFrom(""), ErrNoTable)
}

func TestDeleteWhereIn(t *testing.T) {
	sql, args := mustSQL(t, DeleteFrom("t1").Where("id", []int{1, 2}))
	assert.Equal(t, "DELETE FROM t1 WHERE `id` IN (?, ?)", sql)
	assert.Equal(t, []interface{}{1, 2}, args)
}

func TestDeleteToSQLIsIdempotent(t *testing.T) {
	b := DeleteFrom("t1").Where("id", []int{1, 2}).OrderBy("id").Limit(10)
	sql1, args1 := mustSQL(t, b)
	sql2, args2 := mustSQL(t, b)
	assert.Equal(t, sql1, sql2)
	assert.Equal(t, args1, args2)
}

func TestDeleteInline(t *testing.T) {
	sql, args := mustSQL(t, DeleteFrom("t1", WithoutPlaceholders()).Where("id", 5))
	assert.Equal(t, "DELETE FROM t1 WHERE `id` = 5", sql)
	assert.Nil(t, args)
}
