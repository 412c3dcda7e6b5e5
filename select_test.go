package mysqlstmt

import (
	"testing"

	"gopkg.in/stretchr/testify.v1/assert"
)

func BenchmarkSelectBasicSQL(b *testing.B) {
	in := []int{1, 2, 3}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Select("some_table").
			Columns("something_id", "user_id", "other").
			Where("d", 1).
			Where("e", "wat").
			Where("a", in).
			OrderBy("id DESC").
			Limit(20).
			ToSQL()
	}
}

func TestSelectBasic(t *testing.T) {
	sql, args := mustSQL(t, Select("t1").Columns("t1c1"))
	assert.Equal(t, "SELECT `t1c1` FROM t1", sql)
	assert.Nil(t, args)
}

func TestSelectStar(t *testing.T) {
	sql, args := mustSQL(t, Select("t1"))
	assert.Equal(t, "SELECT * FROM t1", sql)
	assert.Nil(t, args)
}

func TestSelectNoColumnsNoTable(t *testing.T) {
	assertErrSQL(t, Select(""), ErrNoColumns)
}

func TestSelectMultipleColumns(t *testing.T) {
	sql, _ := mustSQL(t, Select("t1").Columns("a", "b").Column("c"))
	assert.Equal(t, "SELECT `a`, `b`, `c` FROM t1", sql)
}

func TestSelectColumnAlias(t *testing.T) {
	sql, _ := mustSQL(t, Select("t1").Column("a AS x"))
	assert.Equal(t, "SELECT `a` AS `x` FROM t1", sql)
}

func TestSelectColumnExpr(t *testing.T) {
	sql, args := mustSQL(t, Select("").ColumnExpr("1+1"))
	assert.Equal(t, "SELECT 1+1", sql)
	assert.Nil(t, args)

	sql, args = mustSQL(t, Select("t1").ColumnExprAs("COALESCE(a, ?)", "a", 0))
	assert.Equal(t, "SELECT COALESCE(a, ?) AS `a` FROM t1", sql)
	assert.Equal(t, []interface{}{0}, args)
}

func TestSelectRepeatedColumnIsKept(t *testing.T) {
	sql, _ := mustSQL(t, Select("t1").Columns("a", "a"))
	assert.Equal(t, "SELECT `a`, `a` FROM t1", sql)
}

func TestSelectRemoveColumn(t *testing.T) {
	sql, _ := mustSQL(t, Select("t1").Columns("a", "b").RemoveColumn("a"))
	assert.Equal(t, "SELECT `b` FROM t1", sql)
}

func TestSelectQualifyColumns(t *testing.T) {
	sql, _ := mustSQL(t, Select("t1").Columns("a", "b").QualifyColumns("t1"))
	assert.Equal(t, "SELECT t1.`a`, t1.`b` FROM t1", sql)

	sql, _ = mustSQL(t, Select("t1").Columns("a", "b").QualifyColumns("t1", "b"))
	assert.Equal(t, "SELECT `a`, t1.`b` FROM t1", sql)
}

func TestSelectDistinct(t *testing.T) {
	sql, _ := mustSQL(t, Select("t1").Distinct().Columns("a"))
	assert.Equal(t, "SELECT DISTINCT `a` FROM t1", sql)
}

func TestSelectOptions(t *testing.T) {
	sql, _ := mustSQL(t, Select("t1").SetOption("SQL_NO_CACHE").Columns("a"))
	assert.Equal(t, "SELECT SQL_NO_CACHE `a` FROM t1", sql)
}

func TestSelectFromAlias(t *testing.T) {
	sql, _ := mustSQL(t, Select("").FromAlias("t1", "a1").Columns("a1.c1"))
	assert.Equal(t, "SELECT a1.`c1` FROM t1 AS a1", sql)
}

func TestSelectMultipleTables(t *testing.T) {
	sql, _ := mustSQL(t, Select("t1").From("t2").Columns("t1.a", "t2.b"))
	assert.Equal(t, "SELECT t1.`a`, t2.`b` FROM t1, t2", sql)
}

func TestSelectFromSelect(t *testing.T) {
	sub := Select("t1").Columns("a").Where("b", 1)
	sql, args := mustSQL(t, Select("").FromSelect(sub, "x").Columns("a"))
	assert.Equal(t, "SELECT `a` FROM (SELECT `a` FROM t1 WHERE `b` = ?) AS x", sql)
	assert.Equal(t, []interface{}{1}, args)

	assertErrSQL(t, Select("").FromSelect(Select("t1"), ""), ErrAliasRequired)
}

func TestSelectFromSelectArgOrder(t *testing.T) {
	sub := Select("t1").Columns("a").Where("b", 1)
	sql, args := mustSQL(t, Select("").FromSelect(sub, "x").Columns("a").Where("a", 2))
	assert.Equal(t, "SELECT `a` FROM (SELECT `a` FROM t1 WHERE `b` = ?) AS x WHERE `a` = ?", sql)
	assert.Equal(t, []interface{}{1, 2}, args)
}

func TestSelectWhere(t *testing.T) {
	sql, args := mustSQL(t, Select("t1").Columns("t1c1").Where("t1c1", 1))
	assert.Equal(t, "SELECT `t1c1` FROM t1 WHERE `t1c1` = ?", sql)
	assert.Equal(t, []interface{}{1}, args)
}

func TestSelectWhereAndsTogether(t *testing.T) {
	sql, args := mustSQL(t, Select("t1").Columns("a").Where("b", 1).Where("c", 2))
	assert.Equal(t, "SELECT `a` FROM t1 WHERE (`b` = ? AND `c` = ?)", sql)
	assert.Equal(t, []interface{}{1, 2}, args)
}

func TestSelectWhereOrGroup(t *testing.T) {
	sql, args := mustSQL(t, Select("t1").Columns("a").
		Where("b", 1).
		WhereOr().Where("c", 2).Where("d", 3))
	assert.Equal(t, "SELECT `a` FROM t1 WHERE (`b` = ? OR (`c` = ? OR `d` = ?))", sql)
	assert.Equal(t, []interface{}{1, 2, 3}, args)
}

func TestSelectWhereEmptyGroupElided(t *testing.T) {
	sql, args := mustSQL(t, Select("t1").Columns("a").WhereAnd().WhereOr().Where("b", 1))
	assert.Equal(t, "SELECT `a` FROM t1 WHERE `b` = ?", sql)
	assert.Equal(t, []interface{}{1}, args)
}

func TestSelectWhereCond(t *testing.T) {
	cond := NewCond("AND")
	cond.Eq("x", 1)
	cond.Or().Eq("y", 2).Eq("z", 3)

	sql, args := mustSQL(t, Select("t1").Columns("a").WhereCond(cond))
	assert.Equal(t, "SELECT `a` FROM t1 WHERE (`x` = ? AND (`y` = ? OR `z` = ?))", sql)
	assert.Equal(t, []interface{}{1, 2, 3}, args)
}

func TestSelectWhereOps(t *testing.T) {
	sql, args := mustSQL(t, Select("t1").Columns("a").
		WhereOp("b", "<", 10).
		WhereOp("c", ">=", 20).
		WhereOp("d", "LIKE", "x%"))
	assert.Equal(t, "SELECT `a` FROM t1 WHERE (`b` < ? AND `c` >= ? AND `d` LIKE ?)", sql)
	assert.Equal(t, []interface{}{10, 20, "x%"}, args)
}

func TestSelectWhereInvalidOp(t *testing.T) {
	assertErrSQL(t, Select("t1").Columns("a").WhereOp("b", "===", 1), ErrInvalidOperator)
}

func TestSelectWhereNull(t *testing.T) {
	sql, args := mustSQL(t, Select("t1").Columns("a").Where("b", nil).WhereOp("c", "<>", nil))
	assert.Equal(t, "SELECT `a` FROM t1 WHERE (`b` IS NULL AND `c` IS NOT NULL)", sql)
	assert.Nil(t, args)
}

func TestSelectWhereIn(t *testing.T) {
	sql, args := mustSQL(t, Select("t1").Columns("a").Where("b", []int{1, 2, 3}))
	assert.Equal(t, "SELECT `a` FROM t1 WHERE `b` IN (?, ?, ?)", sql)
	assert.Equal(t, []interface{}{1, 2, 3}, args)
}

func TestSelectWhereNotIn(t *testing.T) {
	sql, args := mustSQL(t, Select("t1").Columns("a").WhereOp("b", "NOT IN", []string{"x", "y"}))
	assert.Equal(t, "SELECT `a` FROM t1 WHERE `b` NOT IN (?, ?)", sql)
	assert.Equal(t, []interface{}{"x", "y"}, args)
}

func TestSelectWhereInSingleElementCollapses(t *testing.T) {
	sql, args := mustSQL(t, Select("t1").Columns("a").Where("b", []int{7}))
	assert.Equal(t, "SELECT `a` FROM t1 WHERE `b` = ?", sql)
	assert.Equal(t, []interface{}{7}, args)

	sql, args = mustSQL(t, Select("t1").Columns("a").WhereOp("b", "NOT IN", []int{7}))
	assert.Equal(t, "SELECT `a` FROM t1 WHERE `b` <> ?", sql)
	assert.Equal(t, []interface{}{7}, args)
}

func TestSelectWhereInEmptyGuard(t *testing.T) {
	sql, args := mustSQL(t, Select("t1").Columns("a").Where("b", []int{}))
	assert.Equal(t, "SELECT `a` FROM t1 WHERE 1=0", sql)
	assert.Nil(t, args)

	sql, _ = mustSQL(t, Select("t1").Columns("a").WhereOp("b", "NOT IN", []int{}))
	assert.Equal(t, "SELECT `a` FROM t1 WHERE 1=1", sql)
}

func TestSelectWhereInScalarIsError(t *testing.T) {
	assertErrSQL(t, Select("t1").Columns("a").WhereOp("b", "IN", 1), ErrInvalidOperator)
}

func TestSelectWhereEq(t *testing.T) {
	sql, args := mustSQL(t, Select("t1").Columns("a").WhereEq(Eq{"b": 2, "a": 1}))
	assert.Equal(t, "SELECT `a` FROM t1 WHERE (`a` = ? AND `b` = ?)", sql)
	assert.Equal(t, []interface{}{1, 2}, args)
}

func TestSelectWhereRaw(t *testing.T) {
	sql, args := mustSQL(t, Select("t1").Columns("a").WhereRaw("b", ">", "(SELECT MAX(x) FROM t2)"))
	assert.Equal(t, "SELECT `a` FROM t1 WHERE `b` > (SELECT MAX(x) FROM t2)", sql)
	assert.Nil(t, args)
}

func TestSelectWhereExpr(t *testing.T) {
	sql, args := mustSQL(t, Select("t1").Columns("a").WhereExpr("b = c + ?", 1))
	assert.Equal(t, "SELECT `a` FROM t1 WHERE b = c + ?", sql)
	assert.Equal(t, []interface{}{1}, args)
}

func TestSelectWhereBetween(t *testing.T) {
	sql, args := mustSQL(t, Select("t1").Columns("a").WhereBetween("b", 1, 10))
	assert.Equal(t, "SELECT `a` FROM t1 WHERE `b` BETWEEN ? AND ?", sql)
	assert.Equal(t, []interface{}{1, 10}, args)
}

func TestSelectWhereExpressionValue(t *testing.T) {
	sql, args := mustSQL(t, Select("t1").Columns("a").Where("b", Expr("c + ?", 1)))
	assert.Equal(t, "SELECT `a` FROM t1 WHERE `b` = c + ?", sql)
	assert.Equal(t, []interface{}{1}, args)
}

func TestSelectWhereSubquery(t *testing.T) {
	sub := Select("t2").Columns("b").Where("c", 1)
	sql, args := mustSQL(t, Select("t1").Columns("a").WhereSelect("b", "IN", sub))
	assert.Equal(t, "SELECT `a` FROM t1 WHERE `b` IN (SELECT `b` FROM t2 WHERE `c` = ?)", sql)
	assert.Equal(t, []interface{}{1}, args)
}

func TestSelectGroupByHaving(t *testing.T) {
	sql, args := mustSQL(t, Select("t1").Columns("a").
		GroupBy("a").
		HavingOp("COUNT(*)", ">", 5))
	assert.Equal(t, "SELECT `a` FROM t1 GROUP BY `a` HAVING COUNT(*) > ?", sql)
	assert.Equal(t, []interface{}{5}, args)
}

func TestSelectHavingGroups(t *testing.T) {
	sql, args := mustSQL(t, Select("t1").Columns("a").
		GroupBy("a").
		Having("b", 1).
		HavingOr().Having("c", 2).Having("d", 3))
	assert.Equal(t, "SELECT `a` FROM t1 GROUP BY `a` HAVING (`b` = ? OR (`c` = ? OR `d` = ?))", sql)
	assert.Equal(t, []interface{}{1, 2, 3}, args)
}

func TestSelectOrderByLimit(t *testing.T) {
	sql, args := mustSQL(t, Select("t1").Columns("a").OrderBy("a", "b DESC").Limit(10))
	assert.Equal(t, "SELECT `a` FROM t1 ORDER BY `a`, b DESC LIMIT 10", sql)
	assert.Nil(t, args)
}

func TestSelectLimitOffset(t *testing.T) {
	sql, _ := mustSQL(t, Select("t1").Columns("a").Limit(5).Offset(10))
	assert.Equal(t, "SELECT `a` FROM t1 LIMIT 10, 5", sql)
}

func TestSelectOffsetWithoutLimit(t *testing.T) {
	assertErrSQL(t, Select("t1").Columns("a").Offset(10), ErrOffsetWithoutLimit)
}

func TestSelectNegativeLimit(t *testing.T) {
	assertErrSQL(t, Select("t1").Columns("a").Limit(-1), ErrNegativeLimit)
}

func TestSelectParameterizedLimit(t *testing.T) {
	sql, args := mustSQL(t, Select("t1", WithParameterizedLimit(true)).Columns("a").Limit(10))
	assert.Equal(t, "SELECT `a` FROM t1 LIMIT ?", sql)
	assert.Equal(t, []interface{}{10}, args)

	sql, args = mustSQL(t, Select("t1", WithParameterizedLimit(true)).Columns("a").Limit(5).Offset(10))
	assert.Equal(t, "SELECT `a` FROM t1 LIMIT ?, ?", sql)
	assert.Equal(t, []interface{}{10, 5}, args)
}

func TestSelectJoinUsing(t *testing.T) {
	sql, _ := mustSQL(t, Select("t1").Columns("t1c1").LeftJoin("t2", "t1c1"))
	assert.Equal(t, "SELECT `t1c1` FROM t1 LEFT JOIN t2 USING (`t1c1`)", sql)
}

func TestSelectJoinUsingMulti(t *testing.T) {
	sql, _ := mustSQL(t, Select("t1").Columns("a").Join("t2", Using("a", "b")))
	assert.Equal(t, "SELECT `a` FROM t1 JOIN t2 USING (`a`, `b`)", sql)
}

func TestSelectJoinDottedRoot(t *testing.T) {
	sql, _ := mustSQL(t, Select("t1").Columns("a").LeftJoin("t2", ".t1c1"))
	assert.Equal(t, "SELECT `a` FROM t1 LEFT JOIN t2 ON (t1.`t1c1` = t2.`t1c1`)", sql)
}

func TestSelectJoinDottedPrevious(t *testing.T) {
	sql, _ := mustSQL(t, Select("t1").Columns("a").
		Join("t2", ".c1").
		Join("t3", "..c2"))
	assert.Equal(t, "SELECT `a` FROM t1 JOIN t2 ON (t1.`c1` = t2.`c1`) JOIN t3 ON (t2.`c2` = t3.`c2`)", sql)
}

func TestSelectJoinOnConditions(t *testing.T) {
	sql, _ := mustSQL(t, Select("t1").Columns("a").Join("t2", []string{"t1.c1 = t2.c1", "t2.x > 0"}))
	assert.Equal(t, "SELECT `a` FROM t1 JOIN t2 ON (t1.c1 = t2.c1 AND t2.x > 0)", sql)
}

func TestSelectJoinOnPair(t *testing.T) {
	sql, _ := mustSQL(t, Select("t1").Columns("a").Join("t2", OnEq(".c1", ".c2")))
	assert.Equal(t, "SELECT `a` FROM t1 JOIN t2 ON (t1.`c1` = t2.`c2`)", sql)
}

func TestSelectJoinAliases(t *testing.T) {
	sql, _ := mustSQL(t, Select("").FromAlias("t1", "a1").Columns("x").Join("t2 AS a2", ".c1"))
	assert.Equal(t, "SELECT `x` FROM t1 AS a1 JOIN t2 AS a2 ON (a1.`c1` = a2.`c1`)", sql)
}

func TestSelectJoinLowercaseAliases(t *testing.T) {
	sql, _ := mustSQL(t, Select("t1 as a1").Columns("x").Join("t2 as a2", ".c1"))
	assert.Equal(t, "SELECT `x` FROM t1 as a1 JOIN t2 as a2 ON (a1.`c1` = a2.`c1`)", sql)
}

func TestSelectJoinType(t *testing.T) {
	sql, _ := mustSQL(t, Select("t1").Columns("a").JoinType("STRAIGHT_JOIN", "t2", "c1"))
	assert.Equal(t, "SELECT `a` FROM t1 STRAIGHT_JOIN t2 USING (`c1`)", sql)
}

func TestSelectJoinWithoutTable(t *testing.T) {
	assertErrSQL(t, Select("").Columns("a").Join("t2", "c1"), ErrNoTable)
}

func TestSelectJoinInvalidCond(t *testing.T) {
	assertErrSQL(t, Select("t1").Columns("a").Join("t2", 42), ErrInvalidJoinCond)
	assertErrSQL(t, Select("t1").Columns("a").Join("t2", nil), ErrInvalidJoinCond)
}

func TestSelectInline(t *testing.T) {
	sql, args := mustSQL(t, Select("t1", WithoutPlaceholders(), WithValueQuoting(true)).
		Columns("a").
		Where("b", 1).
		Where("c", "it's"))
	assert.Equal(t, "SELECT `a` FROM t1 WHERE (`b` = 1 AND `c` = 'it\\'s')", sql)
	assert.Nil(t, args)
}

func TestSelectInlineUnquotedValues(t *testing.T) {
	sql, _ := mustSQL(t, Select("t1", WithoutPlaceholders()).Columns("a").Where("b", "'x'"))
	assert.Equal(t, "SELECT `a` FROM t1 WHERE `b` = 'x'", sql)
}

func TestSelectWithoutColRefQuoting(t *testing.T) {
	sql, _ := mustSQL(t, Select("t1", WithColRefQuoting(false)).Columns("a").Where("b", 1))
	assert.Equal(t, "SELECT a FROM t1 WHERE b = ?", sql)
}

func TestSelectQuoteChar(t *testing.T) {
	sql, _ := mustSQL(t, Select("t1", WithQuoteChar('"')).Columns("a"))
	assert.Equal(t, `SELECT "a" FROM t1`, sql)
}

func TestSelectToSQLIsIdempotent(t *testing.T) {
	b := Select("t1").Columns("a").Where("b", []int{1, 2}).GroupBy("a").OrderBy("a").Limit(3)
	sql1, args1 := mustSQL(t, b)
	sql2, args2 := mustSQL(t, b)
	assert.Equal(t, sql1, sql2)
	assert.Equal(t, args1, args2)
}
