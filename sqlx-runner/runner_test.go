package runner

import (
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"gopkg.in/stretchr/testify.v1/assert"

	"mysqlstmt"
	"mysqlstmt/kvs"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	assert.NoError(t, err)
	return NewDB(db, "sqlmock"), mock
}

func TestExecBuilder(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("INSERT INTO t1 (`a`) VALUES (?)").
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(1, 1))

	res, err := db.Exec(mysqlstmt.InsertInto("t1").Set("a", 1))
	assert.NoError(t, err)
	affected, err := res.RowsAffected()
	assert.NoError(t, err)
	assert.EqualValues(t, 1, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecBuildError(t *testing.T) {
	db, _ := newMockDB(t)
	_, err := db.Exec(mysqlstmt.InsertInto("t1"))
	assert.Error(t, err)
}

func TestExecSQL(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("DELETE FROM t1 WHERE `id` = ?").
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := db.ExecSQL("DELETE FROM t1 WHERE `id` = ?", 7)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

type person struct {
	ID   int    `db:"id"`
	Name string `db:"name"`
}

func TestQueryStructs(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT `id`, `name` FROM people WHERE `id` IN (?, ?)").
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "mario").
			AddRow(2, "luigi"))

	var people []person
	err := db.QueryStructs(&people, mysqlstmt.Select("people").Columns("id", "name").Where("id", []int{1, 2}))
	assert.NoError(t, err)
	assert.Len(t, people, 2)
	assert.Equal(t, "mario", people[0].Name)
	assert.Equal(t, "luigi", people[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryStructNoRows(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT `id`, `name` FROM people WHERE `id` = ?").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	var p person
	err := db.QueryStruct(&p, mysqlstmt.Select("people").Columns("id", "name").Where("id", 99))
	assert.Equal(t, sql.ErrNoRows, err)
}

func TestQueryScalar(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT COUNT(*) FROM people").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	var count int
	err := db.QueryScalar(&count, mysqlstmt.Select("people").ColumnExpr("COUNT(*)"))
	assert.NoError(t, err)
	assert.Equal(t, 42, count)
}

func TestQueryJSON(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT `id`, `name` FROM people").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, []byte("mario")))

	blob, err := db.QueryJSON(mysqlstmt.Select("people").Columns("id", "name"))
	assert.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"name":"mario"}]`, string(blob))
}

func TestQueryObject(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT `id`, `name` FROM people").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "mario"))

	var people []map[string]interface{}
	err := db.QueryObject(&people, mysqlstmt.Select("people").Columns("id", "name"))
	assert.NoError(t, err)
	assert.Len(t, people, 1)
	assert.Equal(t, "mario", people[0]["name"])
}

func TestQueryJSONCached(t *testing.T) {
	db, mock := newMockDB(t)
	db.SetCache(kvs.NewMemoryKeyValueStore(time.Second))

	// only one round trip is expected; the second call is a cache hit
	mock.ExpectQuery("SELECT `id` FROM people").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	b := mysqlstmt.Select("people").Columns("id")
	first, err := db.QueryJSONCached("people.ids", kvs.TTLNever, b)
	assert.NoError(t, err)
	second, err := db.QueryJSONCached("people.ids", kvs.TTLNever, b)
	assert.NoError(t, err)
	assert.Equal(t, string(first), string(second))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionCommit(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE t1 SET `a` = ? WHERE `id` = ?").
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	assert.NoError(t, err)
	_, err = tx.Exec(mysqlstmt.Update("t1").Set("a", 1).Where("id", 2))
	assert.NoError(t, err)
	assert.NoError(t, tx.Commit())
	assert.Equal(t, ErrTxClosed, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionAutoRollback(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	tx, err := db.Begin()
	assert.NoError(t, err)
	assert.NoError(t, tx.AutoRollback())
	// committed or rolled back, AutoRollback is a no-op
	assert.NoError(t, tx.AutoRollback())
	assert.Equal(t, ErrTxClosed, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
