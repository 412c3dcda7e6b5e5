package runner

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"mysqlstmt"
	"mysqlstmt/kvs"
)

// database is the subset of sqlx.DB and sqlx.Tx the runner needs.
type database interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Queryx(query string, args ...interface{}) (*sqlx.Rows, error)
	QueryRowx(query string, args ...interface{}) *sqlx.Row
	Select(dest interface{}, query string, args ...interface{}) error
	Get(dest interface{}, query string, args ...interface{}) error
}

// Queryable executes builders against a database or transaction.
type Queryable struct {
	run   database
	cache kvs.KeyValueStore
}

// Exec executes the statement built by b.
func (q *Queryable) Exec(b mysqlstmt.Builder) (sql.Result, error) {
	fullSQL, args, err := b.ToSQL()
	if err != nil {
		return nil, logger.Error("exec: building statement failed", "err", err)
	}
	defer logExecutionTime(time.Now(), fullSQL, args)

	result, err := q.run.Exec(fullSQL, args...)
	if err != nil {
		return nil, logSQLError(err, "exec", fullSQL, args)
	}
	return result, nil
}

// ExecSQL executes a plain statement.
func (q *Queryable) ExecSQL(fullSQL string, args ...interface{}) (sql.Result, error) {
	defer logExecutionTime(time.Now(), fullSQL, args)

	result, err := q.run.Exec(fullSQL, args...)
	if err != nil {
		return nil, logSQLError(err, "execSQL", fullSQL, args)
	}
	return result, nil
}

// QueryStructs runs the query built by b and scans all rows into dest, which
// must be a pointer to a slice of structs.
func (q *Queryable) QueryStructs(dest interface{}, b mysqlstmt.Builder) error {
	fullSQL, args, err := b.ToSQL()
	if err != nil {
		return logger.Error("queryStructs: building statement failed", "err", err)
	}
	defer logExecutionTime(time.Now(), fullSQL, args)

	if err := q.run.Select(dest, fullSQL, args...); err != nil {
		return logSQLError(err, "queryStructs", fullSQL, args)
	}
	return nil
}

// QueryStruct runs the query built by b and scans the first row into dest.
// Returns sql.ErrNoRows when the query matches nothing.
func (q *Queryable) QueryStruct(dest interface{}, b mysqlstmt.Builder) error {
	fullSQL, args, err := b.ToSQL()
	if err != nil {
		return logger.Error("queryStruct: building statement failed", "err", err)
	}
	defer logExecutionTime(time.Now(), fullSQL, args)

	if err := q.run.Get(dest, fullSQL, args...); err != nil {
		return logSQLError(err, "queryStruct", fullSQL, args)
	}
	return nil
}

// QueryScalar runs the query built by b and scans the first column of the
// first row into dest.
func (q *Queryable) QueryScalar(dest interface{}, b mysqlstmt.Builder) error {
	return q.QueryStruct(dest, b)
}

// QueryJSON runs the query built by b and returns the rows as a JSON array
// of objects keyed by column name.
func (q *Queryable) QueryJSON(b mysqlstmt.Builder) ([]byte, error) {
	fullSQL, args, err := b.ToSQL()
	if err != nil {
		return nil, logger.Error("queryJSON: building statement failed", "err", err)
	}
	defer logExecutionTime(time.Now(), fullSQL, args)

	rows, err := q.run.Queryx(fullSQL, args...)
	if err != nil {
		return nil, logSQLError(err, "queryJSON", fullSQL, args)
	}
	defer rows.Close()

	var out []map[string]interface{}
	for rows.Next() {
		row := map[string]interface{}{}
		if err := rows.MapScan(row); err != nil {
			return nil, logSQLError(err, "queryJSON: scan", fullSQL, args)
		}
		// mysql returns text columns as []byte
		for k, v := range row {
			if bs, ok := v.([]byte); ok {
				row[k] = string(bs)
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, logSQLError(err, "queryJSON: rows", fullSQL, args)
	}
	return json.Marshal(out)
}

// QueryObject runs the query built by b and unmarshals the JSON rows into
// dest.
func (q *Queryable) QueryObject(dest interface{}, b mysqlstmt.Builder) error {
	blob, err := q.QueryJSON(b)
	if err != nil {
		return err
	}
	return json.Unmarshal(blob, dest)
}

// QueryJSONCached is QueryJSON backed by the configured key-value store.
// With an empty id the cache key is a hash of the statement and its args.
// Without a store it falls through to QueryJSON.
func (q *Queryable) QueryJSONCached(id string, ttl time.Duration, b mysqlstmt.Builder) ([]byte, error) {
	if q.cache == nil {
		return q.QueryJSON(b)
	}

	key := id
	if key == "" {
		fullSQL, args, err := b.ToSQL()
		if err != nil {
			return nil, logger.Error("queryJSONCached: building statement failed", "err", err)
		}
		key = kvs.Hash(fullSQL + fmt.Sprint(args...))
	}

	cached, err := q.cache.Get(key)
	if err == nil {
		return []byte(cached), nil
	}
	if err != kvs.ErrNotFound {
		logger.Warn("queryJSONCached: cache get failed", "key", key, "err", err)
	}

	blob, err := q.QueryJSON(b)
	if err != nil {
		return nil, err
	}
	if err := q.cache.Set(key, string(blob), ttl); err != nil {
		logger.Warn("queryJSONCached: cache set failed", "key", key, "err", err)
	}
	return blob, nil
}

func logExecutionTime(start time.Time, fullSQL string, args []interface{}) {
	elapsed := time.Since(start)
	if LogQueriesThreshold > 0 && elapsed > LogQueriesThreshold && logger.IsWarn() {
		logger.Warn("SLOW query", "elapsed", elapsed.String(), "sql", fullSQL, "args", toOutputStr(args))
		return
	}
	if logger.IsInfo() {
		logger.Info("query", "elapsed", elapsed.Nanoseconds(), "sql", fullSQL)
	}
}

func logSQLError(err error, msg, statement string, args []interface{}) error {
	if err == sql.ErrNoRows {
		if logger.IsDebug() {
			logger.Debug(msg, "err", err, "sql", statement, "args", toOutputStr(args))
		}
		return err
	}
	return logger.Error(msg, "err", err, "sql", statement, "args", toOutputStr(args))
}

func toOutputStr(args []interface{}) string {
	if len(args) == 0 {
		return "nil"
	}
	out := ""
	for i, arg := range args {
		if i > 0 {
			out += " "
		}
		switch t := arg.(type) {
		case []byte:
			out += fmt.Sprintf("?%d=<binary>", i+1)
		default:
			out += fmt.Sprintf("?%d=%v", i+1, t)
		}
	}
	return out
}
