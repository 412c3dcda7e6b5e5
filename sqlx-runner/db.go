package runner

import (
	"database/sql"
	"time"

	"github.com/cenkalti/backoff"
	_ "github.com/go-sql-driver/mysql" // registers the mysql driver
	"github.com/jmoiron/sqlx"

	"mysqlstmt/kvs"
)

// DB wraps a sqlx database handle.
type DB struct {
	DB *sqlx.DB
	*Queryable
}

// NewDB wraps an existing connection.
func NewDB(db *sql.DB, driverName string) *DB {
	d := sqlx.NewDb(db, driverName)
	return &DB{DB: d, Queryable: &Queryable{run: d}}
}

// Connect opens a mysql DSN and pings it with exponential backoff until the
// database answers or timeout elapses. Databases routinely come up after
// their dependents, so a failed first ping is not an error.
func Connect(dsn string, timeout time.Duration) (*DB, error) {
	d, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, logger.Error("could not open database", "err", err)
	}
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = timeout
	if err := backoff.Retry(d.Ping, policy); err != nil {
		return nil, logger.Error("could not ping database", "err", err)
	}
	return &DB{DB: d, Queryable: &Queryable{run: d}}, nil
}

// MustConnect is Connect, panicking on error.
func MustConnect(dsn string, timeout time.Duration) *DB {
	db, err := Connect(dsn, timeout)
	if err != nil {
		panic(err)
	}
	return db
}

// SetCache enables cached JSON queries on this handle and on transactions
// started from it.
func (db *DB) SetCache(store kvs.KeyValueStore) {
	db.cache = store
}

// Begin starts a transaction.
func (db *DB) Begin() (*Tx, error) {
	tx, err := db.DB.Beginx()
	if err != nil {
		return nil, logger.Error("begin failed", "err", err)
	}
	if logger.IsDebug() {
		logger.Debug("tx begin")
	}
	return &Tx{tx: tx, Queryable: &Queryable{run: tx, cache: db.cache}}, nil
}
