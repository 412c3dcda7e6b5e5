// Package runner executes mysqlstmt builders against a live database via
// jmoiron/sqlx. It is a thin layer: builders stay usable without it.
package runner

import (
	"time"

	"github.com/mgutz/logxi"
)

var logger logxi.Logger

// LogQueriesThreshold warns on queries slower than this. Zero disables the
// slow-query warning.
var LogQueriesThreshold time.Duration

func init() {
	logger = logxi.New("mysqlstmt.runner")
}
