package repositories

import (
	"fmt"
	"strconv"
)

// Dialect captures the placeholder syntax difference between the SQL
// backends. Everything else is written in the common subset.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

func ParseDialect(s string) (Dialect, error) {
	switch Dialect(s) {
	case DialectSQLite, DialectPostgres:
		return Dialect(s), nil
	default:
		return "", fmt.Errorf("parse dialect: unsupported %q", s)
	}
}

// bind returns the n-th (1-based) placeholder.
func (d Dialect) bind(n int) string {
	if d == DialectPostgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}
