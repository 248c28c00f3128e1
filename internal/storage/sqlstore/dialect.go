package sqlstore

import (
	"fmt"
	"strconv"
)

// Dialect captures the few places where the supported databases disagree:
// bind-parameter syntax, DDL, case-insensitive matching, and how a new row id comes back.
type Dialect struct {
	Driver      string
	like        string
	returningID bool
	numbered    bool // $1, $2 ... instead of ?
	schema      []string
}

func (d Dialect) placeholder(n int) string {
	if d.numbered {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "mysql":
		return Dialect{Driver: driver, like: "LIKE", schema: mysqlSchema}, nil
	case "sqlite3":
		return Dialect{Driver: driver, like: "LIKE", schema: sqliteSchema}, nil
	case "pgx", "postgres":
		return Dialect{Driver: driver, like: "ILIKE", returningID: true, numbered: true, schema: postgresSchema}, nil
	default:
		return Dialect{}, fmt.Errorf("sqlstore: unsupported driver %q", driver)
	}
}
