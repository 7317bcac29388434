package eventlog

import (
	"fmt"
	"os"
)

// Driver identifies a concrete event log implementation.
type Driver string

const (
	DriverMemory   Driver = "memory"   // in-memory only (tests / ephemeral)
	DriverSQLite   Driver = "sqlite"   // embedded sqlite file
	DriverPostgres Driver = "postgres" // PostgreSQL server
)

// Open selects a backend using environment variables. Defaults to sqlite
// when unset.
//
//	EPICORE_EVENTLOG_DRIVER: memory|sqlite|postgres (default sqlite)
//	EPICORE_EVENTLOG_SQLITE_PATH: path to sqlite file (default ./epicore.db)
//	EPICORE_EVENTLOG_POSTGRES_DSN: postgres DSN when driver=postgres
func Open() (Log, error) {
	driver := os.Getenv("EPICORE_EVENTLOG_DRIVER")
	if driver == "" {
		driver = string(DriverSQLite)
	}
	switch Driver(driver) {
	case DriverMemory:
		return NewMemoryLog(), nil
	case DriverSQLite:
		return NewSQLiteLog(os.Getenv("EPICORE_EVENTLOG_SQLITE_PATH"))
	case DriverPostgres:
		return NewPostgresLog(os.Getenv("EPICORE_EVENTLOG_POSTGRES_DSN"))
	default:
		return nil, fmt.Errorf("unknown eventlog driver %s", driver)
	}
}
