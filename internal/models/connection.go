package models

import "fmt"

// Engine identifies a supported database engine.
type Engine int

const (
	EnginePostgres Engine = iota
	EngineMySQL
	EngineSQLite
)

// Engines lists the selectable engines in menu order.
var Engines = []Engine{EnginePostgres, EngineMySQL, EngineSQLite}

func (e Engine) String() string {
	switch e {
	case EnginePostgres:
		return "PostgreSQL"
	case EngineMySQL:
		return "MySQL"
	case EngineSQLite:
		return "SQLite"
	default:
		return "Unknown"
	}
}

// Scheme returns the URL scheme for the engine.
func (e Engine) Scheme() string {
	switch e {
	case EnginePostgres:
		return "postgres"
	case EngineMySQL:
		return "mysql"
	case EngineSQLite:
		return "sqlite"
	default:
		return ""
	}
}

// DefaultDatabase returns the engine's well-known admin database, used for
// the initial connection before the operator has picked one.
func (e Engine) DefaultDatabase() string {
	switch e {
	case EnginePostgres:
		return "postgres"
	case EngineMySQL:
		return "mysql"
	default:
		return ""
	}
}

// Implemented reports whether a client exists for the engine. SQLite is a
// menu entry only; selecting it shows the not-implemented popup.
func (e Engine) Implemented() bool {
	return e == EnginePostgres || e == EngineMySQL
}

// ConnectionConfig is consumed by a single connect attempt and not retained
// afterwards; credentials live only in the input buffers and the URL.
type ConnectionConfig struct {
	Engine Engine
	URL    string
}

// BuildURL assembles "{scheme}://{user}:{password}@{host}[:{port}]/{database}".
// The port segment is omitted when port is empty.
func BuildURL(engine Engine, user, password, host, port, database string) string {
	hostPort := host
	if port != "" {
		hostPort = fmt.Sprintf("%s:%s", host, port)
	}
	return fmt.Sprintf("%s://%s:%s@%s/%s", engine.Scheme(), user, password, hostPort, database)
}
