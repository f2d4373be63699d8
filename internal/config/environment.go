package config

import (
	"os"

	"github.com/verdande/dbgrip/internal/models"
)

// ConnectionDefaults prefills the connection form from the conventional
// environment variables of the selected engine. Applied only when the form
// is built for a fresh screen entry; typed input is never overwritten.
type ConnectionDefaults struct {
	User     string
	Password string
	Host     string
	Port     string
}

// EnvDefaults reads the engine's environment variables. Missing variables
// fall back to localhost and the engine's default port.
func EnvDefaults(engine models.Engine) ConnectionDefaults {
	var d ConnectionDefaults
	switch engine {
	case models.EnginePostgres:
		d = ConnectionDefaults{
			User:     os.Getenv("PGUSER"),
			Password: os.Getenv("PGPASSWORD"),
			Host:     os.Getenv("PGHOST"),
			Port:     os.Getenv("PGPORT"),
		}
		if d.Port == "" {
			d.Port = "5432"
		}
	case models.EngineMySQL:
		d = ConnectionDefaults{
			User:     os.Getenv("MYSQL_USER"),
			Password: os.Getenv("MYSQL_PWD"),
			Host:     os.Getenv("MYSQL_HOST"),
			Port:     os.Getenv("MYSQL_TCP_PORT"),
		}
		if d.Port == "" {
			d.Port = "3306"
		}
	default:
		return d
	}

	if d.Host == "" {
		d.Host = "localhost"
	}
	return d
}
