package config

import (
	"testing"

	"github.com/verdande/dbgrip/internal/models"
)

func TestEnvDefaults_Postgres(t *testing.T) {
	t.Setenv("PGUSER", "alice")
	t.Setenv("PGPASSWORD", "secret")
	t.Setenv("PGHOST", "db.internal")
	t.Setenv("PGPORT", "5433")

	d := EnvDefaults(models.EnginePostgres)

	if d.User != "alice" || d.Password != "secret" || d.Host != "db.internal" || d.Port != "5433" {
		t.Errorf("unexpected defaults: %+v", d)
	}
}

func TestEnvDefaults_PostgresFallbacks(t *testing.T) {
	t.Setenv("PGUSER", "")
	t.Setenv("PGPASSWORD", "")
	t.Setenv("PGHOST", "")
	t.Setenv("PGPORT", "")

	d := EnvDefaults(models.EnginePostgres)

	if d.Host != "localhost" {
		t.Errorf("expected localhost fallback, got %q", d.Host)
	}
	if d.Port != "5432" {
		t.Errorf("expected default port, got %q", d.Port)
	}
}

func TestEnvDefaults_MySQL(t *testing.T) {
	t.Setenv("MYSQL_USER", "root")
	t.Setenv("MYSQL_PWD", "pw")
	t.Setenv("MYSQL_HOST", "")
	t.Setenv("MYSQL_TCP_PORT", "")

	d := EnvDefaults(models.EngineMySQL)

	if d.User != "root" || d.Password != "pw" {
		t.Errorf("unexpected credentials: %+v", d)
	}
	if d.Host != "localhost" || d.Port != "3306" {
		t.Errorf("unexpected host fallbacks: %+v", d)
	}
}

func TestEnvDefaults_SQLite(t *testing.T) {
	d := EnvDefaults(models.EngineSQLite)

	if d != (ConnectionDefaults{}) {
		t.Errorf("expected zero defaults for sqlite, got %+v", d)
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.UI.Theme == "" {
		t.Error("expected a default theme")
	}
	if cfg.Performance.ConnectTimeoutMS <= 0 || cfg.Performance.QueryTimeoutMS <= 0 {
		t.Errorf("expected positive timeouts, got %+v", cfg.Performance)
	}
}
