package db

import (
	"context"
	"testing"

	"github.com/verdande/dbgrip/internal/models"
)

func TestCreateTable_Postgres(t *testing.T) {
	fake := &fakeClient{engine: models.EnginePostgres}
	def := "0"
	cols := []models.ColumnSchema{
		{Name: "id", DataType: "integer", IsNullable: false, Default: &def},
		{Name: "name", DataType: "text", IsNullable: true},
	}

	if err := CreateTable(context.Background(), fake, "users", cols); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `CREATE TABLE "users" ("id" integer NOT NULL DEFAULT 0, "name" text)`
	if len(fake.executed) != 1 || fake.executed[0] != want {
		t.Errorf("expected %q, got %v", want, fake.executed)
	}
}

func TestCreateTable_NoColumns(t *testing.T) {
	fake := &fakeClient{engine: models.EnginePostgres}

	err := CreateTable(context.Background(), fake, "users", nil)
	if err == nil {
		t.Fatal("expected error for empty column list")
	}
	if KindOf(err) != KindConfig {
		t.Errorf("expected config kind, got %v", KindOf(err))
	}
	if len(fake.executed) != 0 {
		t.Errorf("expected no statement, got %v", fake.executed)
	}
}

func TestCreateIndex_MySQLQuoting(t *testing.T) {
	fake := &fakeClient{engine: models.EngineMySQL}

	if err := CreateIndex(context.Background(), fake, "orders", "user_id"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "CREATE INDEX `idx_orders_user_id` ON `orders` (`user_id`)"
	if len(fake.executed) != 1 || fake.executed[0] != want {
		t.Errorf("expected %q, got %v", want, fake.executed)
	}
}

func TestDropTable(t *testing.T) {
	fake := &fakeClient{engine: models.EnginePostgres}

	if err := DropTable(context.Background(), fake, "old_data"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `DROP TABLE IF EXISTS "old_data"`
	if len(fake.executed) != 1 || fake.executed[0] != want {
		t.Errorf("expected %q, got %v", want, fake.executed)
	}
}

func TestAddUniqueConstraint(t *testing.T) {
	fake := &fakeClient{engine: models.EnginePostgres}

	if err := AddUniqueConstraint(context.Background(), fake, "users", "email"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `ALTER TABLE "users" ADD CONSTRAINT "unique_users_email" UNIQUE ("email")`
	if len(fake.executed) != 1 || fake.executed[0] != want {
		t.Errorf("expected %q, got %v", want, fake.executed)
	}
}

func TestAddForeignKey(t *testing.T) {
	fake := &fakeClient{engine: models.EnginePostgres}

	if err := AddForeignKey(context.Background(), fake, "orders", "user_id", "users", "id"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `ALTER TABLE "orders" ADD CONSTRAINT "fk_orders_user_id" FOREIGN KEY ("user_id") REFERENCES "users" ("id")`
	if len(fake.executed) != 1 || fake.executed[0] != want {
		t.Errorf("expected %q, got %v", want, fake.executed)
	}
}

func TestQuoteIdent_EscapesQuotes(t *testing.T) {
	if got := quotePostgresIdent(`we"ird`); got != `"we""ird"` {
		t.Errorf("unexpected postgres quoting: %s", got)
	}
	if got := quoteMySQLIdent("we`ird"); got != "`we``ird`" {
		t.Errorf("unexpected mysql quoting: %s", got)
	}
}
