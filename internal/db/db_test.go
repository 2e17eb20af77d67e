package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/vergeframework/verge"
	"github.com/vergeframework/verge/internal/config"
)

// setupTestConn opens a connection to a fresh sqlite database under a
// temp directory. The embedded driver keeps these tests hermetic.
func setupTestConn(t *testing.T) *Conn {
	t.Helper()

	cfg := config.Database{
		Engine: config.EngineSQLite,
		Name:   filepath.Join(t.TempDir(), "test.db"),
	}
	conn, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := conn.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})
	return conn
}

func TestOpenSQLite(t *testing.T) {
	conn := setupTestConn(t)

	if conn.RawDB() == nil {
		t.Fatal("expected non-nil raw database handle")
	}
	if got := conn.Dialect().Name(); got != config.EngineSQLite {
		t.Errorf("dialect = %q, want %q", got, config.EngineSQLite)
	}
}

func TestOpenCreatesDatabaseDirectory(t *testing.T) {
	cfg := config.Database{
		Engine: config.EngineSQLite,
		Name:   filepath.Join(t.TempDir(), "nested", "deeper", "test.db"),
	}
	conn, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to open database in nested directory: %v", err)
	}
	defer conn.Close()
}

func TestCloseIsIdempotent(t *testing.T) {
	cfg := config.Database{
		Engine: config.EngineSQLite,
		Name:   filepath.Join(t.TempDir(), "test.db"),
	}
	conn, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := conn.Close(); err != nil {
		t.Fatalf("first close failed: %v", err)
	}
	if err := conn.Close(); err != nil {
		t.Errorf("second close failed: %v", err)
	}
}

func TestTableLifecycle(t *testing.T) {
	conn := setupTestConn(t)
	ctx := context.Background()

	m := verge.New("Post",
		verge.Text("title", verge.Indexed()),
		verge.Number("views"),
	)

	exists, err := conn.TableExists(ctx, "post")
	if err != nil {
		t.Fatalf("TableExists failed: %v", err)
	}
	if exists {
		t.Fatal("table should not exist before creation")
	}

	if err := conn.CreateTable(ctx, m); err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}

	exists, err = conn.TableExists(ctx, "post")
	if err != nil {
		t.Fatalf("TableExists failed: %v", err)
	}
	if !exists {
		t.Fatal("table should exist after creation")
	}
}

func TestIndexLifecycle(t *testing.T) {
	conn := setupTestConn(t)
	ctx := context.Background()

	m := verge.New("Post", verge.Text("title", verge.Indexed()))
	f := m.ModelFields()[0]

	if err := conn.CreateTable(ctx, m); err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}

	exists, err := conn.IndexExists(ctx, "post", "title_index")
	if err != nil {
		t.Fatalf("IndexExists failed: %v", err)
	}
	if exists {
		t.Fatal("index should not exist before creation")
	}

	if err := conn.CreateIndex(ctx, m, f); err != nil {
		t.Fatalf("CreateIndex failed: %v", err)
	}

	exists, err = conn.IndexExists(ctx, "post", "title_index")
	if err != nil {
		t.Fatalf("IndexExists failed: %v", err)
	}
	if !exists {
		t.Fatal("index should exist after creation")
	}
}

func TestCreateTableTwiceFails(t *testing.T) {
	conn := setupTestConn(t)
	ctx := context.Background()

	m := verge.New("Post", verge.Text("title"))

	if err := conn.CreateTable(ctx, m); err != nil {
		t.Fatalf("first CreateTable failed: %v", err)
	}
	if err := conn.CreateTable(ctx, m); err == nil {
		t.Fatal("expected error creating an existing table")
	}
}

func TestTableExistsIgnoresViews(t *testing.T) {
	conn := setupTestConn(t)
	ctx := context.Background()

	// A view occupying the name is not a table: existence must report
	// false, and the subsequent CREATE TABLE must fail.
	if _, err := conn.RawDB().ExecContext(ctx, `CREATE VIEW "post" AS SELECT 1 AS id`); err != nil {
		t.Fatalf("failed to create view: %v", err)
	}

	exists, err := conn.TableExists(ctx, "post")
	if err != nil {
		t.Fatalf("TableExists failed: %v", err)
	}
	if exists {
		t.Fatal("view must not count as a table")
	}

	m := verge.New("Post", verge.Text("title"))
	if err := conn.CreateTable(ctx, m); err == nil {
		t.Fatal("expected CreateTable to fail over an occupying view")
	}
}

func TestOpenUnreachableHost(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg := config.Database{
		Engine: config.EnginePostgres,
		Host:   "127.0.0.1",
		Port:   1,
		Name:   "nope",
	}
	_, err := Open(ctx, cfg)
	if err == nil {
		t.Fatal("expected connection to unreachable host to fail")
	}
	if !errors.Is(err, ErrConnect) {
		t.Errorf("expected ErrConnect, got %v", err)
	}
	if !IsConnectError(err) {
		t.Error("IsConnectError should report true")
	}
}

func TestOpenUnknownEngine(t *testing.T) {
	cfg := config.Database{Engine: "oracle", Name: "nope"}
	_, err := Open(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected error for unknown engine")
	}
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected config.ErrInvalid, got %v", err)
	}
	if IsConnectError(err) {
		t.Error("unknown engine is a configuration error, not a connection error")
	}
}
