package database

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"

	"github.com/skrylabs/skry/di"
	"github.com/skrylabs/skry/logger"
)

type account struct {
	ID      uint `gorm:"primaryKey"`
	Name    string
	Balance int
}

func openTestDB(t *testing.T) *DB {
	t.Helper()
	cfg := Config{DSN: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1}
	db, err := Open(sqlite.Open(cfg.DSN), cfg, logger.Nop())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.AutoMigrate(&account{}); err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}
	return db
}

func TestOpenValidatesConfig(t *testing.T) {
	if _, err := Open(sqlite.Open(":memory:"), Config{}, logger.Nop()); err == nil {
		t.Error("expected error for missing DSN")
	}
	if _, err := Open(sqlite.Open(":memory:"), Config{DSN: "x", ConnMaxLifetime: "soon"}, logger.Nop()); err == nil {
		t.Error("expected error for invalid conn_max_lifetime")
	}
}

func TestRepositoryCRUD(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewRepository[account](NewEntityManager(db.Gorm))

	a := &account{Name: "alice", Balance: 10}
	if err := repo.Insert(ctx, a); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if a.ID == 0 {
		t.Fatal("expected generated primary key")
	}

	loaded, err := repo.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if loaded == nil || loaded.Name != "alice" {
		t.Errorf("unexpected entity: %+v", loaded)
	}

	loaded.Balance = 25
	if err := repo.Save(ctx, loaded); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 1 || all[0].Balance != 25 {
		t.Errorf("unexpected list: %+v", all)
	}

	exists, err := repo.Exists(ctx, "name = ?", "alice")
	if err != nil || !exists {
		t.Errorf("expected alice to exist: %v %v", exists, err)
	}

	if err := repo.Delete(ctx, loaded); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	gone, err := repo.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID after delete failed: %v", err)
	}
	if gone != nil {
		t.Errorf("expected nil for deleted row, got %+v", gone)
	}
}

func TestInsertManyBatches(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewRepository[account](NewEntityManager(db.Gorm))

	rows := make([]account, 7)
	for i := range rows {
		rows[i].Name = "bulk"
	}
	if err := repo.InsertMany(ctx, rows, 3); err != nil {
		t.Fatalf("InsertMany failed: %v", err)
	}

	n, err := repo.Count(ctx, "name = ?", "bulk")
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 7 {
		t.Errorf("expected 7 rows, got %d", n)
	}
}

func TestSessionCommit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	sess, err := db.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := sess.Manager().Insert(ctx, &account{Name: "committed"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := sess.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	n, err := Count[account](ctx, NewEntityManager(db.Gorm), "name = ?", "committed")
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("committed row should be visible, count=%d", n)
	}

	// Closing after commit must not roll anything back.
	if err := sess.Close(); err != nil {
		t.Errorf("Close after Commit failed: %v", err)
	}
}

func TestSessionCloseRollsBack(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	sess, err := db.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := sess.Manager().Insert(ctx, &account{Name: "discarded"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := sess.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := sess.Close(); err != nil {
		t.Errorf("Close must be idempotent: %v", err)
	}

	n, err := Count[account](ctx, NewEntityManager(db.Gorm), "name = ?", "discarded")
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("uncommitted row leaked past Close, count=%d", n)
	}
}

func TestScopedSessionFactory(t *testing.T) {
	db := openTestDB(t)
	c := di.New(di.WithLogger(logger.Nop()))
	tok := di.For[*Session]()
	if err := c.Register(tok, ScopedSessionFactory(db), di.Scoped); err != nil {
		t.Fatal(err)
	}

	ctx, scope := c.EnterScope(context.Background())

	first, err := di.Resolve[*Session](ctx, c, tok)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	second, err := di.Resolve[*Session](ctx, c, tok)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if first != second {
		t.Error("expected one session per scope")
	}

	if err := first.Manager().Insert(ctx, &account{Name: "scoped"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := scope.Close(); err != nil {
		t.Fatalf("scope Close failed: %v", err)
	}

	n, err := Count[account](context.Background(), NewEntityManager(db.Gorm), "name = ?", "scoped")
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("scope disposal should roll the session back, count=%d", n)
	}
}
