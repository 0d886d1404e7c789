package testutil

import (
	"context"
	"database/sql"
	"testing"
)

// Every pooled connection must see the migrated tables, not just the one
// that ran the migration.
func TestSetupTestDBSharedAcrossConnections(t *testing.T) {
	db := SetupTestDB(t)
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get database instance: %v", err)
	}

	ctx := context.Background()
	conns := make([]*sql.Conn, 0, 3)
	for i := 0; i < 3; i++ {
		conn, err := sqlDB.Conn(ctx)
		if err != nil {
			t.Fatalf("Failed to open connection %d: %v", i, err)
		}
		conns = append(conns, conn)
	}
	defer func() {
		for _, conn := range conns {
			conn.Close()
		}
	}()

	for i, conn := range conns {
		var count int
		if err := conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM departments").Scan(&count); err != nil {
			t.Errorf("Connection %d cannot see migrated tables: %v", i, err)
		}
	}
}

func TestSetupTestDBIsolation(t *testing.T) {
	first := SetupTestDB(t)
	second := SetupTestDB(t)

	SeedAccount(t, first, "Acme", "ACM")

	var count int64
	if err := second.Table("accounts").Count(&count).Error; err != nil {
		t.Fatalf("Failed to count accounts: %v", err)
	}
	if count != 0 {
		t.Errorf("Second database should be empty, found %d accounts", count)
	}
}
