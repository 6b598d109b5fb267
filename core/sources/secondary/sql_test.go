package secondary

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.Table("stock_balances").AutoMigrate(&BalanceRow{}))
	return db
}

func TestSQLSource_Snapshot(t *testing.T) {
	db := setupSQLite(t)
	rows := []BalanceRow{
		{SKU: "A", OnHand: 130, InOrder: 10, Physical: 150},
		{SKU: "B", OnHand: 5, InOrder: 5, Physical: 5, Stopped: 1},
		{SKU: "C", OnHand: 1},
	}
	require.NoError(t, db.Table("stock_balances").Create(&rows).Error)

	src := NewSQLSource(db, Config{Table: "stock_balances", BatchSize: 1})
	got, err := src.Snapshot(context.Background(), []string{"A", "B", "MISSING"})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, 120, got["A"].Unallocated())
	assert.Equal(t, 150, got["A"].Physical)
	assert.Equal(t, 1, got["B"].Stopped)
	assert.Equal(t, "sql", src.Name())
}

func TestSQLSource_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT .* FROM `stock_balances` WHERE sku IN").
		WillReturnError(errors.New("connection reset"))

	_, err := NewSQLSource(db, Config{Table: "stock_balances"}).Snapshot(context.Background(), []string{"A"})
	assert.ErrorContains(t, err, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLSource_NotConfigured(t *testing.T) {
	_, err := NewSQLSource(nil, Config{Table: "stock_balances"}).Snapshot(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
