package config

import (
	"context"
	"fmt"
	"testing"

	"pjhweb-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestRunMigrationsCreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, RunMigrations(context.Background(), db))

	for _, table := range []string{"customers", "quotes", "quote_history", "orders", "order_diary", "payments"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, db.Create(&models.Customer{Name: "Jane", Email: "jane@example.com"}).Error)
	require.NoError(t, RunMigrations(ctx, db))

	var count int64
	require.NoError(t, db.Model(&models.Customer{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRunMigrationsAddsMissingOrderColumns(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Exec(`CREATE TABLE customers (
		id integer PRIMARY KEY AUTOINCREMENT,
		name varchar(255) NOT NULL,
		email varchar(255) NOT NULL
	)`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE orders (
		id integer PRIMARY KEY AUTOINCREMENT,
		customer_id integer NOT NULL,
		title varchar(255) NOT NULL,
		status varchar(20) DEFAULT 'in_progress',
		created_at datetime,
		updated_at datetime
	)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO customers (name, email) VALUES ('Jane', 'jane@example.com')`).Error)
	require.NoError(t, db.Exec(`INSERT INTO orders (customer_id, title, created_at, updated_at) VALUES (1, 'Old order', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`).Error)

	require.NoError(t, RunMigrations(ctx, db))

	for _, column := range []string{"items", "tasks", "diary", "deposit", "balance", "deposit_invoiced", "balance_invoiced", "quote_id"} {
		assert.True(t, db.Migrator().HasColumn(&models.Order{}, column), column)
	}
	for _, column := range []string{"business", "phone", "postcode", "notes"} {
		assert.True(t, db.Migrator().HasColumn(&models.Customer{}, column), column)
	}

	var order models.Order
	require.NoError(t, db.First(&order).Error)
	assert.Equal(t, "Old order", order.Title)
	assert.Empty(t, order.Diary)
	assert.False(t, order.DepositInvoiced)
	assert.True(t, db.Migrator().HasIndex(&models.Order{}, "QuoteID"))
}

func TestRunMigrationsRejectsMissingRequiredColumn(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Exec(`CREATE TABLE customers (
		id integer PRIMARY KEY AUTOINCREMENT,
		name varchar(255) NOT NULL
	)`).Error)

	err := RunMigrations(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "customers")
	assert.Contains(t, err.Error(), "email")
}
