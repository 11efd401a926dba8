package config

import (
	"context"
	"fmt"
	"log"

	"pjhweb-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Tables in creation order; children follow the tables they reference.
var migrationModels = []interface{}{
	&models.Customer{},
	&models.Quote{},
	&models.QuoteHistory{},
	&models.Order{},
	&models.OrderDiary{},
	&models.Payment{},
}

// RunMigrations creates any missing table and adds columns introduced after
// a table was first created. It is safe to run on every start.
func RunMigrations(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)
	for _, model := range migrationModels {
		if err := migrateModel(db, model); err != nil {
			return err
		}
	}
	log.Println("✅ All migrations complete")
	return nil
}

func migrateModel(db *gorm.DB, model interface{}) error {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return fmt.Errorf("parse model %T: %w", model, err)
	}
	table := stmt.Schema.Table
	migrator := db.Migrator()

	if !migrator.HasTable(model) {
		if err := migrator.CreateTable(model); err != nil {
			return fmt.Errorf("create table %s: %w", table, err)
		}
		log.Printf("Created table %s", table)
		return nil
	}

	columns, err := migrator.ColumnTypes(model)
	if err != nil {
		return fmt.Errorf("read columns of %s: %w", table, err)
	}
	existing := make(map[string]bool, len(columns))
	for _, col := range columns {
		existing[col.Name()] = true
	}

	for _, field := range stmt.Schema.Fields {
		if field.DBName == "" || field.IgnoreMigration || field.PrimaryKey || existing[field.DBName] {
			continue
		}
		if field.NotNull && field.DefaultValue == "" {
			return fmt.Errorf("table %s is missing required column %s which has no default", table, field.DBName)
		}
		if err := migrator.AddColumn(model, field.DBName); err != nil {
			return fmt.Errorf("add column %s.%s: %w", table, field.DBName, err)
		}
		log.Printf("Added column %s.%s", table, field.DBName)

		if hasIndexTag(field) && !migrator.HasIndex(model, field.Name) {
			if err := migrator.CreateIndex(model, field.Name); err != nil {
				return fmt.Errorf("index %s.%s: %w", table, field.DBName, err)
			}
		}
	}
	return nil
}

func hasIndexTag(field *schema.Field) bool {
	_, index := field.TagSettings["INDEX"]
	_, unique := field.TagSettings["UNIQUEINDEX"]
	return index || unique
}
