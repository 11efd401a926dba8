package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"pjhweb-backend/config"
	"pjhweb-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, config.RunMigrations(context.Background(), db))
	return db
}

func createCustomer(t *testing.T, db *gorm.DB, business string) *models.Customer {
	t.Helper()
	customer := &models.Customer{Name: "Jane Doe", Email: "jane@example.com"}
	if business != "" {
		customer.Business = &business
	}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func sampleQuote() QuoteInput {
	return QuoteInput{
		Title: "Website rebuild",
		Items: []models.LineItem{
			{Description: "Design", Quantity: 1, Price: 400},
			{Description: "Pages", Quantity: 5, Price: 120},
		},
		Deposit: 250,
	}
}

func historyFor(t *testing.T, db *gorm.DB, quoteID uint) []models.QuoteHistory {
	t.Helper()
	var rows []models.QuoteHistory
	require.NoError(t, db.Where("quote_id = ?", quoteID).Order("id").Find(&rows).Error)
	return rows
}

type sentMessage struct {
	To      string
	Subject string
	Body    string
}

type fakeNotifier struct {
	mu       sync.Mutex
	emails   []sentMessage
	sms      []sentMessage
	emailErr error
	smsErr   error
}

func (f *fakeNotifier) SendEmail(ctx context.Context, to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.emailErr != nil {
		return f.emailErr
	}
	f.emails = append(f.emails, sentMessage{To: to, Subject: subject, Body: body})
	return nil
}

func (f *fakeNotifier) SendSMS(ctx context.Context, to, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.smsErr != nil {
		return f.smsErr
	}
	f.sms = append(f.sms, sentMessage{To: to, Body: body})
	return nil
}
