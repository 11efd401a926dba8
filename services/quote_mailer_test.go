package services

import (
	"context"
	"errors"
	"testing"

	"pjhweb-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendQuote(t *testing.T) {
	db := setupTestDB(t)
	notifier := &fakeNotifier{}
	mailer := NewQuoteMailer(db, notifier, "https://pjhwebservices.co.uk/")
	customer := createCustomer(t, db, "Acme Ltd")
	phone := "07700 900123"
	require.NoError(t, db.Model(customer).Update("phone", phone).Error)

	created, err := NewQuoteService(db).Create(context.Background(), customer.ID, sampleQuote())
	require.NoError(t, err)

	quote, err := mailer.SendQuote(context.Background(), customer.ID, created.ID)
	require.NoError(t, err)

	link := "https://pjhwebservices.co.uk/quote-response/" + *quote.ResponseToken
	require.Len(t, notifier.emails, 1)
	assert.Equal(t, "jane@example.com", notifier.emails[0].To)
	assert.Contains(t, notifier.emails[0].Subject, "PJH-WS/ACME-LTD/000001")
	assert.Contains(t, notifier.emails[0].Body, link)
	require.Len(t, notifier.sms, 1)
	assert.Equal(t, phone, notifier.sms[0].To)

	rows := historyFor(t, db, created.ID)
	require.Len(t, rows, 2)
	assert.Equal(t, models.ActionSent, rows[1].Action)
}

func TestSendQuoteIgnoresSMSFailure(t *testing.T) {
	db := setupTestDB(t)
	notifier := &fakeNotifier{smsErr: errors.New("twilio down")}
	customer := createCustomer(t, db, "")
	require.NoError(t, db.Model(customer).Update("phone", "07700900123").Error)
	created, err := NewQuoteService(db).Create(context.Background(), customer.ID, sampleQuote())
	require.NoError(t, err)

	_, err = NewQuoteMailer(db, notifier, "http://localhost:5173").SendQuote(context.Background(), customer.ID, created.ID)
	require.NoError(t, err)
	assert.Len(t, notifier.emails, 1)
}

func TestSendQuoteWithoutEmailChannel(t *testing.T) {
	db := setupTestDB(t)
	notifier := &fakeNotifier{emailErr: ErrNotConfigured}
	customer := createCustomer(t, db, "")
	created, err := NewQuoteService(db).Create(context.Background(), customer.ID, sampleQuote())
	require.NoError(t, err)

	_, err = NewQuoteMailer(db, notifier, "http://localhost:5173").SendQuote(context.Background(), customer.ID, created.ID)
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Len(t, historyFor(t, db, created.ID), 1)
}

func TestSendQuoteNotFound(t *testing.T) {
	db := setupTestDB(t)
	customer := createCustomer(t, db, "")

	_, err := NewQuoteMailer(db, &fakeNotifier{}, "").SendQuote(context.Background(), customer.ID, 42)
	assert.ErrorIs(t, err, ErrQuoteNotFound)
}

func TestQuoteResponseLink(t *testing.T) {
	assert.Equal(t, "https://example.com/quote-response/abc", QuoteResponseLink("https://example.com/", "abc"))
}
