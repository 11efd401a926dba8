package services

import (
	"context"
	"errors"
	"log"

	"pjhweb-backend/models"

	"gorm.io/gorm"
)

// QuoteMailer sends customers the link that lets them answer a quote.
type QuoteMailer struct {
	db        *gorm.DB
	notifier  Notifier
	publicURL string
}

func NewQuoteMailer(db *gorm.DB, notifier Notifier, publicURL string) *QuoteMailer {
	return &QuoteMailer{db: db, notifier: notifier, publicURL: publicURL}
}

// SendQuote emails the quote to its customer, texts them when a phone
// number is on file, and records a "sent" history row.
func (m *QuoteMailer) SendQuote(ctx context.Context, customerID, quoteID uint) (*models.Quote, error) {
	db := m.db.WithContext(ctx)

	var quote models.Quote
	if err := db.Where("customer_id = ? AND id = ?", customerID, quoteID).First(&quote).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}
	var customer models.Customer
	if err := db.First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	if quote.ResponseToken == nil {
		token := GenerateResponseToken()
		if err := db.Model(&quote).Update("response_token", token).Error; err != nil {
			return nil, err
		}
		quote.ResponseToken = &token
	}

	if err := m.deliver(ctx, &customer, &quote, false); err != nil {
		return nil, err
	}

	if err := db.Create(&models.QuoteHistory{
		QuoteID: quote.ID,
		Action:  models.ActionSent,
		Actor:   models.ActorAdmin,
	}).Error; err != nil {
		return nil, err
	}
	return &quote, nil
}

// deliver sends the email and, best effort, the SMS.
func (m *QuoteMailer) deliver(ctx context.Context, customer *models.Customer, quote *models.Quote, reminder bool) error {
	link := QuoteResponseLink(m.publicURL, *quote.ResponseToken)

	subject, body := quoteEmail(customer, quote, link, reminder)
	if err := m.notifier.SendEmail(ctx, customer.Email, subject, body); err != nil {
		return err
	}

	if customer.Phone != nil && *customer.Phone != "" {
		if err := m.notifier.SendSMS(ctx, *customer.Phone, quoteSMS(quote, link)); err != nil && !errors.Is(err, ErrNotConfigured) {
			log.Printf("Quote %d: SMS to %s failed: %v", quote.ID, *customer.Phone, err)
		}
	}
	return nil
}
