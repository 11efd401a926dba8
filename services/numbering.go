package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"pjhweb-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const quoteNumberPrefix = "PJH-WS"

var whitespaceRun = regexp.MustCompile(`\s+`)

// GenerateQuoteNumber returns the next quote number for a customer, e.g.
// PJH-WS/ACME-LTD/000001. The count and the later insert are not atomic;
// the unique index on quote_number rejects a collision.
func GenerateQuoteNumber(ctx context.Context, db *gorm.DB, customerID uint, businessName string) (string, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Quote{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		return "", fmt.Errorf("count quotes: %w", err)
	}
	return FormatQuoteNumber(businessName, count+1), nil
}

// FormatQuoteNumber builds PJH-WS/<BUSINESS>/<seq> with seq zero-padded to six digits.
func FormatQuoteNumber(businessName string, seq int64) string {
	if strings.TrimSpace(businessName) == "" {
		businessName = "Customer"
	}
	safe := strings.ToUpper(whitespaceRun.ReplaceAllString(businessName, "-"))
	return fmt.Sprintf("%s/%s/%06d", quoteNumberPrefix, safe, seq)
}

// GenerateResponseToken returns an unguessable token for customer quote links.
func GenerateResponseToken() string {
	return uuid.NewString()
}

// InvoiceNumber identifies the invoice for one stage of an order.
func InvoiceNumber(orderID uint, stage string) string {
	suffix := "D"
	if stage == StageBalance {
		suffix = "B"
	}
	return fmt.Sprintf("PJH-INV/%06d/%s", orderID, suffix)
}
