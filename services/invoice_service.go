package services

import (
	"context"
	"errors"
	"time"

	"pjhweb-backend/models"

	"gorm.io/gorm"
)

// Invoice stages of an order.
const (
	StageDeposit = "deposit"
	StageBalance = "balance"
)

type InvoiceService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewInvoiceService(db *gorm.DB, notifier Notifier) *InvoiceService {
	return &InvoiceService{db: db, notifier: notifier}
}

// Issue marks the stage invoiced on the order and returns the invoice.
// Issuing the same stage again returns the same invoice.
func (s *InvoiceService) Issue(ctx context.Context, orderID uint, stage string) (*models.Invoice, error) {
	column, err := stageColumn(stage)
	if err != nil {
		return nil, err
	}

	var invoice *models.Invoice
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := findOrder(tx, orderID)
		if err != nil {
			return err
		}
		if err := tx.Model(order).Update(column, true).Error; err != nil {
			return err
		}
		invoice, err = buildInvoice(tx, order, stage)
		return err
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// ForOrder returns the invoices already issued for an order.
func (s *InvoiceService) ForOrder(ctx context.Context, orderID uint) ([]models.Invoice, error) {
	db := s.db.WithContext(ctx)
	order, err := findOrder(db, orderID)
	if err != nil {
		return nil, err
	}
	return issuedInvoices(db, order)
}

// List returns every issued invoice, oldest order first.
func (s *InvoiceService) List(ctx context.Context) ([]models.Invoice, error) {
	db := s.db.WithContext(ctx)

	var orders []models.Order
	if err := db.Where("deposit_invoiced = ? OR balance_invoiced = ?", true, true).
		Order("id").Find(&orders).Error; err != nil {
		return nil, err
	}

	invoices := []models.Invoice{}
	for i := range orders {
		issued, err := issuedInvoices(db, &orders[i])
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, issued...)
	}
	return invoices, nil
}

// Send emails the invoice to its customer.
func (s *InvoiceService) Send(ctx context.Context, invoice *models.Invoice) error {
	subject, body := invoiceEmail(invoice)
	return s.notifier.SendEmail(ctx, invoice.Customer.Email, subject, body)
}

func stageColumn(stage string) (string, error) {
	switch stage {
	case StageDeposit:
		return "deposit_invoiced", nil
	case StageBalance:
		return "balance_invoiced", nil
	}
	return "", ErrInvalidStage
}

func findOrder(db *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func issuedInvoices(db *gorm.DB, order *models.Order) ([]models.Invoice, error) {
	var out []models.Invoice
	for _, stage := range []string{StageDeposit, StageBalance} {
		if (stage == StageDeposit && !order.DepositInvoiced) || (stage == StageBalance && !order.BalanceInvoiced) {
			continue
		}
		inv, err := buildInvoice(db, order, stage)
		if err != nil {
			return nil, err
		}
		out = append(out, *inv)
	}
	return out, nil
}

func buildInvoice(db *gorm.DB, order *models.Order, stage string) (*models.Invoice, error) {
	var customer models.Customer
	if err := db.First(&customer, order.CustomerID).Error; err != nil {
		return nil, err
	}

	var paid float64
	if err := db.Model(&models.Payment{}).
		Where("order_id = ? AND type IN ?", order.ID, []string{stage, string(models.PaymentFull)}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&paid).Error; err != nil {
		return nil, err
	}

	amount := order.Deposit
	if stage == StageBalance {
		amount = order.Balance
	}
	items := []models.LineItem(order.Items)
	if items == nil {
		items = []models.LineItem{}
	}

	return &models.Invoice{
		InvoiceNumber: InvoiceNumber(order.ID, stage),
		Stage:         stage,
		OrderID:       order.ID,
		QuoteID:       order.QuoteID,
		Customer:      customer,
		Title:         order.Title,
		Items:         items,
		ItemsTotal:    models.ItemsTotal(items),
		Amount:        amount,
		Paid:          paid,
		GeneratedAt:   time.Now(),
	}, nil
}
