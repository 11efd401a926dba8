package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"pjhweb-backend/models"
	"pjhweb-backend/utils"

	"gorm.io/gorm"
)

// QuoteAction is a decision taken on a quote by the admin or the customer.
type QuoteAction string

const (
	ActionAccept QuoteAction = "accept"
	ActionReject QuoteAction = "reject"
	ActionAmend  QuoteAction = "amend"
)

// Any status may move to any other; no transition is refused.
var actionStatus = map[QuoteAction]models.QuoteStatus{
	ActionAccept: models.QuoteAccepted,
	ActionReject: models.QuoteRejected,
	ActionAmend:  models.QuoteAmendRequested,
}

// Status is the quote status an action leads to.
func (a QuoteAction) Status() (models.QuoteStatus, bool) {
	s, ok := actionStatus[a]
	return s, ok
}

// QuoteInput carries the editable fields of a quote.
type QuoteInput struct {
	Title       string
	Description *string
	Items       []models.LineItem
	Deposit     float64
	Notes       *string
}

type QuoteService struct {
	db *gorm.DB
}

func NewQuoteService(db *gorm.DB) *QuoteService {
	return &QuoteService{db: db}
}

// Create stores a pending quote for the customer with a fresh quote number
// and response token, and logs it in quote_history.
func (s *QuoteService) Create(ctx context.Context, customerID uint, in QuoteInput) (*models.Quote, error) {
	var quote models.Quote
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.First(&customer, customerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCustomerNotFound
			}
			return err
		}

		number, err := GenerateQuoteNumber(ctx, tx, customer.ID, customer.BusinessName())
		if err != nil {
			return err
		}
		token := GenerateResponseToken()

		quote = models.Quote{
			CustomerID:    customer.ID,
			QuoteNumber:   &number,
			Title:         in.Title,
			Description:   in.Description,
			Items:         nonNilItems(in.Items),
			Deposit:       in.Deposit,
			Notes:         in.Notes,
			Status:        models.QuotePending,
			ResponseToken: &token,
		}
		if err := tx.Create(&quote).Error; err != nil {
			return fmt.Errorf("insert quote: %w", err)
		}
		return tx.Create(&models.QuoteHistory{
			QuoteID: quote.ID,
			Action:  models.ActionCreated,
			Actor:   models.ActorAdmin,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// Update overwrites the editable fields. A quote the customer asked to
// amend goes back to pending and the edit is logged as "amended".
func (s *QuoteService) Update(ctx context.Context, customerID, quoteID uint, in QuoteInput) (*models.Quote, error) {
	var quote models.Quote
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ? AND id = ?", customerID, quoteID).First(&quote).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrQuoteNotFound
			}
			return err
		}

		amended := quote.Status == models.QuoteAmendRequested
		quote.Title = in.Title
		quote.Description = in.Description
		quote.Items = nonNilItems(in.Items)
		quote.Deposit = in.Deposit
		quote.Notes = in.Notes
		if amended {
			quote.Status = models.QuotePending
		}
		if err := tx.Save(&quote).Error; err != nil {
			return err
		}
		if !amended {
			return nil
		}
		return tx.Create(&models.QuoteHistory{
			QuoteID: quote.ID,
			Action:  models.ActionAmended,
			Actor:   models.ActorAdmin,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// Transition applies action to the quote and appends one history row in the
// same transaction. Accept leaves feedback untouched; reject and amend store
// feedback, or NULL when none was given.
func (s *QuoteService) Transition(ctx context.Context, quoteID uint, action QuoteAction, feedback *string, actor string) (*models.Quote, error) {
	status, ok := action.Status()
	if !ok {
		return nil, ErrUnknownAction
	}
	feedback = utils.NullIfBlank(feedback)

	updates := map[string]interface{}{"status": status}
	if action != ActionAccept {
		updates["feedback"] = nullableString(feedback)
	}

	var quote models.Quote
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Quote{}).Where("id = ?", quoteID).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrQuoteNotFound
		}

		entry := models.QuoteHistory{
			QuoteID: quoteID,
			Action:  string(status),
			Actor:   actor,
		}
		if action != ActionAccept {
			entry.Feedback = feedback
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("insert history: %w", err)
		}
		return tx.First(&quote, quoteID).Error
	})
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// FindByToken looks a quote up by its customer response token.
func (s *QuoteService) FindByToken(ctx context.Context, token string) (*models.Quote, *models.Customer, error) {
	var quote models.Quote
	if err := s.db.WithContext(ctx).Where("response_token = ?", token).First(&quote).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrQuoteNotFound
		}
		return nil, nil, err
	}
	var customer models.Customer
	if err := s.db.WithContext(ctx).First(&customer, quote.CustomerID).Error; err != nil {
		return nil, nil, err
	}
	return &quote, &customer, nil
}

// History lists a quote's audit rows, newest first.
func (s *QuoteService) History(ctx context.Context, quoteID uint) ([]models.QuoteHistory, error) {
	var quote models.Quote
	if err := s.db.WithContext(ctx).Select("id").First(&quote, quoteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}
	history := []models.QuoteHistory{}
	err := s.db.WithContext(ctx).
		Where("quote_id = ?", quoteID).
		Order("created_at DESC, id DESC").
		Find(&history).Error
	return history, err
}

// ConvertToOrder creates the order for an accepted quote. The balance is
// what the items cost beyond the deposit.
func (s *QuoteService) ConvertToOrder(ctx context.Context, quoteID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var quote models.Quote
		if err := tx.First(&quote, quoteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrQuoteNotFound
			}
			return err
		}
		if quote.Status != models.QuoteAccepted {
			return ErrQuoteNotAccepted
		}

		var existing int64
		if err := tx.Model(&models.Order{}).Where("quote_id = ?", quote.ID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyConverted
		}

		items := nonNilItems(quote.Items)
		balance := math.Max(0, models.ItemsTotal(items)-quote.Deposit)
		order = models.Order{
			CustomerID:  quote.CustomerID,
			QuoteID:     &quote.ID,
			Title:       quote.Title,
			Description: quote.Description,
			Status:      models.OrderInProgress,
			Items:       items,
			Tasks:       []models.OrderTask{},
			Deposit:     quote.Deposit,
			Balance:     math.Round(balance*100) / 100,
			Diary:       []models.DiaryEntry{},
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func nonNilItems(items []models.LineItem) []models.LineItem {
	if items == nil {
		return []models.LineItem{}
	}
	return items
}

func nullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
