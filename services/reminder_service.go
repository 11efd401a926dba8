// services/reminder_service.go
package services

import (
	"context"
	"errors"
	"log"
	"time"

	"pjhweb-backend/models"
	"pjhweb-backend/utils"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReminderService nudges customers whose quotes have been pending too long.
type ReminderService struct {
	db        *gorm.DB
	mailer    *QuoteMailer
	afterDays int
	cron      *cron.Cron
	now       func() time.Time
}

func NewReminderService(db *gorm.DB, mailer *QuoteMailer, afterDays int) *ReminderService {
	if afterDays <= 0 {
		afterDays = 7
	}
	return &ReminderService{
		db:        db,
		mailer:    mailer,
		afterDays: afterDays,
		now:       time.Now,
	}
}

// StartScheduler runs SendDueReminders on the given cron schedule.
func (s *ReminderService) StartScheduler(schedule string) error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(schedule, func() {
		if _, err := s.SendDueReminders(context.Background()); err != nil {
			log.Printf("Reminder run failed: %v", err)
		}
	}); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("Reminder scheduler started (%s)", schedule)
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *ReminderService) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	log.Println("Reminder scheduler stopped")
}

// SendDueReminders reminds every customer whose quote is still pending,
// was last touched before the cutoff, and has not been reminded since.
// It returns how many reminders went out.
func (s *ReminderService) SendDueReminders(ctx context.Context) (int, error) {
	now := s.now()
	cutoff := utils.CutoffDaysAgo(now, s.afterDays)
	db := s.db.WithContext(ctx)

	recentlyReminded := db.Model(&models.QuoteHistory{}).
		Select("quote_id").
		Where("action = ? AND created_at >= ?", models.ActionReminded, cutoff)

	var quotes []models.Quote
	if err := db.
		Where("status = ? AND updated_at < ? AND response_token IS NOT NULL", models.QuotePending, cutoff).
		Where("id NOT IN (?)", recentlyReminded).
		Order("id").
		Find(&quotes).Error; err != nil {
		return 0, err
	}

	sent := 0
	for i := range quotes {
		quote := &quotes[i]

		var customer models.Customer
		if err := db.First(&customer, quote.CustomerID).Error; err != nil {
			log.Printf("Quote %d: failed to load customer: %v", quote.ID, err)
			continue
		}

		if err := s.mailer.deliver(ctx, &customer, quote, true); err != nil {
			if errors.Is(err, ErrNotConfigured) {
				return sent, err
			}
			log.Printf("Quote %d: reminder to %s failed: %v", quote.ID, customer.Email, err)
			continue
		}

		if err := db.Create(&models.QuoteHistory{
			QuoteID: quote.ID,
			Action:  models.ActionReminded,
			Actor:   models.ActorSystem,
		}).Error; err != nil {
			log.Printf("Quote %d: failed to log reminder: %v", quote.ID, err)
			continue
		}
		log.Printf("Quote %d: reminder sent after %d days", quote.ID, utils.DaysOld(quote.UpdatedAt, now))
		sent++
	}
	return sent, nil
}
