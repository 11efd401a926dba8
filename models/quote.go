package models

import (
	"time"

	"gorm.io/datatypes"
)

type QuoteStatus string

const (
	QuotePending        QuoteStatus = "pending"
	QuoteAccepted       QuoteStatus = "accepted"
	QuoteRejected       QuoteStatus = "rejected"
	QuoteAmendRequested QuoteStatus = "amend_requested"
)

// Valid reports whether s is one of the statuses allowed by the quotes table.
func (s QuoteStatus) Valid() bool {
	switch s {
	case QuotePending, QuoteAccepted, QuoteRejected, QuoteAmendRequested:
		return true
	}
	return false
}

// Quote is a priced proposal sent to a customer.
type Quote struct {
	ID            uint                          `gorm:"primaryKey" json:"id"`
	CustomerID    uint                          `gorm:"not null;index" json:"customer_id"`
	Customer      *Customer                     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	QuoteNumber   *string                       `gorm:"type:varchar(255);uniqueIndex" json:"quote_number"`
	Title         string                        `gorm:"type:varchar(255);not null" json:"title"`
	Description   *string                       `gorm:"type:text" json:"description"`
	Items         datatypes.JSONSlice[LineItem] `gorm:"not null;default:'[]'" json:"items"`
	Deposit       float64                       `gorm:"type:numeric(10,2);not null;default:0" json:"deposit"`
	Notes         *string                       `gorm:"type:text" json:"notes"`
	Status        QuoteStatus                   `gorm:"type:varchar(20);default:'pending';check:chk_quotes_status,status IN ('pending','accepted','rejected','amend_requested')" json:"status"`
	Feedback      *string                       `gorm:"type:text" json:"feedback"`
	ResponseToken *string                       `gorm:"type:varchar(255);uniqueIndex" json:"response_token"`
	CreatedAt     time.Time                     `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time                     `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// QuoteHistory is one append-only audit row for a quote.
type QuoteHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	QuoteID   uint      `gorm:"not null;index" json:"quote_id"`
	Quote     *Quote    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Action    string    `gorm:"type:varchar(50);not null" json:"action"`
	Feedback  *string   `gorm:"type:text" json:"feedback"`
	Actor     string    `gorm:"type:varchar(50);not null" json:"actor"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (QuoteHistory) TableName() string {
	return "quote_history"
}

// History actions that are not status names.
const (
	ActionCreated  = "created"
	ActionAmended  = "amended"
	ActionSent     = "sent"
	ActionReminded = "reminded"
)

// Actors recorded in quote_history.
const (
	ActorAdmin    = "admin"
	ActorCustomer = "customer"
	ActorSystem   = "system"
)
