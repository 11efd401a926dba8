package models

import (
	"time"

	"gorm.io/datatypes"
)

type OrderStatus string

const (
	OrderInProgress OrderStatus = "in_progress"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderInProgress, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// Order is the work item created once a quote is accepted.
type Order struct {
	ID              uint                            `gorm:"primaryKey" json:"id"`
	CustomerID      uint                            `gorm:"not null;index" json:"customer_id"`
	Customer        *Customer                       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	QuoteID         *uint                           `gorm:"uniqueIndex" json:"quote_id"`
	Quote           *Quote                          `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Title           string                          `gorm:"type:varchar(255);not null" json:"title"`
	Description     *string                         `gorm:"type:text" json:"description"`
	Status          OrderStatus                     `gorm:"type:varchar(20);default:'in_progress';check:chk_orders_status,status IN ('in_progress','completed','cancelled')" json:"status"`
	Items           datatypes.JSONSlice[LineItem]   `gorm:"not null;default:'[]'" json:"items"`
	Tasks           datatypes.JSONSlice[OrderTask]  `gorm:"not null;default:'[]'" json:"tasks"`
	Deposit         float64                         `gorm:"type:numeric(10,2);default:0" json:"deposit"`
	Balance         float64                         `gorm:"type:numeric(10,2);default:0" json:"balance"`
	Diary           datatypes.JSONSlice[DiaryEntry] `gorm:"not null;default:'[]'" json:"diary"`
	DepositInvoiced bool                            `gorm:"default:false" json:"deposit_invoiced"`
	BalanceInvoiced bool                            `gorm:"default:false" json:"balance_invoiced"`
	CreatedAt       time.Time                       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time                       `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// OrderDiary is an append-only note on an order.
type OrderDiary struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	OrderID uint      `gorm:"not null;index" json:"order_id"`
	Order   *Order    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Note    string    `gorm:"type:text;not null" json:"note"`
	Date    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"date"`
}

func (OrderDiary) TableName() string {
	return "order_diary"
}
