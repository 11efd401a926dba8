package models

import "time"

type PaymentType string

const (
	PaymentDeposit PaymentType = "deposit"
	PaymentBalance PaymentType = "balance"
	PaymentFull    PaymentType = "full"
)

// Payment records money received against an order.
type Payment struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	OrderID   uint        `gorm:"not null;index" json:"order_id"`
	Order     *Order      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Amount    float64     `gorm:"type:numeric(10,2);not null" json:"amount"`
	Type      PaymentType `gorm:"type:varchar(20);check:chk_payments_type,type IN ('deposit','balance','full')" json:"type"`
	Method    *string     `gorm:"type:varchar(50)" json:"method"`
	Reference *string     `gorm:"type:varchar(255)" json:"reference"`
	CreatedAt time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}
