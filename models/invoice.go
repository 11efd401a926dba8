package models

import "time"

// Invoice is built from an order on demand; it is not stored. The order's
// deposit_invoiced / balance_invoiced flags record that it was issued.
type Invoice struct {
	InvoiceNumber string     `json:"invoice_number"`
	Stage         string     `json:"stage"`
	OrderID       uint       `json:"order_id"`
	QuoteID       *uint      `json:"quote_id"`
	Customer      Customer   `json:"customer"`
	Title         string     `json:"title"`
	Items         []LineItem `json:"items"`
	ItemsTotal    float64    `json:"items_total"`
	Amount        float64    `json:"amount"`
	Paid          float64    `json:"paid"`
	GeneratedAt   time.Time  `json:"generated_at"`
}
