package models

import "time"

// LineItem is one priced row of a quote or order.
type LineItem struct {
	Description string  `json:"description" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"gt=0"`
	Price       float64 `json:"price" binding:"gte=0"`
}

// Total is quantity times unit price.
func (i LineItem) Total() float64 {
	return i.Quantity * i.Price
}

// OrderTask is a to-do attached to an order.
type OrderTask struct {
	Title   string     `json:"title" binding:"required"`
	Done    bool       `json:"done"`
	DueDate *time.Time `json:"due_date,omitempty"`
}

// DiaryEntry mirrors an order_diary row inside orders.diary.
type DiaryEntry struct {
	Note string    `json:"note" binding:"required"`
	Date time.Time `json:"date"`
}

// ItemsTotal sums every line of items.
func ItemsTotal(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Total()
	}
	return total
}
