package controllers

import (
	"net/http"
	"time"

	"pjhweb-backend/models"
	"pjhweb-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardOverview struct {
	TotalCustomers int64            `json:"total_customers"`
	QuotesByStatus map[string]int64 `json:"quotes_by_status"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
	MonthlyRevenue float64          `json:"monthly_revenue"`
	Outstanding    float64          `json:"outstanding"`
	AwaitingReply  []AwaitingQuote  `json:"awaiting_reply"`
	TopCustomers   []TopCustomer    `json:"top_customers"`
}

// AwaitingQuote is a pending quote and how long it has been waiting
type AwaitingQuote struct {
	ID          uint    `json:"id"`
	QuoteNumber *string `json:"quote_number"`
	Title       string  `json:"title"`
	Customer    string  `json:"customer"`
	DaysWaiting int     `json:"days_waiting"`
}

type TopCustomer struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Spent float64 `json:"spent"`
}

type statusCount struct {
	Status string
	Count  int64
}

type DashboardController struct {
	db *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{db: db}
}

func (dc *DashboardController) GetDashboardOverview(c *gin.Context) {
	db := dc.db.WithContext(c.Request.Context())
	now := time.Now()
	overview := DashboardOverview{
		QuotesByStatus: map[string]int64{},
		OrdersByStatus: map[string]int64{},
		AwaitingReply:  []AwaitingQuote{},
		TopCustomers:   []TopCustomer{},
	}

	if err := db.Model(&models.Customer{}).Count(&overview.TotalCustomers).Error; err != nil {
		dc.fail(c, err)
		return
	}

	for _, s := range []models.QuoteStatus{models.QuotePending, models.QuoteAccepted, models.QuoteRejected, models.QuoteAmendRequested} {
		overview.QuotesByStatus[string(s)] = 0
	}
	var quoteCounts []statusCount
	if err := db.Model(&models.Quote{}).Select("status, COUNT(*) AS count").Group("status").Scan(&quoteCounts).Error; err != nil {
		dc.fail(c, err)
		return
	}
	for _, sc := range quoteCounts {
		overview.QuotesByStatus[sc.Status] = sc.Count
	}

	for _, s := range []models.OrderStatus{models.OrderInProgress, models.OrderCompleted, models.OrderCancelled} {
		overview.OrdersByStatus[string(s)] = 0
	}
	var orderCounts []statusCount
	if err := db.Model(&models.Order{}).Select("status, COUNT(*) AS count").Group("status").Scan(&orderCounts).Error; err != nil {
		dc.fail(c, err)
		return
	}
	for _, sc := range orderCounts {
		overview.OrdersByStatus[sc.Status] = sc.Count
	}

	// This month's takings
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if err := db.Model(&models.Payment{}).
		Where("created_at >= ?", firstOfMonth).
		Select("COALESCE(SUM(amount), 0)").Scan(&overview.MonthlyRevenue).Error; err != nil {
		dc.fail(c, err)
		return
	}

	var due, paid float64
	if err := db.Model(&models.Order{}).
		Where("status = ?", models.OrderInProgress).
		Select("COALESCE(SUM(deposit + balance), 0)").Scan(&due).Error; err != nil {
		dc.fail(c, err)
		return
	}
	if err := db.Model(&models.Payment{}).
		Joins("JOIN orders ON orders.id = payments.order_id").
		Where("orders.status = ?", models.OrderInProgress).
		Select("COALESCE(SUM(payments.amount), 0)").Scan(&paid).Error; err != nil {
		dc.fail(c, err)
		return
	}
	if due > paid {
		overview.Outstanding = roundMoney(due - paid)
	}

	var pending []models.Quote
	if err := db.Preload("Customer").
		Where("status = ?", models.QuotePending).
		Order("updated_at, id").Limit(5).
		Find(&pending).Error; err != nil {
		dc.fail(c, err)
		return
	}
	for _, q := range pending {
		name := ""
		if q.Customer != nil {
			name = q.Customer.Name
		}
		overview.AwaitingReply = append(overview.AwaitingReply, AwaitingQuote{
			ID:          q.ID,
			QuoteNumber: q.QuoteNumber,
			Title:       q.Title,
			Customer:    name,
			DaysWaiting: utils.DaysOld(q.UpdatedAt, now),
		})
	}

	if err := db.Model(&models.Payment{}).
		Select("customers.id AS id, customers.name AS name, SUM(payments.amount) AS spent").
		Joins("JOIN orders ON orders.id = payments.order_id").
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Group("customers.id, customers.name").
		Order("spent DESC").Limit(5).
		Scan(&overview.TopCustomers).Error; err != nil {
		dc.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "overview": overview})
}

func (dc *DashboardController) fail(c *gin.Context, err error) {
	utils.LogError("Error building dashboard", err)
	utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load dashboard")
}
