package controllers

import (
	"errors"
	"math"
	"net/http"
	"time"

	"pjhweb-backend/models"
	"pjhweb-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateOrderInput struct {
	CustomerID  uint               `json:"customer_id" binding:"required"`
	Title       string             `json:"title" binding:"required"`
	Description *string            `json:"description"`
	Items       []models.LineItem  `json:"items" binding:"dive"`
	Tasks       []models.OrderTask `json:"tasks" binding:"dive"`
	Deposit     float64            `json:"deposit" binding:"gte=0"`
	Balance     *float64           `json:"balance" binding:"omitempty,gte=0"`
}

type UpdateOrderInput struct {
	Title           *string             `json:"title" binding:"omitempty,min=1"`
	Description     *string             `json:"description"`
	Status          *string             `json:"status" binding:"omitempty,oneof=in_progress completed cancelled"`
	Items           *[]models.LineItem  `json:"items" binding:"omitempty,dive"`
	Tasks           *[]models.OrderTask `json:"tasks" binding:"omitempty,dive"`
	Deposit         *float64            `json:"deposit" binding:"omitempty,gte=0"`
	Balance         *float64            `json:"balance" binding:"omitempty,gte=0"`
	DepositInvoiced *bool               `json:"deposit_invoiced"`
	BalanceInvoiced *bool               `json:"balance_invoiced"`
}

type DiaryInput struct {
	Note string `json:"note" binding:"required"`
}

type PaymentInput struct {
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Type      string  `json:"type" binding:"required,oneof=deposit balance full"`
	Method    *string `json:"method"`
	Reference *string `json:"reference"`
}

type OrderController struct {
	db *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{db: db}
}

// GetOrders lists orders, optionally filtered by ?status=
func (oc *OrderController) GetOrders(c *gin.Context) {
	query := oc.db.WithContext(c.Request.Context()).Order("id")
	if status := c.Query("status"); status != "" {
		if !models.OrderStatus(status).Valid() {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid status")
			return
		}
		query = query.Where("status = ?", status)
	}

	orders := []models.Order{}
	if err := query.Find(&orders).Error; err != nil {
		utils.LogError("Error fetching orders", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

func (oc *OrderController) CreateOrder(c *gin.Context) {
	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	db := oc.db.WithContext(c.Request.Context())
	var customer models.Customer
	if err := db.First(&customer, input.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.LogError("Error fetching customer for order", err)
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	items := input.Items
	if items == nil {
		items = []models.LineItem{}
	}
	tasks := input.Tasks
	if tasks == nil {
		tasks = []models.OrderTask{}
	}
	balance := math.Max(0, models.ItemsTotal(items)-input.Deposit)
	if input.Balance != nil {
		balance = *input.Balance
	}

	order := models.Order{
		CustomerID:  customer.ID,
		Title:       input.Title,
		Description: input.Description,
		Status:      models.OrderInProgress,
		Items:       datatypes.NewJSONSlice(items),
		Tasks:       datatypes.NewJSONSlice(tasks),
		Diary:       datatypes.NewJSONSlice([]models.DiaryEntry{}),
		Deposit:     input.Deposit,
		Balance:     roundMoney(balance),
	}
	if err := db.Create(&order).Error; err != nil {
		utils.LogError("Error creating order", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create order")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Order created", "order": order})
}

// GetOrder returns the order with its payments, diary and what is still owed
func (oc *OrderController) GetOrder(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}
	order, ok := oc.findOrder(c, id)
	if !ok {
		return
	}

	db := oc.db.WithContext(c.Request.Context())
	payments := []models.Payment{}
	if err := db.Where("order_id = ?", id).Order("created_at, id").Find(&payments).Error; err != nil {
		utils.LogError("Error fetching payments", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve order")
		return
	}
	diary := []models.OrderDiary{}
	if err := db.Where("order_id = ?", id).Order("date, id").Find(&diary).Error; err != nil {
		utils.LogError("Error fetching diary", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve order")
		return
	}

	var paid float64
	for _, p := range payments {
		paid += p.Amount
	}
	paid = roundMoney(paid)

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"order":       order,
		"payments":    payments,
		"diary":       diary,
		"paid":        paid,
		"outstanding": roundMoney(math.Max(0, order.Deposit+order.Balance-paid)),
	})
}

func (oc *OrderController) UpdateOrder(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	order, ok := oc.findOrder(c, id)
	if !ok {
		return
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = utils.NullIfBlank(input.Description)
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.Items != nil {
		items := *input.Items
		if items == nil {
			items = []models.LineItem{}
		}
		updates["items"] = datatypes.NewJSONSlice(items)
	}
	if input.Tasks != nil {
		tasks := *input.Tasks
		if tasks == nil {
			tasks = []models.OrderTask{}
		}
		updates["tasks"] = datatypes.NewJSONSlice(tasks)
	}
	if input.Deposit != nil {
		updates["deposit"] = *input.Deposit
	}
	if input.Balance != nil {
		updates["balance"] = *input.Balance
	}
	if input.DepositInvoiced != nil {
		updates["deposit_invoiced"] = *input.DepositInvoiced
	}
	if input.BalanceInvoiced != nil {
		updates["balance_invoiced"] = *input.BalanceInvoiced
	}

	db := oc.db.WithContext(c.Request.Context())
	if len(updates) > 0 {
		if err := db.Model(order).Updates(updates).Error; err != nil {
			utils.LogError("Error updating order", err)
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update order")
			return
		}
	}
	if err := db.First(order, id).Error; err != nil {
		utils.LogError("Error reloading order", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order updated", "order": order})
}

func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	result := oc.db.WithContext(c.Request.Context()).Delete(&models.Order{}, id)
	if result.Error != nil {
		utils.LogError("Error deleting order", result.Error)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete order")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order deleted"})
}

func (oc *OrderController) GetDiary(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := oc.findOrder(c, id); !ok {
		return
	}

	entries := []models.OrderDiary{}
	if err := oc.db.WithContext(c.Request.Context()).
		Where("order_id = ?", id).Order("date, id").Find(&entries).Error; err != nil {
		utils.LogError("Error fetching diary", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve diary")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "diary": entries})
}

// AddDiaryEntry writes the note to order_diary and to the order's snapshot
// in one transaction.
func (oc *OrderController) AddDiaryEntry(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var input DiaryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	entry := models.OrderDiary{OrderID: id, Note: input.Note, Date: time.Now()}
	err := oc.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, id).Error; err != nil {
			return err
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		diary := append([]models.DiaryEntry(order.Diary), models.DiaryEntry{Note: entry.Note, Date: entry.Date})
		return tx.Model(&order).Update("diary", datatypes.NewJSONSlice(diary)).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
			return
		}
		utils.LogError("Error adding diary entry", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to add diary entry")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Diary entry added", "entry": entry})
}

func (oc *OrderController) GetPayments(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := oc.findOrder(c, id); !ok {
		return
	}

	payments := []models.Payment{}
	if err := oc.db.WithContext(c.Request.Context()).
		Where("order_id = ?", id).Order("created_at, id").Find(&payments).Error; err != nil {
		utils.LogError("Error fetching payments", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "payments": payments})
}

func (oc *OrderController) AddPayment(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var input PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if _, ok := oc.findOrder(c, id); !ok {
		return
	}

	payment := models.Payment{
		OrderID:   id,
		Amount:    roundMoney(input.Amount),
		Type:      models.PaymentType(input.Type),
		Method:    utils.NullIfBlank(input.Method),
		Reference: utils.NullIfBlank(input.Reference),
		CreatedAt: time.Now(),
	}
	if err := oc.db.WithContext(c.Request.Context()).Create(&payment).Error; err != nil {
		utils.LogError("Error recording payment", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record payment")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Payment recorded", "payment": payment})
}

func (oc *OrderController) DeletePayment(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}
	paymentID, ok := utils.ParseIDParam(c, "paymentId")
	if !ok {
		return
	}

	result := oc.db.WithContext(c.Request.Context()).
		Where("order_id = ?", id).Delete(&models.Payment{}, paymentID)
	if result.Error != nil {
		utils.LogError("Error deleting payment", result.Error)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete payment")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Payment not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment deleted"})
}

func (oc *OrderController) findOrder(c *gin.Context, id uint) (*models.Order, bool) {
	var order models.Order
	if err := oc.db.WithContext(c.Request.Context()).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.LogError("Error fetching order", err)
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return &order, true
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
