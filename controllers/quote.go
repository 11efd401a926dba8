package controllers

import (
	"errors"
	"net/http"

	"pjhweb-backend/models"
	"pjhweb-backend/services"
	"pjhweb-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// QuoteInput defines the expected JSON structure for creating or editing a quote
type QuoteInput struct {
	Title       string            `json:"title" binding:"required"`
	Description *string           `json:"description"`
	Items       []models.LineItem `json:"items" binding:"dive"`
	Deposit     float64           `json:"deposit" binding:"gte=0"`
	Notes       *string           `json:"notes"`
}

func (in QuoteInput) toService() services.QuoteInput {
	return services.QuoteInput{
		Title:       in.Title,
		Description: in.Description,
		Items:       in.Items,
		Deposit:     in.Deposit,
		Notes:       in.Notes,
	}
}

type QuoteController struct {
	db     *gorm.DB
	quotes *services.QuoteService
}

func NewQuoteController(db *gorm.DB, quotes *services.QuoteService) *QuoteController {
	return &QuoteController{db: db, quotes: quotes}
}

// GetCustomerQuotes lists the quotes of one customer
func (qc *QuoteController) GetCustomerQuotes(c *gin.Context) {
	customerID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	quotes := []models.Quote{}
	if err := qc.db.WithContext(c.Request.Context()).
		Where("customer_id = ?", customerID).
		Order("created_at DESC, id DESC").
		Find(&quotes).Error; err != nil {
		utils.LogError("Error fetching quotes", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve quotes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "quotes": quotes})
}

// CreateQuote creates a pending quote for the customer
func (qc *QuoteController) CreateQuote(c *gin.Context) {
	customerID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var input QuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	quote, err := qc.quotes.Create(c.Request.Context(), customerID, input.toService())
	if err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
			return
		}
		utils.LogError("Error creating quote", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create quote")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Quote created", "quote": quote})
}

// GetQuote retrieves one of the customer's quotes
func (qc *QuoteController) GetQuote(c *gin.Context) {
	customerID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}
	quoteID, ok := utils.ParseIDParam(c, "quoteId")
	if !ok {
		return
	}

	var quote models.Quote
	if err := qc.db.WithContext(c.Request.Context()).
		Where("customer_id = ? AND id = ?", customerID, quoteID).
		First(&quote).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		} else {
			utils.LogError("Error fetching quote", err)
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "quote": quote})
}

// UpdateQuote replaces the editable fields of a quote
func (qc *QuoteController) UpdateQuote(c *gin.Context) {
	customerID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}
	quoteID, ok := utils.ParseIDParam(c, "quoteId")
	if !ok {
		return
	}

	var input QuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	quote, err := qc.quotes.Update(c.Request.Context(), customerID, quoteID, input.toService())
	if err != nil {
		if errors.Is(err, services.ErrQuoteNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
			return
		}
		utils.LogError("Error updating quote", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update quote")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Quote updated", "quote": quote})
}

// DeleteQuote removes a quote and its history
func (qc *QuoteController) DeleteQuote(c *gin.Context) {
	customerID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}
	quoteID, ok := utils.ParseIDParam(c, "quoteId")
	if !ok {
		return
	}

	result := qc.db.WithContext(c.Request.Context()).
		Where("customer_id = ? AND id = ?", customerID, quoteID).
		Delete(&models.Quote{})
	if result.Error != nil {
		utils.LogError("Error deleting quote", result.Error)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete quote")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Quote deleted"})
}

// GetQuotes lists all quotes, optionally filtered by ?status=
func (qc *QuoteController) GetQuotes(c *gin.Context) {
	query := qc.db.WithContext(c.Request.Context()).Order("created_at DESC, id DESC")
	if status := c.Query("status"); status != "" {
		if !models.QuoteStatus(status).Valid() {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid status")
			return
		}
		query = query.Where("status = ?", status)
	}

	quotes := []models.Quote{}
	if err := query.Find(&quotes).Error; err != nil {
		utils.LogError("Error fetching quotes", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve quotes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "quotes": quotes})
}

// GetQuoteHistory returns the audit trail of a quote
func (qc *QuoteController) GetQuoteHistory(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	history, err := qc.quotes.History(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrQuoteNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
			return
		}
		utils.LogError("Error fetching quote history", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve quote history")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "history": history})
}

// ConvertQuote turns an accepted quote into an order
func (qc *QuoteController) ConvertQuote(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := qc.quotes.ConvertToOrder(c.Request.Context(), id)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Order created from quote", "order": order})
	case errors.Is(err, services.ErrQuoteNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
	case errors.Is(err, services.ErrQuoteNotAccepted):
		utils.RespondWithError(c, http.StatusConflict, "Only accepted quotes can become orders")
	case errors.Is(err, services.ErrAlreadyConverted):
		utils.RespondWithError(c, http.StatusConflict, "Quote already has an order")
	default:
		utils.LogError("Error converting quote", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create order")
	}
}
