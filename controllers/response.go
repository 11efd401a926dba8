package controllers

import (
	"errors"
	"net/http"

	"pjhweb-backend/models"
	"pjhweb-backend/services"
	"pjhweb-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustomerResponseInput is what a customer submits from the quote link
type CustomerResponseInput struct {
	Action   string  `json:"action" binding:"required,oneof=accept reject amend"`
	Feedback *string `json:"feedback"`
}

// ResponseController serves the public, token-addressed quote pages
type ResponseController struct {
	quotes *services.QuoteService
}

func NewResponseController(quotes *services.QuoteService) *ResponseController {
	return &ResponseController{quotes: quotes}
}

// GetQuoteByToken shows the customer the quote behind their link
func (rc *ResponseController) GetQuoteByToken(c *gin.Context) {
	quote, customer, ok := rc.lookup(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"quote":   quote,
		"customer": gin.H{
			"name":     customer.Name,
			"business": customer.Business,
		},
	})
}

// RespondToQuote records the customer's decision
func (rc *ResponseController) RespondToQuote(c *gin.Context) {
	var input CustomerResponseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	quote, _, ok := rc.lookup(c)
	if !ok {
		return
	}

	updated, err := rc.quotes.Transition(c.Request.Context(), quote.ID, services.QuoteAction(input.Action), input.Feedback, models.ActorCustomer)
	if err != nil {
		if errors.Is(err, services.ErrQuoteNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
			return
		}
		utils.LogError("Error recording customer response", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record response")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Thank you, your response has been recorded", "quote": updated})
}

func (rc *ResponseController) lookup(c *gin.Context) (*models.Quote, *models.Customer, bool) {
	token := c.Param("token")
	if _, err := uuid.Parse(token); err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		return nil, nil, false
	}

	quote, customer, err := rc.quotes.FindByToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, services.ErrQuoteNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		} else {
			utils.LogError("Error fetching quote by token", err)
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, nil, false
	}
	return quote, customer, true
}
