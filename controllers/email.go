package controllers

import (
	"errors"
	"net/http"

	"pjhweb-backend/services"
	"pjhweb-backend/utils"

	"github.com/gin-gonic/gin"
)

type EmailController struct {
	mailer *services.QuoteMailer
}

func NewEmailController(mailer *services.QuoteMailer) *EmailController {
	return &EmailController{mailer: mailer}
}

// SendQuote emails the customer a link to respond to their quote
func (ec *EmailController) SendQuote(c *gin.Context) {
	customerID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}
	quoteID, ok := utils.ParseIDParam(c, "quoteId")
	if !ok {
		return
	}

	quote, err := ec.mailer.SendQuote(c.Request.Context(), customerID, quoteID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Quote sent to customer", "quote": quote})
	case errors.Is(err, services.ErrQuoteNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
	case errors.Is(err, services.ErrCustomerNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
	case errors.Is(err, services.ErrNotConfigured):
		utils.RespondWithError(c, http.StatusServiceUnavailable, "Email is not configured")
	default:
		utils.LogError("Error sending quote email", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to send quote")
	}
}
