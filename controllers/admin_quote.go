package controllers

import (
	"errors"
	"io"
	"net/http"

	"pjhweb-backend/models"
	"pjhweb-backend/services"
	"pjhweb-backend/utils"

	"github.com/gin-gonic/gin"
)

// FeedbackInput is the optional body of reject and amend
type FeedbackInput struct {
	Feedback *string `json:"feedback"`
}

// AdminQuoteController lets the admin accept, reject or ask to amend a quote
type AdminQuoteController struct {
	quotes *services.QuoteService
}

func NewAdminQuoteController(quotes *services.QuoteService) *AdminQuoteController {
	return &AdminQuoteController{quotes: quotes}
}

// AcceptQuote handles POST /api/admin/quotes/:id/accept
func (ac *AdminQuoteController) AcceptQuote(c *gin.Context) {
	ac.transition(c, services.ActionAccept, "Quote accepted by admin", "accepting quote", "Failed to accept quote")
}

// RejectQuote handles POST /api/admin/quotes/:id/reject
func (ac *AdminQuoteController) RejectQuote(c *gin.Context) {
	ac.transition(c, services.ActionReject, "Quote rejected by admin", "rejecting quote", "Failed to reject quote")
}

// AmendQuote handles POST /api/admin/quotes/:id/amend
func (ac *AdminQuoteController) AmendQuote(c *gin.Context) {
	ac.transition(c, services.ActionAmend, "Amendment requested by admin", "requesting amendment", "Failed to request amendment")
}

func (ac *AdminQuoteController) transition(c *gin.Context, action services.QuoteAction, success, op, failure string) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var input FeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	quote, err := ac.quotes.Transition(c.Request.Context(), id, action, input.Feedback, models.ActorAdmin)
	if err != nil {
		if errors.Is(err, services.ErrQuoteNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
			return
		}
		utils.LogError("Admin error "+op, err)
		utils.RespondWithError(c, http.StatusInternalServerError, failure)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": success, "quote": quote})
}
