package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"pjhweb-backend/services"
	"pjhweb-backend/utils"

	"github.com/gin-gonic/gin"
)

type ContactInput struct {
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email" binding:"required,email"`
	Phone   *string `json:"phone"`
	Message string  `json:"message" binding:"required"`
}

// ContactController forwards website enquiries to the business inbox
type ContactController struct {
	notifier services.Notifier
	inbox    string
}

func NewContactController(notifier services.Notifier, inbox string) *ContactController {
	return &ContactController{notifier: notifier, inbox: inbox}
}

func (cc *ContactController) SubmitContact(c *gin.Context) {
	var input ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	phone := utils.NullIfBlank(input.Phone)
	if phone != nil && !utils.ValidatePhone(*phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}
	if cc.inbox == "" {
		utils.RespondWithError(c, http.StatusServiceUnavailable, "Contact form is not configured")
		return
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Name: %s\nEmail: %s\n", input.Name, input.Email)
	if phone != nil {
		fmt.Fprintf(&body, "Phone: %s\n", *phone)
	}
	fmt.Fprintf(&body, "\n%s\n", input.Message)

	err := cc.notifier.SendEmail(c.Request.Context(), cc.inbox, "Website enquiry from "+input.Name, body.String())
	if err != nil {
		if errors.Is(err, services.ErrNotConfigured) {
			utils.RespondWithError(c, http.StatusServiceUnavailable, "Contact form is not configured")
			return
		}
		utils.LogError("Error forwarding contact message", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to send message")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Thanks, we'll be in touch soon"})
}
