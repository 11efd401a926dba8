package controllers

import (
	"errors"
	"net/http"

	"pjhweb-backend/services"
	"pjhweb-backend/utils"

	"github.com/gin-gonic/gin"
)

type InvoiceController struct {
	invoices *services.InvoiceService
}

func NewInvoiceController(invoices *services.InvoiceService) *InvoiceController {
	return &InvoiceController{invoices: invoices}
}

// GetInvoices lists every invoice issued so far
func (ic *InvoiceController) GetInvoices(c *gin.Context) {
	invoices, err := ic.invoices.List(c.Request.Context())
	if err != nil {
		utils.LogError("Error fetching invoices", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "invoices": invoices})
}

// GetOrderInvoices lists the invoices issued for one order
func (ic *InvoiceController) GetOrderInvoices(c *gin.Context) {
	orderID, ok := utils.ParseIDParam(c, "orderId")
	if !ok {
		return
	}

	invoices, err := ic.invoices.ForOrder(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
			return
		}
		utils.LogError("Error fetching order invoices", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "invoices": invoices})
}

// IssueInvoice marks a stage invoiced and, with ?send=true, emails it
func (ic *InvoiceController) IssueInvoice(c *gin.Context) {
	orderID, ok := utils.ParseIDParam(c, "orderId")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	invoice, err := ic.invoices.Issue(ctx, orderID, c.Param("stage"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStage):
			utils.RespondWithError(c, http.StatusBadRequest, "Stage must be deposit or balance")
		case errors.Is(err, services.ErrOrderNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		default:
			utils.LogError("Error issuing invoice", err)
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to issue invoice")
		}
		return
	}

	emailed := false
	message := "Invoice issued"
	if c.Query("send") == "true" {
		if err := ic.invoices.Send(ctx, invoice); err != nil {
			utils.LogError("Error emailing invoice "+invoice.InvoiceNumber, err)
			message = "Invoice issued but could not be emailed"
		} else {
			emailed = true
			message = "Invoice issued and emailed"
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "invoice": invoice, "emailed": emailed})
}
