package services

import (
	"fmt"
	"strings"

	"pjhweb-backend/models"
)

// QuoteResponseLink is the customer-facing page for a quote token.
func QuoteResponseLink(publicURL, token string) string {
	return strings.TrimRight(publicURL, "/") + "/quote-response/" + token
}

func quoteEmail(customer *models.Customer, quote *models.Quote, link string, reminder bool) (string, string) {
	number := quoteNumberOf(quote)

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", customer.Name)
	if reminder {
		fmt.Fprintf(&b, "Just a reminder that quote %s is still waiting for your response.\n\n", number)
	} else {
		fmt.Fprintf(&b, "Please find your quote %s for \"%s\" below.\n\n", number, quote.Title)
	}
	for _, item := range quote.Items {
		fmt.Fprintf(&b, "  %s  x%g @ £%.2f = £%.2f\n", item.Description, item.Quantity, item.Price, item.Total())
	}
	fmt.Fprintf(&b, "\nTotal: £%.2f\nDeposit: £%.2f\n\n", models.ItemsTotal(quote.Items), quote.Deposit)
	fmt.Fprintf(&b, "Accept, reject or ask for changes here:\n%s\n\nPJH Web Services\n", link)

	subject := "Your quote " + number + " from PJH Web Services"
	if reminder {
		subject = "Reminder: quote " + number + " from PJH Web Services"
	}
	return subject, b.String()
}

func quoteSMS(quote *models.Quote, link string) string {
	return fmt.Sprintf("PJH Web Services: quote %s is ready. Respond here: %s", quoteNumberOf(quote), link)
}

func invoiceEmail(inv *models.Invoice) (string, string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", inv.Customer.Name)
	fmt.Fprintf(&b, "Please find invoice %s (%s) for \"%s\".\n\n", inv.InvoiceNumber, inv.Stage, inv.Title)
	fmt.Fprintf(&b, "Amount due: £%.2f\n", inv.Amount)
	if inv.Paid > 0 {
		fmt.Fprintf(&b, "Received so far: £%.2f\n", inv.Paid)
	}
	b.WriteString("\nThank you,\nPJH Web Services\n")
	return "Invoice " + inv.InvoiceNumber + " from PJH Web Services", b.String()
}

func quoteNumberOf(quote *models.Quote) string {
	if quote.QuoteNumber != nil {
		return *quote.QuoteNumber
	}
	return fmt.Sprintf("#%d", quote.ID)
}
