package quotes

import (
	"fmt"
	"strings"

	"github.com/aquasur/aquasur-backend/pkg/db/models"
	"github.com/aquasur/aquasur-backend/pkg/money"
)

// ComposeMessage renders the customer-facing quote summary. Staff and
// customers read this text verbatim in WhatsApp, so the field order is a
// contract: header, quote number, customer block, one block per line with
// addon sub-lines and subtotal, grand total, optional notes, optional
// document link, closing line.
func ComposeMessage(businessName string, quote *models.Quote) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*Nueva cotización - %s*\n", businessName)
	fmt.Fprintf(&b, "Cotización N° %s\n", quote.Number)
	b.WriteString("\n")

	b.WriteString("*Cliente*\n")
	fmt.Fprintf(&b, "Nombre: %s\n", quote.CustomerName)
	fmt.Fprintf(&b, "Email: %s\n", quote.CustomerEmail)
	fmt.Fprintf(&b, "Teléfono: %s\n", quote.CustomerPhone)
	if quote.Address != nil && strings.TrimSpace(*quote.Address) != "" {
		fmt.Fprintf(&b, "Dirección: %s\n", *quote.Address)
	}
	b.WriteString("\n")

	b.WriteString("*Detalle*\n")
	for i, item := range quote.Items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.ProductName)
		fmt.Fprintf(&b, "   %d x %s\n", item.Quantity, money.FormatCurrency(item.UnitPrice))
		for _, addon := range item.Addons {
			fmt.Fprintf(&b, "   + %s: %d x %s\n", addon.Name, addon.Quantity, money.FormatCurrency(addon.UnitPrice))
		}
		fmt.Fprintf(&b, "   Subtotal: %s\n", money.FormatCurrency(item.LineTotal))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "*Total: %s*\n", money.FormatCurrency(quote.TotalAmount))

	if quote.Notes != nil && strings.TrimSpace(*quote.Notes) != "" {
		b.WriteString("\n")
		b.WriteString("*Notas*\n")
		fmt.Fprintf(&b, "%s\n", *quote.Notes)
	}

	if quote.DocumentURL != nil && strings.TrimSpace(*quote.DocumentURL) != "" {
		b.WriteString("\n")
		fmt.Fprintf(&b, "Documento: %s\n", *quote.DocumentURL)
	}

	b.WriteString("\nQuedamos atentos para coordinar los siguientes pasos.")
	return b.String()
}
