package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/campoverde/agroloja/internal/cart"
)

// WhatsAppLink builds the pre-filled wa.me message used to hand the
// order off to the sales channel. It is a convenience link only: it is
// computed after persistence and can never block or fail an order.
func WhatsAppLink(number string, lines []cart.Line) string {
	var b strings.Builder
	b.WriteString("Olá! Gostaria de fazer um pedido:\n\n")
	for _, l := range lines {
		fmt.Fprintf(&b, "• %s (x%d)\n", l.Title, l.Quantity)
	}
	b.WriteString("\nPoderia me informar valores e disponibilidade?")

	return "https://wa.me/" + number + "?text=" + url.QueryEscape(b.String())
}
