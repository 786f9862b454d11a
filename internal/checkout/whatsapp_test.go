package checkout

import (
	"net/url"
	"strings"
	"testing"

	"github.com/campoverde/agroloja/internal/cart"
)

func TestWhatsAppLink(t *testing.T) {
	lines := []cart.Line{
		{ProductID: "p1", Title: "Milho X", Quantity: 2},
		{ProductID: "p2", Title: "Soja Y", Quantity: 1},
	}

	link := WhatsAppLink("5511999998888", lines)
	if !strings.HasPrefix(link, "https://wa.me/5511999998888?text=") {
		t.Fatalf("unexpected link prefix: %s", link)
	}

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	msg := u.Query().Get("text")
	for _, want := range []string{
		"Olá! Gostaria de fazer um pedido:",
		"• Milho X (x2)",
		"• Soja Y (x1)",
		"Poderia me informar valores e disponibilidade?",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}
