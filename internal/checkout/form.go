package checkout

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Form carries the customer contact and shipping fields of the checkout
// page. All values are trimmed before validation and persistence.
type Form struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	Notes   string `json:"notes"`
}

func (f Form) trimmed() Form {
	return Form{
		Name:    strings.TrimSpace(f.Name),
		Phone:   strings.TrimSpace(f.Phone),
		Email:   strings.TrimSpace(f.Email),
		Address: strings.TrimSpace(f.Address),
		City:    strings.TrimSpace(f.City),
		Notes:   strings.TrimSpace(f.Notes),
	}
}

// Validate returns one message per invalid field; an empty map means the
// form may be submitted. Email is optional but must parse when present.
func (f Form) Validate() map[string]string {
	t := f.trimmed()
	errs := map[string]string{}

	if n := utf8.RuneCountInString(t.Name); n < 2 || n > 100 {
		errs["name"] = "Nome é obrigatório"
	}
	if n := utf8.RuneCountInString(t.Phone); n < 10 || n > 20 {
		errs["phone"] = "Telefone inválido"
	}
	if t.Email != "" {
		if _, err := mail.ParseAddress(t.Email); err != nil || utf8.RuneCountInString(t.Email) > 255 {
			errs["email"] = "Email inválido"
		}
	}
	if utf8.RuneCountInString(t.Address) > 300 {
		errs["address"] = "Endereço muito longo"
	}
	if utf8.RuneCountInString(t.City) > 100 {
		errs["city"] = "Cidade muito longa"
	}
	if utf8.RuneCountInString(t.Notes) > 500 {
		errs["notes"] = "Observações muito longas"
	}
	return errs
}
