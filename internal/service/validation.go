package service

import (
	"fmt"
	"regexp"
	"strings"

	"frutbras-service/internal/models"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	cepPattern   = regexp.MustCompile(`^\d{8}$`)
)

// ValidationError carries field-level validation failures. It is raised
// before any backend call; the handler renders Fields inline per field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ValidateCustomerInfo applies the checkout form's schema: required fields,
// e-mail format, CEP as exactly 8 digits, phone with area code, CPF/CNPJ
// length. Returns a *ValidationError listing every failing field.
func ValidateCustomerInfo(info models.CustomerInfo) error {
	fields := make(map[string]string)

	if len(strings.TrimSpace(info.Name)) < 3 {
		fields["name"] = "Nome completo é obrigatório"
	}
	if !emailPattern.MatchString(info.Email) {
		fields["email"] = "E-mail inválido"
	}
	if len(digitsOf(info.Phone)) < 10 {
		fields["phone"] = "Telefone é obrigatório (com DDD)"
	}
	if len(digitsOf(info.Document)) < 11 {
		fields["document"] = "CPF ou CNPJ é obrigatório"
	}
	if !cepPattern.MatchString(info.ZipCode) {
		fields["zipCode"] = "CEP inválido. Digite 8 números."
	}
	if len(strings.TrimSpace(info.Street)) < 3 {
		fields["street"] = "Rua é obrigatória"
	}
	if strings.TrimSpace(info.Number) == "" {
		fields["number"] = "Número é obrigatório"
	}
	if len(strings.TrimSpace(info.Neighborhood)) < 3 {
		fields["neighborhood"] = "Bairro é obrigatório"
	}
	if len(strings.TrimSpace(info.City)) < 3 {
		fields["city"] = "Cidade é obrigatória"
	}
	if len(strings.TrimSpace(info.State)) < 2 {
		fields["state"] = "Estado é obrigatório"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
