package service

import (
	"testing"

	"frutbras-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInfo() models.CustomerInfo {
	return models.CustomerInfo{
		Name:         "Maria Souza",
		Email:        "maria@example.com",
		Phone:        "(11) 98877-6655",
		Document:     "123.456.789-09",
		ZipCode:      "01310100",
		Street:       "Avenida Paulista",
		Number:       "1578",
		Complement:   "Apto 42",
		Neighborhood: "Bela Vista",
		City:         "São Paulo",
		State:        "SP",
	}
}

func TestValidateCustomerInfoAccepts(t *testing.T) {
	assert.NoError(t, ValidateCustomerInfo(validInfo()))

	// Complement is the only optional field
	info := validInfo()
	info.Complement = ""
	assert.NoError(t, ValidateCustomerInfo(info))
}

func TestValidateCustomerInfoCollectsEveryFailure(t *testing.T) {
	err := ValidateCustomerInfo(models.CustomerInfo{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 10)
	assert.Equal(t, "Nome completo é obrigatório", verr.Fields["name"])
	assert.Equal(t, "CEP inválido. Digite 8 números.", verr.Fields["zipCode"])
}

func TestValidateCustomerInfoFields(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*models.CustomerInfo)
		field   string
		message string
	}{
		{"short name", func(i *models.CustomerInfo) { i.Name = "Jo" }, "name", "Nome completo é obrigatório"},
		{"bad email", func(i *models.CustomerInfo) { i.Email = "maria@" }, "email", "E-mail inválido"},
		{"phone without area code", func(i *models.CustomerInfo) { i.Phone = "987654" }, "phone", "Telefone é obrigatório (com DDD)"},
		{"short document", func(i *models.CustomerInfo) { i.Document = "1234567890" }, "document", "CPF ou CNPJ é obrigatório"},
		{"cep with dash", func(i *models.CustomerInfo) { i.ZipCode = "01310-100" }, "zipCode", "CEP inválido. Digite 8 números."},
		{"cep too short", func(i *models.CustomerInfo) { i.ZipCode = "0131010" }, "zipCode", "CEP inválido. Digite 8 números."},
		{"missing number", func(i *models.CustomerInfo) { i.Number = "  " }, "number", "Número é obrigatório"},
		{"missing state", func(i *models.CustomerInfo) { i.State = "S" }, "state", "Estado é obrigatório"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			info := validInfo()
			tc.mutate(&info)

			err := ValidateCustomerInfo(info)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Len(t, verr.Fields, 1)
			assert.Equal(t, tc.message, verr.Fields[tc.field])
		})
	}
}

func TestPhoneAndDocumentIgnoreFormatting(t *testing.T) {
	info := validInfo()
	info.Phone = "+55 (11) 4002-8922"
	info.Document = "12.345.678/0001-95"

	assert.NoError(t, ValidateCustomerInfo(info))
}
