package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"frutbras-service/internal/util"

	"go.uber.org/zap"
)

var cepDigits = regexp.MustCompile(`^\d{8}$`)

// Address is the auto-fill payload a postal-code lookup produces
type Address struct {
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// CEPClient resolves Brazilian postal codes through ViaCEP. Lookups are best
// effort: any failure yields ok=false and the caller leaves the address
// fields blank for manual entry.
type CEPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewCEPClient creates a ViaCEP client
func NewCEPClient(baseURL string) *CEPClient {
	return &CEPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: util.GetLogger(),
	}
}

type viaCEPResponse struct {
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       bool   `json:"erro"`
}

// Lookup resolves an 8-digit CEP to an address. Never returns an error to
// the checkout flow; failures are logged and reported as a miss.
func (c *CEPClient) Lookup(ctx context.Context, cep string) (Address, bool) {
	if !cepDigits.MatchString(cep) {
		return Address{}, false
	}

	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, cep)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Warn("Failed to build CEP request", zap.String("cep", cep), zap.Error(err))
		util.CEPLookupsTotal.WithLabelValues("error").Inc()
		return Address{}, false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("CEP lookup failed", zap.String("cep", cep), zap.Error(err))
		util.CEPLookupsTotal.WithLabelValues("error").Inc()
		return Address{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("CEP lookup returned non-OK status",
			zap.String("cep", cep),
			zap.Int("status", resp.StatusCode))
		util.CEPLookupsTotal.WithLabelValues("error").Inc()
		return Address{}, false
	}

	var body viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logger.Warn("Failed to decode CEP response", zap.String("cep", cep), zap.Error(err))
		util.CEPLookupsTotal.WithLabelValues("error").Inc()
		return Address{}, false
	}

	if body.Erro {
		util.CEPLookupsTotal.WithLabelValues("not_found").Inc()
		return Address{}, false
	}

	util.CEPLookupsTotal.WithLabelValues("ok").Inc()
	return Address{
		Street:       body.Logradouro,
		Neighborhood: body.Bairro,
		City:         body.Localidade,
		State:        body.UF,
	}, true
}
