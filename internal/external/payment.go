package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// PagosClient talks to the hosted checkout of the payment provider. A
// preference is created per advertisement purchase; the provider redirects
// the buyer back with the collection result in the query string.
type PagosClient struct {
	baseURL     string
	accessToken string
	returnURL   string
	httpClient  *http.Client
}

type PagosConfig struct {
	BaseURL     string
	AccessToken string
	ReturnURL   string
	Timeout     time.Duration
}

type preferenceItem struct {
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type preferenceBackURLs struct {
	Success string `json:"success"`
	Pending string `json:"pending"`
	Failure string `json:"failure"`
}

type preferenceRequest struct {
	Items             []preferenceItem   `json:"items"`
	ExternalReference string             `json:"external_reference"`
	BackURLs          preferenceBackURLs `json:"back_urls"`
	AutoReturn        string             `json:"auto_return"`
}

type PreferenceResponse struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

type PagoRemoto struct {
	ID                int64  `json:"id"`
	Status            string `json:"status"`
	StatusDetail      string `json:"status_detail"`
	ExternalReference string `json:"external_reference"`
}

func NewPagosClient(cfg PagosConfig) *PagosClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &PagosClient{
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		returnURL:   cfg.ReturnURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// CrearPreferencia registers a checkout preference for a single item and
// returns the URL the buyer must be sent to. referencia travels as
// external_reference and comes back untouched in the return redirect.
func (pc *PagosClient) CrearPreferencia(ctx context.Context, titulo string, precio float64, referencia string) (*PreferenceResponse, error) {
	reqBody := preferenceRequest{
		Items: []preferenceItem{{
			Title:     titulo,
			Quantity:  1,
			UnitPrice: precio,
		}},
		ExternalReference: referencia,
		BackURLs: preferenceBackURLs{
			Success: pc.returnURL,
			Pending: pc.returnURL,
			Failure: pc.returnURL,
		},
		AutoReturn: "approved",
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal preference: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, pc.baseURL+"/checkout/preferences", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+pc.accessToken)

	resp, err := pc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to create preference: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var result PreferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if result.InitPoint == "" {
		return nil, fmt.Errorf("preference response missing init_point")
	}

	return &result, nil
}

// ConsultarPago fetches the provider-side state of a collection. Used to
// re-verify the status reported in the return redirect.
func (pc *PagosClient) ConsultarPago(ctx context.Context, pagoID string) (*PagoRemoto, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pc.baseURL+"/v1/payments/"+pagoID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+pc.accessToken)

	resp, err := pc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to check payment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var result PagoRemoto
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}
