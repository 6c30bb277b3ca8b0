package external

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrearPreferencia(t *testing.T) {
	var gotAuth string
	var gotReq preferenceRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/checkout/preferences", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(PreferenceResponse{
			ID:        "pref-1",
			InitPoint: "https://checkout.example/pref-1",
		})
	}))
	defer srv.Close()

	pc := NewPagosClient(PagosConfig{
		BaseURL:     srv.URL,
		AccessToken: "token-abc",
		ReturnURL:   "https://app.example/v1/pagos/retorno",
	})

	pref, err := pc.CrearPreferencia(context.Background(), "Publicidad Bar Uno (7 dias)", 1500, "ref-123")
	assert.NoError(t, err)
	assert.Equal(t, "https://checkout.example/pref-1", pref.InitPoint)

	assert.Equal(t, "Bearer token-abc", gotAuth)
	assert.Equal(t, "ref-123", gotReq.ExternalReference)
	assert.Equal(t, "https://app.example/v1/pagos/retorno", gotReq.BackURLs.Success)
	if assert.Len(t, gotReq.Items, 1) {
		assert.Equal(t, 1500.0, gotReq.Items[0].UnitPrice)
		assert.Equal(t, 1, gotReq.Items[0].Quantity)
	}
}

func TestCrearPreferenciaErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	pc := NewPagosClient(PagosConfig{BaseURL: srv.URL, AccessToken: "bad"})
	_, err := pc.CrearPreferencia(context.Background(), "x", 100, "ref")
	assert.Error(t, err)
}

func TestCrearPreferenciaMissingInitPoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(PreferenceResponse{ID: "pref-2"})
	}))
	defer srv.Close()

	pc := NewPagosClient(PagosConfig{BaseURL: srv.URL, AccessToken: "t"})
	_, err := pc.CrearPreferencia(context.Background(), "x", 100, "ref")
	assert.Error(t, err)
}

func TestConsultarPago(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payments/42", r.URL.Path)
		assert.Equal(t, "Bearer t", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(PagoRemoto{
			ID:                42,
			Status:            "approved",
			ExternalReference: "ref-123",
		})
	}))
	defer srv.Close()

	pc := NewPagosClient(PagosConfig{BaseURL: srv.URL, AccessToken: "t"})
	pago, err := pc.ConsultarPago(context.Background(), "42")
	assert.NoError(t, err)
	assert.Equal(t, "approved", pago.Status)
	assert.Equal(t, "ref-123", pago.ExternalReference)
}
