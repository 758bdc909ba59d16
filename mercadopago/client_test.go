package mercadopago

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCreatePreference(t *testing.T) {
	var gotAuth string
	var gotBody PreferenceRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/checkout/preferences" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(Preference{
			ID:                "123456-abc",
			InitPoint:         "https://www.mercadopago.com.br/init",
			SandboxInitPoint:  "https://sandbox.mercadopago.com.br/init",
			ExternalReference: gotBody.ExternalReference,
		})
	}))
	defer srv.Close()

	client := NewClient("TEST-TOKEN").WithBaseURL(srv.URL)

	pref, err := client.CreatePreference(context.Background(), &PreferenceRequest{
		Items: []PreferenceItem{
			{Title: "Caneca", Quantity: 2, UnitPrice: 25.0, CurrencyID: "BRL"},
		},
		ExternalReference: "PED-1-abc",
	})
	if err != nil {
		t.Fatalf("CreatePreference failed: %v", err)
	}

	if gotAuth != "Bearer TEST-TOKEN" {
		t.Errorf("Expected bearer auth, got %q", gotAuth)
	}
	if len(gotBody.Items) != 1 || gotBody.Items[0].Title != "Caneca" {
		t.Errorf("Unexpected request body: %+v", gotBody)
	}
	if pref.ID != "123456-abc" || pref.InitPoint == "" || pref.SandboxInitPoint == "" {
		t.Errorf("Unexpected preference: %+v", pref)
	}
	if pref.ExternalReference != "PED-1-abc" {
		t.Errorf("Expected external reference echoed, got %q", pref.ExternalReference)
	}
}

func TestGetPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payments/42" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Payment{
			ID:                42,
			Status:            StatusApproved,
			ExternalReference: "PED-1-abc",
			TransactionAmount: 90.0,
		})
	}))
	defer srv.Close()

	client := NewClient("TEST-TOKEN").WithBaseURL(srv.URL)

	payment, err := client.GetPayment(context.Background(), "42")
	if err != nil {
		t.Fatalf("GetPayment failed: %v", err)
	}
	if payment.ID != 42 || payment.Status != StatusApproved {
		t.Errorf("Unexpected payment: %+v", payment)
	}
}

func TestNon2xxReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Payment not found"}`))
	}))
	defer srv.Close()

	client := NewClient("TEST-TOKEN").WithBaseURL(srv.URL)

	_, err := client.GetPayment(context.Background(), "999")
	if err == nil {
		t.Fatal("Expected error for 404")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("Expected status in error, got: %v", err)
	}
}

func TestContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := NewClient("TEST-TOKEN").WithBaseURL(srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.GetPayment(ctx, "1"); err == nil {
		t.Fatal("Expected error from cancelled context")
	}
}
