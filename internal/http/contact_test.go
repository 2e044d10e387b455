package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"feirarinos/internal/domain"
)

func TestContactRedirectsToWhatsApp(t *testing.T) {
	app, be := newTestApp(t)
	id := seedVendor(t, be, domain.Vendor{
		UserID: "u1", DisplayName: "Banca da Maria", Phone: "38999998888",
		Products: []domain.ProductRef{{Category: "Frutas", Item: "Banana"}},
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/contato/"+id, nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "https://wa.me/5538999998888" {
		t.Fatalf("location = %q", loc)
	}
}

func TestContactUnknownVendor(t *testing.T) {
	app, _ := newTestApp(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/contato/nao-existe", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
