package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	fhttp "github.com/bogdanfinn/fhttp"
)

func TestBuildHeadersSetsRefererAndOrder(t *testing.T) {
	h := BuildHeaders("https://growagardenstock.com/api/stock?type=egg")
	if got := h.Get("Referer"); got != "https://growagardenstock.com/" {
		t.Fatalf("expected referer of the source host, got %q", got)
	}
	if !strings.Contains(h.Get("Accept"), "application/json") {
		t.Fatalf("expected json accept header, got %q", h.Get("Accept"))
	}
	if !strings.Contains(h.Get("User-Agent"), "Chrome/") {
		t.Fatalf("expected chrome user agent, got %q", h.Get("User-Agent"))
	}
	if len(h[fhttp.HeaderOrderKey]) == 0 {
		t.Fatalf("expected header order key to be set")
	}
}

func TestFetchReturnsStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Errorf("expected a user agent")
		}
		if r.URL.Query().Get("type") == "missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"egg":["Common Egg"]}`))
	}))
	defer srv.Close()

	c, err := New(Options{TimeoutSeconds: 5})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	status, body, err := c.Fetch(context.Background(), srv.URL+"/api/stock?type=egg")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if string(body) != `{"egg":["Common Egg"]}` {
		t.Fatalf("unexpected body %q", body)
	}

	status, _, err = c.Fetch(context.Background(), srv.URL+"/api/stock?type=missing")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}
