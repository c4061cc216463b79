package meteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const fixture = `{
  "latitude": 40.710335,
  "longitude": -73.99307,
  "timezone": "GMT",
  "current_units": {"time": "iso8601", "interval": "seconds", "temperature_2m": "°F"},
  "current": {"time": "2024-01-15T10:30", "interval": 900, "temperature_2m": 31.3}
}`

func TestFetchCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(fixture))
	}))
	defer srv.Close()

	payload, err := FetchCurrent(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("FetchCurrent: %v", err)
	}
	if payload.Current.Temperature2m == nil || *payload.Current.Temperature2m != 31.3 {
		t.Fatalf("temperature = %v, want 31.3", payload.Current.Temperature2m)
	}
	if payload.Current.Time != "2024-01-15T10:30" {
		t.Fatalf("time = %q", payload.Current.Time)
	}
	if payload.CurrentUnits.Temperature2m != "°F" {
		t.Fatalf("units = %q, want °F", payload.CurrentUnits.Temperature2m)
	}
}

func TestFetchCurrentBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := FetchCurrent(context.Background(), srv.Client(), srv.URL); err == nil {
		t.Fatal("FetchCurrent accepted a 502 response")
	}
}

func TestFetchCurrentBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{nope"))
	}))
	defer srv.Close()

	if _, err := FetchCurrent(context.Background(), srv.Client(), srv.URL); err == nil {
		t.Fatal("FetchCurrent accepted malformed JSON")
	}
}
