package eodhd

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/etnz/gainers"
	"github.com/etnz/gainers/date"
)

func newTestSource(t *testing.T) *Source {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/eod/ACME.US", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_token") != "key" || r.URL.Query().Get("from") != "2025-03-03" {
			http.Error(w, "bad query", http.StatusBadRequest)
			return
		}
		w.Write([]byte(`[
			{"date":"2025-03-03","open":10,"high":11,"low":9,"close":10.5,"adjusted_close":10.5,"volume":1000},
			{"date":"2025-03-04","open":10.5,"high":12,"low":10,"close":11.25,"adjusted_close":11.25,"volume":2000}
		]`))
	})
	mux.HandleFunc("/eod/EMPTY.US", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/real-time/ACME.US", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"ACME.US","close":11.25,"volume":2000,"previousClose":10.5,"change":0.75,"change_p":"NA"}`))
	})
	mux.HandleFunc("/real-time/DEAD.US", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"DEAD.US","close":"NA","volume":"NA","change_p":"NA"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	s := New("key")
	s.BaseURL = srv.URL + "/"
	return s
}

func TestDailyBars(t *testing.T) {
	s := newTestSource(t)
	bars, err := s.DailyBars(context.Background(), "ACME", date.MustParse("2025-03-03"), date.MustParse("2025-03-04"))
	if err != nil {
		t.Fatalf("DailyBars() error = %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("DailyBars() returned %d bars, want 2", len(bars))
	}
	want := gainers.Bar{On: date.MustParse("2025-03-04"), Open: 10.5, Close: 11.25, Volume: 2000}
	if bars[1] != want {
		t.Errorf("DailyBars()[1] = %+v, want %+v", bars[1], want)
	}

	_, err = s.DailyBars(context.Background(), "EMPTY", date.MustParse("2025-03-03"), date.MustParse("2025-03-04"))
	if !errors.Is(err, gainers.ErrDataUnavailable) {
		t.Errorf("DailyBars(EMPTY) error = %v, want ErrDataUnavailable", err)
	}
	_, err = s.DailyBars(context.Background(), "NOPE", date.MustParse("2025-03-03"), date.MustParse("2025-03-04"))
	if !errors.Is(err, gainers.ErrDataUnavailable) {
		t.Errorf("DailyBars(NOPE) error = %v, want ErrDataUnavailable", err)
	}
}

func TestFundamentals(t *testing.T) {
	s := newTestSource(t)
	f, err := s.Fundamentals(context.Background(), "ACME")
	if err != nil {
		t.Fatalf("Fundamentals() error = %v", err)
	}
	if p, _ := f.Price.Get(); p != 11.25 {
		t.Errorf("Fundamentals() price = %v, want 11.25", f.Price)
	}
	if v, _ := f.Volume.Get(); v != 2000 {
		t.Errorf("Fundamentals() volume = %v, want 2000", f.Volume)
	}
	if f.ChangePct.IsKnown() {
		t.Errorf("Fundamentals() change = %v, want unknown for NA", f.ChangePct)
	}

	if _, err := s.Fundamentals(context.Background(), "DEAD"); !errors.Is(err, gainers.ErrDataUnavailable) {
		t.Errorf("Fundamentals(DEAD) error = %v, want ErrDataUnavailable", err)
	}
}

func TestSymbol(t *testing.T) {
	for in, want := range map[string]string{"ACME": "ACME.US", "NVD.F": "NVD.F"} {
		if got := symbol(in); got != want {
			t.Errorf("symbol(%q) = %q, want %q", in, got, want)
		}
	}
}
