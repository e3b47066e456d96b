package compute

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gnomonworks/yantra/types"
)

func testRequest() *GenerationRequest {
	return &GenerationRequest{
		Instrument: types.InstrumentSamrat,
		Location: types.Location{
			Name:      "Jaipur Jantar Mantar",
			Latitude:  26.9124,
			Longitude: 75.7873,
			Elevation: 431,
			Timezone:  "Asia/Kolkata",
		},
		Scale:             2.0,
		MaterialThickness: 0.01,
		IncludeBase:       true,
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Fatal("NewClient accepted empty base URL")
	}
}

func TestGenerateSuccess(t *testing.T) {
	var gotPath string
	var gotReq GenerationRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		_ = json.NewEncoder(w).Encode(types.GenerationResult{
			ID:         "gen-1",
			Instrument: types.InstrumentSamrat,
			Scale:      2.0,
			Validation: types.ValidationReport{RMSError: 0.05, AccuracyTier: "excellent"},
		})
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	defer client.Close()

	result, err := client.Generate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if gotPath != "/api/v1/generate/" {
		t.Errorf("request path = %q", gotPath)
	}
	if gotReq.Instrument != types.InstrumentSamrat || gotReq.Scale != 2.0 {
		t.Errorf("request payload = %+v", gotReq)
	}
	if result.ID != "gen-1" || result.Validation.RMSError != 0.05 {
		t.Errorf("result = %+v", result)
	}
}

func TestGenerateRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"message": "validation failed",
			"detail":  "scale out of supported bound",
		})
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	_, err = client.Generate(context.Background(), testRequest())
	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("error %v is not a *RemoteError", err)
	}
	if remote.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", remote.StatusCode)
	}
	if remote.DisplayMessage() != "scale out of supported bound" {
		t.Errorf("DisplayMessage() = %q, want verbatim detail", remote.DisplayMessage())
	}
}

func TestGenerateRemoteErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, _ := NewClient(Config{BaseURL: srv.URL})
	_, err := client.Generate(context.Background(), testRequest())

	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("error %v is not a *RemoteError", err)
	}
	if remote.DisplayMessage() != TransportFallbackMessage {
		t.Errorf("DisplayMessage() = %q, want fallback", remote.DisplayMessage())
	}
}

func TestGenerateTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client, _ := NewClient(Config{BaseURL: srv.URL})
	_, err := client.Generate(context.Background(), testRequest())

	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("error %v is not a *TransportError", err)
	}
	if transport.Op != "generate" {
		t.Errorf("Op = %q, want generate", transport.Op)
	}
}

func TestGenerateMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client, _ := NewClient(Config{BaseURL: srv.URL})
	_, err := client.Generate(context.Background(), testRequest())

	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("malformed body error %v is not a *TransportError", err)
	}
}

func TestGenerateTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	client, _ := NewClient(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := client.Generate(context.Background(), testRequest())

	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("timeout error %v is not a *TransportError", err)
	}
}

func TestSunPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/astronomy/sun-path" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req SunPathRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.NumPoints != DefaultSunPathPoints {
			t.Errorf("num_points = %d, want default %d", req.NumPoints, DefaultSunPathPoints)
		}
		_ = json.NewEncoder(w).Encode(types.SunPath{DayLengthHours: 13.5})
	}))
	defer srv.Close()

	client, _ := NewClient(Config{BaseURL: srv.URL})
	req := SunPathRequest{Date: "2024-06-21"}
	path, err := client.SunPath(context.Background(), &req)
	if err != nil {
		t.Fatalf("SunPath error: %v", err)
	}
	if path.DayLengthHours != 13.5 {
		t.Errorf("day length = %v, want 13.5", path.DayLengthHours)
	}
	// Defaulting happens on the wire, not in the caller's request.
	if req.NumPoints != 0 {
		t.Errorf("caller request mutated: num_points = %d, want 0", req.NumPoints)
	}
}

func TestCustomHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "secret" {
			t.Errorf("X-Api-Key = %q", r.Header.Get("X-Api-Key"))
		}
		_ = json.NewEncoder(w).Encode(types.GenerationResult{ID: "gen-2"})
	}))
	defer srv.Close()

	client, _ := NewClient(Config{
		BaseURL: srv.URL,
		Headers: map[string]string{"X-Api-Key": "secret"},
	})
	if _, err := client.Generate(context.Background(), testRequest()); err != nil {
		t.Fatalf("Generate error: %v", err)
	}
}
