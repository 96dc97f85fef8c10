package submission

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/safehaven/brandsite/internal/attribution"
)

func TestHTTPIntakeClient_Submit(t *testing.T) {
	var received Payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		json.NewEncoder(w).Encode(okReceipt())
	}))
	defer srv.Close()

	client := NewHTTPIntakeClient(srv.URL, 5*time.Second)
	payload := BuildPayload(completeDraft(), "safehaven", "sess_1", attribution.Direct(), time.Now())

	receipt, err := client.Submit(context.Background(), payload)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if receipt.LeadID == "" || receipt.NextSteps.AssignedTo != "Local Sales Team" {
		t.Errorf("unexpected receipt %+v", receipt)
	}
	if received.SessionID != "sess_1" || received.UTMSource != "direct" {
		t.Errorf("unexpected delivered payload %+v", received)
	}
}

func TestHTTPIntakeClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"success":false,"error":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewHTTPIntakeClient(srv.URL, 5*time.Second)
	if _, err := client.Submit(context.Background(), Payload{}); err == nil {
		t.Error("expected error on 500 response")
	}
}

func TestHTTPIntakeClient_UnsuccessfulReceipt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Receipt{Success: false, Message: "rejected"})
	}))
	defer srv.Close()

	client := NewHTTPIntakeClient(srv.URL, 5*time.Second)
	if _, err := client.Submit(context.Background(), Payload{}); err == nil {
		t.Error("expected error on unsuccessful receipt")
	}
}
