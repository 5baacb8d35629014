package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	List(w, []string{"a", "b"}, 42)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Status int      `json:"status"`
		Data   []string `json:"data"`
		Total  int64    `json:"total"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Status != 200 || body.Total != 42 || len(body.Data) != 2 {
		t.Fatalf("unexpected envelope: %+v", body)
	}
}

func TestListEnvelopeKeepsZeroTotal(t *testing.T) {
	w := httptest.NewRecorder()
	List(w, []string{}, 0)

	var body map[string]json.RawMessage
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := body["total"]; !ok {
		t.Fatalf("expected total to be present even when zero")
	}
}

func TestMessageEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	Message(w, http.StatusNotFound, "Shop not found")

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var body Envelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Status != 404 || body.Message != "Shop not found" {
		t.Fatalf("unexpected envelope: %+v", body)
	}
	if body.Data != nil || body.Error != nil {
		t.Fatalf("expected data and error to be omitted")
	}
}

func TestServerErrorEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	ServerError(w, "Get All Shops API", errors.New("mongo unreachable"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var body Envelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Message != "Get All Shops API error" {
		t.Fatalf("expected generic message, got %q", body.Message)
	}
	if body.Error == nil || body.Error.Message != "mongo unreachable" || body.Error.Stack == "" {
		t.Fatalf("expected error descriptor with message and stack, got %+v", body.Error)
	}
}

func TestCreatedEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	Created(w, "Shop created successfully", "64f000000000000000000001")

	var body map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["message"] != "Shop created successfully" {
		t.Fatalf("unexpected message %v", body["message"])
	}
	if body["_id"] != "64f000000000000000000001" {
		t.Fatalf("unexpected _id %v", body["_id"])
	}
}
