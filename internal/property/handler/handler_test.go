package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"parapet/internal/audit"
	"parapet/internal/platform/middleware"
	"parapet/internal/property/service"
	"parapet/internal/property/store"
)

const adminToken = "secret-token"

func newPropertyRouter(t *testing.T) chi.Router {
	t.Helper()
	svc := service.New(store.NewInMemory(), audit.NewPublisher(audit.NewInMemoryStore()), nil)
	h := New(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))

	r := chi.NewRouter()
	h.Register(r, middleware.RequireAdmin(adminToken))
	return r
}

func createProperty(t *testing.T, router chi.Router, payload map[string]any) uuid.UUID {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/properties", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Token", adminToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating property, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	if resp.ID == uuid.Nil {
		t.Fatalf("expected id in response")
	}
	return resp.ID
}

func TestPropertyCRUDViaHandlers(t *testing.T) {
	router := newPropertyRouter(t)

	id := createProperty(t, router, map[string]any{
		"address": "123 Mott Street",
		"borough": "Manhattan",
		"units":   12,
	})

	getReq := httptest.NewRequest(http.MethodGet, "/properties/"+id.String(), nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, getReq)
	if getRec.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching property, got %d", getRec.Code)
	}

	updateBody, _ := json.Marshal(map[string]any{
		"address": "123 Mott Street",
		"borough": "Manhattan",
		"units":   14,
	})
	updateReq := httptest.NewRequest(http.MethodPut, "/properties/"+id.String(), bytes.NewReader(updateBody))
	updateReq.Header.Set("Content-Type", "application/json")
	updateReq.Header.Set("X-Admin-Token", adminToken)
	updateRec := httptest.NewRecorder()
	router.ServeHTTP(updateRec, updateReq)
	if updateRec.Code != http.StatusOK {
		t.Fatalf("expected 200 updating property, got %d: %s", updateRec.Code, updateRec.Body.String())
	}

	deleteReq := httptest.NewRequest(http.MethodDelete, "/properties/"+id.String(), nil)
	deleteReq.Header.Set("X-Admin-Token", adminToken)
	deleteRec := httptest.NewRecorder()
	router.ServeHTTP(deleteRec, deleteReq)
	if deleteRec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 deleting property, got %d", deleteRec.Code)
	}

	goneReq := httptest.NewRequest(http.MethodGet, "/properties/"+id.String(), nil)
	goneRec := httptest.NewRecorder()
	router.ServeHTTP(goneRec, goneReq)
	if goneRec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", goneRec.Code)
	}
}

func TestPropertyValidation(t *testing.T) {
	router := newPropertyRouter(t)

	body, _ := json.Marshal(map[string]any{
		"address": "1 Main",
		"borough": "Springfield",
	})
	req := httptest.NewRequest(http.MethodPost, "/properties", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Token", adminToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown borough, got %d", rec.Code)
	}

	var errResp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&errResp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if errResp["error"] != "bad_request" {
		t.Fatalf("expected bad_request code, got %q", errResp["error"])
	}
}

func TestPropertyListByPortfolio(t *testing.T) {
	router := newPropertyRouter(t)
	portfolioID := uuid.New()

	createProperty(t, router, map[string]any{
		"address":      "10 Grand Street",
		"borough":      "Brooklyn",
		"portfolio_id": portfolioID,
	})
	createProperty(t, router, map[string]any{
		"address": "77 Hudson Avenue",
		"borough": "Brooklyn",
	})

	req := httptest.NewRequest(http.MethodGet, "/properties?portfolio_id="+portfolioID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 listing properties, got %d", rec.Code)
	}

	var resp struct {
		Properties []struct {
			Address string `json:"address"`
		} `json:"properties"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	if len(resp.Properties) != 1 || resp.Properties[0].Address != "10 Grand Street" {
		t.Fatalf("expected only the portfolio property, got %+v", resp.Properties)
	}
}
