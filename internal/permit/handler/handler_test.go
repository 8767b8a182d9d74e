package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"parapet/internal/audit"
	"parapet/internal/permit/service"
	"parapet/internal/permit/store"
	"parapet/internal/platform/middleware"
)

const adminToken = "secret-token"

func newPermitRouter(t *testing.T) chi.Router {
	t.Helper()
	svc := service.New(store.NewInMemory(), audit.NewPublisher(audit.NewInMemoryStore()), nil)
	h := New(svc, slog.New(slog.NewTextHandler(testWriter{t}, nil)))

	r := chi.NewRouter()
	h.Register(r, middleware.RequireAdmin(adminToken))
	return r
}

func TestAdminTokenRequiredForMutations(t *testing.T) {
	router := newPermitRouter(t)

	body, _ := json.Marshal(map[string]string{"application_number": "B1-I1"})
	req := httptest.NewRequest(http.MethodPost, "/applications", bytes.NewReader(body))
	// No admin token header set
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 when admin token missing, got %d", rec.Code)
	}
}

func TestCreateAndClassifyViaHandlers(t *testing.T) {
	router := newPermitRouter(t)
	propertyID := uuid.New()

	create := func(number, status string) {
		payload := map[string]any{
			"property_id":        propertyID,
			"application_number": number,
			"source":             "legacy-ledger",
			"raw_status":         status,
			"filing_date":        "2023-05-01T00:00:00Z",
		}
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPost, "/applications", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Admin-Token", adminToken)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201 creating %s, got %d: %s", number, rec.Code, rec.Body.String())
		}
	}

	create("B00020213-I1-EL", "Q")
	create("B00020213-P1-EL", "A")
	create("C00099999", "A")

	req := httptest.NewRequest(http.MethodGet, "/properties/"+propertyID.String()+"/applications", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from classified view, got %d", rec.Code)
	}

	var res struct {
		Rows []struct {
			ApplicationNumber string `json:"application_number"`
			DecodedStatus     string `json:"decoded_status"`
			StatusBucket      string `json:"status_bucket"`
			RelatedFilings    []struct {
				ApplicationNumber string `json:"application_number"`
			} `json:"related_filings"`
		} `json:"rows"`
		ActiveCount int `json:"active_count"`
		TotalCount  int `json:"total_count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode classified response: %v", err)
	}

	if res.TotalCount != 3 || res.ActiveCount != 3 {
		t.Fatalf("expected 3 total / 3 active, got %d / %d", res.TotalCount, res.ActiveCount)
	}
	if len(res.Rows) != 2 {
		t.Fatalf("expected 2 top-level rows, got %d", len(res.Rows))
	}

	var initial *struct {
		ApplicationNumber string `json:"application_number"`
		DecodedStatus     string `json:"decoded_status"`
		StatusBucket      string `json:"status_bucket"`
		RelatedFilings    []struct {
			ApplicationNumber string `json:"application_number"`
		} `json:"related_filings"`
	}
	for i := range res.Rows {
		if res.Rows[i].ApplicationNumber == "B00020213-I1-EL" {
			initial = &res.Rows[i]
		}
	}
	if initial == nil {
		t.Fatalf("initial filing missing from display rows")
	}
	if initial.DecodedStatus != "Permit Issued" || initial.StatusBucket != "issued" {
		t.Fatalf("unexpected decoding: %+v", initial)
	}
	if len(initial.RelatedFilings) != 1 || initial.RelatedFilings[0].ApplicationNumber != "B00020213-P1-EL" {
		t.Fatalf("expected P1 nested under initial, got %+v", initial.RelatedFilings)
	}
}

func TestGetUnknownApplication(t *testing.T) {
	router := newPermitRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/applications/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestInvalidIDIsBadRequest(t *testing.T) {
	router := newPermitRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/applications/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

// testWriter routes slog output through the test log so failures stay readable.
type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}
