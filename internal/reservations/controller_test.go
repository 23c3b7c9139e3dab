package reservations

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"guideomra/internal/auth"
	"guideomra/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newTestEngine(f *fixture, tokens auth.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	SetupReservationRoutes(engine.Group("/api/v1"), NewController(f.submitter), tokens)
	return engine
}

func postJSON(engine *gin.Engine, url, token string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestCreateReservationEndpoint(t *testing.T) {
	tokens := auth.NewService("reservations-secret", "guideomra", time.Minute, time.Hour)
	f := newFixture(true)
	engine := newTestEngine(f, tokens)
	pair, _ := tokens.IssueTokenPair(auth.Session{UserID: uuid.New(), Role: auth.RolePilgrim})

	incomplete := completeRequest()
	incomplete.MeetingPoint = ""
	w := postJSON(engine, "/api/v1/reservations", pair.AccessToken, incomplete)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("incomplete status = %d (%s)", w.Code, w.Body.String())
	}
	var body struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.Message != "Lieu manquant" {
		t.Fatalf("message = %q, want verbatim prompt", body.Message)
	}

	req := completeRequest()
	if w := postJSON(engine, "/api/v1/reservations", "", req); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous status = %d", w.Code)
	}
	if w := postJSON(engine, "/api/v1/reservations", pair.AccessToken, req); w.Code != http.StatusCreated {
		t.Fatalf("create status = %d (%s)", w.Code, w.Body.String())
	}
	if w := postJSON(engine, "/api/v1/reservations", pair.AccessToken, req); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("replay status = %d, want 422", w.Code)
	}

	bad := completeRequest()
	bad.ServiceID = "not-a-uuid"
	if w := postJSON(engine, "/api/v1/reservations", pair.AccessToken, bad); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid body status = %d", w.Code)
	}
}

func TestCreateReservationUnknownFailure(t *testing.T) {
	tokens := auth.NewService("reservations-secret", "guideomra", time.Minute, time.Hour)
	f := newFixture(false)
	f.repo.err = errTest
	engine := newTestEngine(f, tokens)
	pair, _ := tokens.IssueTokenPair(auth.Session{UserID: uuid.New(), Role: auth.RolePilgrim})

	var logs bytes.Buffer
	logger.SetDefault(logger.NewWithWriter(&logs, "info", true))
	defer logger.SetDefault(logger.Discard())

	w := postJSON(engine, "/api/v1/reservations", pair.AccessToken, completeRequest())
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if bytes.Contains(w.Body.Bytes(), []byte(errTest.Error())) {
		t.Fatal("internal error leaked to client")
	}
	if !bytes.Contains(logs.Bytes(), []byte("HTTP Error")) || !bytes.Contains(logs.Bytes(), []byte(errTest.Error())) {
		t.Fatalf("cause not logged: %s", logs.String())
	}
}

func TestQuoteEndpointIsPublic(t *testing.T) {
	tokens := auth.NewService("reservations-secret", "guideomra", time.Minute, time.Hour)
	engine := newTestEngine(newFixture(false), tokens)

	w := postJSON(engine, "/api/v1/reservations/quote", "", completeRequest())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	var body struct {
		Data QuoteResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Quote.Total != 330 || !body.Data.Complete {
		t.Fatalf("quote = %+v", body.Data)
	}
}

func TestListReservationsEndpoint(t *testing.T) {
	tokens := auth.NewService("reservations-secret", "guideomra", time.Minute, time.Hour)
	f := newFixture(false)
	f.repo.list = []Reservation{{ID: uuid.New(), ServiceName: "Omra accompagnée", Status: StatusConfirmed}}
	engine := newTestEngine(f, tokens)
	pair, _ := tokens.IssueTokenPair(auth.Session{UserID: uuid.New(), Role: auth.RolePilgrim})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Data []ReservationResponse `json:"data"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if len(body.Data) != 1 || body.Data[0].StatusLabel != "Confirmé" || body.Data[0].GuideName != "Guide Inconnu" {
		t.Fatalf("data = %+v", body.Data)
	}
}
