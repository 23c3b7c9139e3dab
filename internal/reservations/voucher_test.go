package reservations

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"guideomra/internal/auth"
	"guideomra/internal/users"

	"github.com/google/uuid"
)

func sampleReservation(userID uuid.UUID) *Reservation {
	return &Reservation{
		ID:           uuid.New(),
		UserID:       userID,
		GuideID:      guideID,
		ServiceName:  "Omra accompagnée",
		StartDate:    time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC),
		VisitTime:    "09:00",
		Location:     "Gare de La Mecque (Haramain)",
		TotalPrice:   330,
		Currency:     "SAR",
		PilgrimNames: []string{"Moi-même", "Aïcha (12 ans)", "Yusuf"},
		Status:       StatusPending,
		Guide:        &users.Profile{FullName: "Ahmed Al-Farsi"},
	}
}

func TestVoucherLines(t *testing.T) {
	lines := voucherLines(sampleReservation(uuid.New()))
	got := map[string]string{}
	for _, l := range lines {
		got[l[0]] = l[1]
	}

	want := map[string]string{
		"Guide":    "Ahmed Al-Farsi",
		"Dates":    "du 10/01/2026 au 12/01/2026",
		"Heure":    "09:00",
		"Pèlerins": "Moi-même, Aïcha (12 ans), Yusuf",
		"Total":    "330 SAR",
		"Statut":   "En attente",
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("%s = %q, want %q", k, got[k], v)
		}
	}
}

func TestVoucherLinesSingleDayWithoutGuide(t *testing.T) {
	r := sampleReservation(uuid.New())
	r.EndDate = r.StartDate
	r.VisitTime = ""
	r.Guide = nil

	got := map[string]string{}
	for _, l := range voucherLines(r) {
		got[l[0]] = l[1]
	}
	if got["Dates"] != "10/01/2026" || got["Heure"] != "-" || got["Guide"] != unknownGuideName {
		t.Fatalf("lines = %v", got)
	}
}

func TestRenderVoucher(t *testing.T) {
	r := sampleReservation(uuid.New())
	pdf, filename, err := RenderVoucher(r, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("RenderVoucher: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF (%d bytes)", len(pdf))
	}
	if !strings.HasPrefix(filename, "RESERVATION_") || !strings.HasSuffix(filename, ".pdf") {
		t.Fatalf("filename = %s", filename)
	}
}

func TestGetForUser(t *testing.T) {
	f := newFixture(false)
	session := pilgrimSession()
	r := sampleReservation(session.UserID)
	f.repo.created = append(f.repo.created, r)

	got, err := f.submitter.GetForUser(context.Background(), session, r.ID)
	if err != nil || got.ID != r.ID {
		t.Fatalf("owner: got=%v err=%v", got, err)
	}

	if _, err := f.submitter.GetForUser(context.Background(), pilgrimSession(), r.ID); !errors.Is(err, ErrReservationNotFound) {
		t.Fatalf("other user err = %v", err)
	}
	if _, err := f.submitter.GetForUser(context.Background(), nil, r.ID); !IsKind(err, KindNotAuthenticated) {
		t.Fatalf("anonymous err = %v", err)
	}

	f.repo.err = errTest
	if _, err := f.submitter.GetForUser(context.Background(), session, r.ID); !IsKind(err, KindUnknown) {
		t.Fatalf("repo failure err = %v", err)
	}
}

func TestDownloadVoucherEndpoint(t *testing.T) {
	tokens := auth.NewService("reservations-secret", "guideomra", time.Minute, time.Hour)
	f := newFixture(false)
	owner := auth.Session{UserID: uuid.New(), Role: auth.RolePilgrim}
	r := sampleReservation(owner.UserID)
	f.repo.created = append(f.repo.created, r)
	engine := newTestEngine(f, tokens)

	get := func(path string, session *auth.Session) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if session != nil {
			pair, _ := tokens.IssueTokenPair(*session)
			req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		}
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	path := "/api/v1/reservations/" + r.ID.String() + "/voucher"
	w := get(path, &owner)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("owner status = %d type = %s", w.Code, w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "RESERVATION_") {
		t.Fatalf("disposition = %s", w.Header().Get("Content-Disposition"))
	}

	stranger := auth.Session{UserID: uuid.New(), Role: auth.RolePilgrim}
	if w := get(path, &stranger); w.Code != http.StatusNotFound {
		t.Fatalf("stranger status = %d", w.Code)
	}
	if w := get(path, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous status = %d", w.Code)
	}
	if w := get("/api/v1/reservations/not-a-uuid/voucher", &owner); w.Code != http.StatusBadRequest {
		t.Fatalf("bad id status = %d", w.Code)
	}
}
