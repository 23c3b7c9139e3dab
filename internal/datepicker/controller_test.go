package datepicker

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"guideomra/internal/calendar"

	"github.com/gin-gonic/gin"
)

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	hijri, err := calendar.NewGrid(calendar.SystemHijri, "Rajab 1447", time.Date(2025, time.December, 22, 0, 0, 0, 0, time.UTC), 30)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	grids, err := calendar.NewGrids(calendar.NewGregorianGrid(2026, time.January), hijri)
	if err != nil {
		t.Fatalf("NewGrids: %v", err)
	}
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	SetupCalendarRoutes(engine.Group("/api/v1"), NewController(grids, ""))
	return engine
}

func TestGetGrid(t *testing.T) {
	engine := newEngine(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/calendar/hijri", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Data GridResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Label != "Rajab 1447" || body.Data.Offset != 1 || len(body.Data.Days) != 30 {
		t.Fatalf("grid = %+v", body.Data)
	}
	if body.Data.Days[9].Date != "2025-12-31" || body.Data.Days[1].Crowd != calendar.LevelHigh {
		t.Fatalf("day cells = %+v %+v", body.Data.Days[9], body.Data.Days[1])
	}

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/calendar/julian", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown system status = %d", w.Code)
	}
}

func pick(engine *gin.Engine, req PickRequest) (*httptest.ResponseRecorder, PickResponse) {
	raw, _ := json.Marshal(req)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/calendar/pick", bytes.NewReader(raw))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, r)
	var body struct {
		Data PickResponse `json:"data"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body.Data
}

func TestPickFlow(t *testing.T) {
	engine := newEngine(t)

	w, sel := pick(engine, PickRequest{Day: 10})
	if w.Code != http.StatusOK || sel.Start != 10 || sel.End != 0 || sel.State != calendar.StatePartialRange || !sel.CanConfirm {
		t.Fatalf("first pick = %d %+v", w.Code, sel)
	}

	_, sel = pick(engine, PickRequest{Start: 10, Day: 20})
	if sel.End != 20 || sel.State != calendar.StateFullRange || sel.Range == nil || sel.Range.Nights != 10 {
		t.Fatalf("second pick = %+v", sel)
	}

	_, sel = pick(engine, PickRequest{Start: 10, End: 20, Day: 5})
	if sel.Start != 5 || sel.End != 0 {
		t.Fatalf("restart = %+v", sel)
	}

	// an earlier day restarts the range
	_, sel = pick(engine, PickRequest{Start: 20, Day: 10})
	if sel.Start != 10 || sel.End != 0 {
		t.Fatalf("earlier day = %+v", sel)
	}
}

func TestPickRejectsInvalidInput(t *testing.T) {
	engine := newEngine(t)

	cases := map[string]PickRequest{
		"no day":          {Start: 3},
		"day past month":  {System: "hijri", Day: 31},
		"reversed range":  {Start: 20, End: 10, Day: 5},
		"end without day": {End: 10, Day: 5},
	}
	for name, req := range cases {
		if w, _ := pick(engine, req); w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d", name, w.Code)
		}
	}
}
