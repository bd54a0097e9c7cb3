package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sefazor/gatherly-gateway/internal/controller"
	"github.com/sefazor/gatherly-gateway/internal/middleware"
	"github.com/sefazor/gatherly-gateway/internal/models"
	"github.com/sefazor/gatherly-gateway/internal/querycache"
	"github.com/sefazor/gatherly-gateway/internal/session"
	"github.com/sefazor/gatherly-gateway/pkg/eventapi"
	"github.com/sefazor/gatherly-gateway/pkg/utils"
)

// newTestApp wires the event routes the way main.go does, against the
// given upstream and session store.
func newTestApp(t *testing.T, upstream *httptest.Server, store *session.Store) *fiber.App {
	t.Helper()

	log := zap.NewNop().Sugar()
	cache := querycache.New(time.Minute)
	invalidate := querycache.NewDispatcher(cache)
	api := eventapi.New(upstream.URL, store.Token, 5*time.Second, log)
	validator := utils.NewValidator()

	eventController := controller.NewEventController(api, cache, invalidate, store, log)
	participationController := controller.NewParticipationController(api, cache, invalidate, log)
	eventHandler := NewEventHandler(eventController, validator)
	participationHandler := NewParticipationHandler(participationController, validator)

	app := fiber.New()
	app.Use(middleware.SessionMiddleware(store))

	events := app.Group("/api/events")
	events.Get("/search", eventHandler.Search)
	events.Get("/", eventHandler.Browse)
	events.Get("/:id", eventHandler.Detail)
	events.Post("/:id/join", middleware.RequireRole(models.RoleParticipant), participationHandler.Join)
	events.Post("/", middleware.RequireRole(models.RoleOrganizer, models.RoleAdmin), eventHandler.Create)

	return app
}

func guestStore(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStore(filepath.Join(t.TempDir(), "session.json"))
}

func decodeResponse(t *testing.T, resp *http.Response) models.Response {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	var envelope models.Response
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("decode response %q: %v", body, err)
	}
	return envelope
}

func TestMalformedEventIDRejectedLocally(t *testing.T) {
	var hits int64
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	app := newTestApp(t, upstream, guestStore(t))

	for _, path := range []string{"/api/events/abc", "/api/events/0", "/api/events/12x"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("GET %s: status = %d, want 400", path, resp.StatusCode)
		}
	}

	if got := atomic.LoadInt64(&hits); got != 0 {
		t.Errorf("upstream hits = %d, want 0 for malformed ids", got)
	}
}

func TestGuestDetailResolvesGuestState(t *testing.T) {
	event := models.Event{
		ID:             7,
		Title:          "City Marathon",
		Date:           time.Now().Add(48 * time.Hour),
		Capacity:       100,
		AvailableSpots: 40,
		Status:         models.EventPublished,
	}
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events/7" {
			t.Errorf("upstream path = %s, want /events/7", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": event})
	}))
	defer upstream.Close()

	app := newTestApp(t, upstream, guestStore(t))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/events/7", nil))
	if err != nil {
		t.Fatalf("GET /api/events/7: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	envelope := decodeResponse(t, resp)
	var details struct {
		ID            uint `json:"id"`
		Participation struct {
			State   string   `json:"state"`
			Actions []string `json:"actions"`
		} `json:"participation"`
	}
	raw, _ := json.Marshal(envelope.Data)
	if err := json.Unmarshal(raw, &details); err != nil {
		t.Fatalf("decode details: %v", err)
	}
	if details.ID != 7 {
		t.Errorf("event id = %d, want 7", details.ID)
	}
	if details.Participation.State != "guest_must_authenticate" {
		t.Errorf("participation state = %q, want guest_must_authenticate", details.Participation.State)
	}
	if len(details.Participation.Actions) != 2 {
		t.Errorf("actions = %v, want login and signup", details.Participation.Actions)
	}
}

func TestJoinRequiresAuthentication(t *testing.T) {
	var hits int64
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
	}))
	defer upstream.Close()

	app := newTestApp(t, upstream, guestStore(t))

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/events/7/join", nil))
	if err != nil {
		t.Fatalf("POST join: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
	if got := atomic.LoadInt64(&hits); got != 0 {
		t.Errorf("upstream hits = %d, want 0 for guest join", got)
	}
}

func TestOrganizerRoutesForbidParticipants(t *testing.T) {
	var hits int64
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
	}))
	defer upstream.Close()

	store := guestStore(t)
	if err := store.Login("token-123", models.User{ID: 4, Email: "p@example.com", Role: models.RoleParticipant}); err != nil {
		t.Fatalf("login: %v", err)
	}
	app := newTestApp(t, upstream, store)

	req := httptest.NewRequest(http.MethodPost, "/api/events/", nil)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("POST /api/events: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", resp.StatusCode)
	}
	if got := atomic.LoadInt64(&hits); got != 0 {
		t.Errorf("upstream hits = %d, want 0 for forbidden create", got)
	}
}

func TestUpstreamRejectionKeepsStatusAndMessage(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":"event not found"}`)
	}))
	defer upstream.Close()

	app := newTestApp(t, upstream, guestStore(t))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/events/99", nil))
	if err != nil {
		t.Fatalf("GET /api/events/99: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	envelope := decodeResponse(t, resp)
	if envelope.Success {
		t.Error("success = true, want false")
	}
	if envelope.Error != "event not found" {
		t.Errorf("error = %q, want the server's message", envelope.Error)
	}
}

func TestTransportFailureBecomesBadGateway(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // connection refused from here on

	app := newTestApp(t, upstream, guestStore(t))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/events/7", nil))
	if err != nil {
		t.Fatalf("GET /api/events/7: %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", resp.StatusCode)
	}
	envelope := decodeResponse(t, resp)
	if envelope.Error != "Could not load event" {
		t.Errorf("error = %q, want the action fallback text", envelope.Error)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream should not be called for an empty query")
	}))
	defer upstream.Close()

	app := newTestApp(t, upstream, guestStore(t))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/events/search", nil))
	if err != nil {
		t.Fatalf("GET search: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
