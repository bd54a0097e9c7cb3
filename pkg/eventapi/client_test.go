package eventapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/sefazor/gatherly-gateway/internal/models"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(server.URL, func() string { return "test-token" }, 5*time.Second, zap.NewNop().Sugar())
	return client, server
}

func TestListEventsNormalizesAllShapes(t *testing.T) {
	shapes := map[string]string{
		"bare array":     `[{"id":1,"title":"One"},{"id":2,"title":"Two"}]`,
		"data envelope":  `{"data":[{"id":1,"title":"One"},{"id":2,"title":"Two"}],"total":2,"page":1,"per_page":20,"total_pages":1}`,
		"events key":     `{"events":[{"id":1,"title":"One"},{"id":2,"title":"Two"}]}`,
		"nested data":    `{"data":{"events":[{"id":1,"title":"One"},{"id":2,"title":"Two"}],"total":2}}`,
	}

	for name, payload := range shapes {
		t.Run(name, func(t *testing.T) {
			client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(payload))
			}))

			list, err := client.ListEvents(context.Background(), models.EventFilters{})
			if err != nil {
				t.Fatalf("ListEvents failed: %v", err)
			}
			if len(list.Events) != 2 || list.Events[0].Title != "One" {
				t.Fatalf("normalized list mismatch: %+v", list)
			}
			if list.Total != 2 {
				t.Fatalf("total = %d, want 2", list.Total)
			}
		})
	}
}

func TestFiltersAreEncodedAsQueryParams(t *testing.T) {
	var gotQuery string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))

	minPrice := 10.5
	_, err := client.ListEvents(context.Background(), models.EventFilters{
		CategoryID: 3,
		MinPrice:   &minPrice,
		DateFrom:   "2025-07-01",
		Query:      "go conf",
		Page:       2,
		PerPage:    25,
	})
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}

	for _, want := range []string{"category_id=3", "min_price=10.5", "date_from=2025-07-01", "q=go+conf", "page=2", "per_page=25"} {
		if !strings.Contains(gotQuery, want) {
			t.Fatalf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestBearerTokenIsAttached(t *testing.T) {
	var gotAuth string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"id":1}`))
	}))

	if _, err := client.GetEvent(context.Background(), 1); err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
}

func TestGuestRequestsCarryNoAuthHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("unexpected Authorization header %q", r.Header.Get("Authorization"))
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := New(server.URL, func() string { return "" }, 5*time.Second, zap.NewNop().Sugar())
	if _, err := client.PopularEvents(context.Background()); err != nil {
		t.Fatalf("PopularEvents failed: %v", err)
	}
}

func TestServerErrorMessageIsSurfaced(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"event is already full"}`))
	}))

	_, err := client.Participate(context.Background(), 5, "")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusConflict || apiErr.Message != "event is already full" {
		t.Fatalf("got %+v", apiErr)
	}
}

func TestErrorFallbackWhenPayloadIsOpaque(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html>upstream exploded</html>`))
	}))

	_, err := client.GetEvent(context.Background(), 1)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "request rejected by the server" {
		t.Fatalf("message = %q", apiErr.Message)
	}
}

func TestUploadImageSendsMultipart(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("not a multipart request: %v", err)
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			t.Errorf("missing image field: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		if header.Filename != "party.png" {
			t.Errorf("filename = %q", header.Filename)
		}
		w.Write([]byte(`{"data":{"filename":"abc123.png","url":"/files/abc123.png"}}`))
	}))

	result, err := client.UploadImage(context.Background(), "party.png", strings.NewReader("fake-png-bytes"))
	if err != nil {
		t.Fatalf("UploadImage failed: %v", err)
	}
	if result.Filename != "abc123.png" {
		t.Fatalf("result = %+v", result)
	}
}

func TestUploadImageRejectsEmptyFile(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("empty upload must not reach the server")
	}))

	if _, err := client.UploadImage(context.Background(), "empty.png", strings.NewReader("")); err == nil {
		t.Fatal("expected an error for an empty file")
	}
}

func TestSingleObjectEnvelopeIsUnwrapped(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"id":9,"title":"Wrapped"}}`))
	}))

	event, err := client.GetEvent(context.Background(), 9)
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if event.ID != 9 || event.Title != "Wrapped" {
		t.Fatalf("event = %+v", event)
	}
}

func TestContextCancellationAbortsRequest(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := client.GetEvent(ctx, 1); err == nil {
		t.Fatal("expected a cancellation error")
	}
}
