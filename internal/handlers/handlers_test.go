package handlers

import (
	"context"
	"errors"
	"html"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	htmlengine "github.com/gofiber/template/html/v3"

	"exlookup/internal/config"
	"exlookup/internal/insights"
	"exlookup/internal/middleware"
	"exlookup/views"
)

type stubSearcher struct {
	calls   int
	term    string
	outcome insights.Outcome
	err     error
}

func (s *stubSearcher) Search(_ context.Context, term string) (insights.Outcome, error) {
	s.calls++
	s.term = term
	if strings.TrimSpace(term) == "" {
		return insights.NotSearched(), nil
	}
	return s.outcome, s.err
}

func newTestApp(searcher Searcher) *fiber.App {
	cfg := &config.Config{SiteTitle: "Exception Lookup", SiteFooter: "footer"}
	app := fiber.New(fiber.Config{
		Views:        htmlengine.NewFileSystem(http.FS(views.FS), ".html"),
		ViewsLayout:  "layouts/main",
		ErrorHandler: ErrorHandler(cfg),
	})
	app.Use(middleware.CorrelationID())

	h := NewSearchHandler(searcher, cfg)
	app.Get("/", h.Index)
	app.Get("/search", h.Search)
	app.Get("/error", ErrorPage(cfg))
	return app
}

func get(t *testing.T, app *fiber.App, target string) (*http.Response, string) {
	t.Helper()
	req, _ := http.NewRequest("GET", target, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("GET %s failed: %v", target, err)
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func TestIndexRedirectsToSearch(t *testing.T) {
	resp, _ := get(t, newTestApp(&stubSearcher{}), "/")
	if resp.StatusCode < 300 || resp.StatusCode >= 400 {
		t.Fatalf("status = %d, want redirect", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/search" {
		t.Errorf("Location = %q, want /search", loc)
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		outcome     insights.Outcome
		wantStatus  int
		contains    []string
		notContains []string
	}{
		{
			name:        "no identifier",
			query:       "",
			wantStatus:  200,
			contains:    []string{`name="idException"`, "Search"},
			notContains: []string{`id="exception"`, `id="not-found"`},
		},
		{
			name:       "found",
			query:      "abc",
			outcome:    insights.Found(`[{"id":"123"}]`),
			wantStatus: 200,
			contains:   []string{`id="exception"`, html.EscapeString(`[{"id":"123"}]`), `value="abc"`},
		},
		{
			name:        "not found without reason",
			query:       "abc",
			outcome:     insights.NotFound(""),
			wantStatus:  200,
			contains:    []string{`id="not-found"`, "No exception found"},
			notContains: []string{`id="exception"`},
		},
		{
			name:       "not found with reason",
			query:      "abc",
			outcome:    insights.NotFound("Forbidden"),
			wantStatus: 200,
			contains:   []string{`id="not-found"`, ": Forbidden"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubSearcher{outcome: tt.outcome}
			resp, body := get(t, newTestApp(stub), "/search?idException="+tt.query)

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", resp.StatusCode, tt.wantStatus, body)
			}
			if stub.term != tt.query {
				t.Errorf("searched term = %q, want %q", stub.term, tt.query)
			}
			for _, s := range tt.contains {
				if !strings.Contains(body, s) {
					t.Errorf("body missing %q", s)
				}
			}
			for _, s := range tt.notContains {
				if strings.Contains(body, s) {
					t.Errorf("body unexpectedly contains %q", s)
				}
			}
		})
	}
}

func TestSearch_TransportErrorRendersErrorPage(t *testing.T) {
	stub := &stubSearcher{err: &insights.TransportError{Op: "get exceptions", Err: errors.New("dial tcp: i/o timeout")}}
	resp, body := get(t, newTestApp(stub), "/search?idException=abc")

	if resp.StatusCode != fiber.StatusBadGateway {
		t.Fatalf("status = %d, want 502", resp.StatusCode)
	}
	requestID := resp.Header.Get(fiber.HeaderXRequestID)
	if requestID == "" {
		t.Fatal("missing X-Request-ID header")
	}
	if !strings.Contains(body, requestID) {
		t.Errorf("error page does not show request id %q", requestID)
	}
	if strings.Contains(body, "i/o timeout") {
		t.Error("error page leaks the transport error")
	}
}

func TestErrorHandler_FiberError(t *testing.T) {
	app := newTestApp(&stubSearcher{})
	resp, body := get(t, app, "/does-not-exist")
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if !strings.Contains(body, `id="request-id"`) {
		t.Error("error page missing request id")
	}
}

func TestErrorPage(t *testing.T) {
	resp, body := get(t, newTestApp(&stubSearcher{}), "/error")
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if id := resp.Header.Get(fiber.HeaderXRequestID); !strings.Contains(body, id) {
		t.Errorf("error page does not show request id %q", id)
	}
}

func TestReadiness_NoDatabase(t *testing.T) {
	app := fiber.New()
	probe := NewProbeHandler(nil)
	app.Get("/readyz", probe.Readiness)
	app.Get("/healthz", probe.Liveness)

	for _, path := range []string{"/healthz", "/readyz"} {
		resp, body := get(t, app, path)
		if resp.StatusCode != 200 {
			t.Errorf("%s status = %d, want 200: %s", path, resp.StatusCode, body)
		}
	}
}
