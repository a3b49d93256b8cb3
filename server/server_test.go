package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/skrylabs/skry/di"
	"github.com/skrylabs/skry/logger"
)

type requestSession struct {
	id     int
	mu     sync.Mutex
	closed bool
}

func (s *requestSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func newTestServer(t *testing.T) (*Server, *di.Container) {
	t.Helper()
	c := di.New(di.WithLogger(logger.Nop()))
	return New(Config{}, c, logger.Nop()), c
}

func TestScopedTokenSharedWithinRequest(t *testing.T) {
	srv, c := newTestServer(t)
	tok := di.For[*requestSession]()

	next := 0
	if err := c.Register(tok, func(ctx context.Context, r di.Resolver) (any, error) {
		next++
		return &requestSession{id: next}, nil
	}, di.Scoped); err != nil {
		t.Fatal(err)
	}

	srv.GinEngine().GET("/ids", func(gc *gin.Context) {
		first, err := Resolve[*requestSession](gc, c, tok)
		if err != nil {
			AbortWithDIError(gc, err)
			return
		}
		second, err := Resolve[*requestSession](gc, c, tok)
		if err != nil {
			AbortWithDIError(gc, err)
			return
		}
		RespondOK(gc, gin.H{"first": first.id, "second": second.id, "same": first == second})
	})

	body := doRequest(t, srv, "/ids", http.StatusOK)
	if body["data"].(map[string]any)["same"] != true {
		t.Errorf("expected one session per request, got %v", body)
	}

	// A second request gets its own instance.
	body = doRequest(t, srv, "/ids", http.StatusOK)
	if body["data"].(map[string]any)["first"].(float64) != 2 {
		t.Errorf("expected a fresh session for the second request, got %v", body)
	}
}

func TestScopeDisposedAfterRequest(t *testing.T) {
	srv, c := newTestServer(t)
	tok := di.For[*requestSession]()

	var session *requestSession
	if err := c.Register(tok, func(ctx context.Context, r di.Resolver) (any, error) {
		session = &requestSession{}
		return session, nil
	}, di.Scoped); err != nil {
		t.Fatal(err)
	}

	srv.GinEngine().GET("/use", func(gc *gin.Context) {
		if _, err := Resolve[*requestSession](gc, c, tok); err != nil {
			AbortWithDIError(gc, err)
			return
		}
		RespondOK(gc, nil)
	})

	doRequest(t, srv, "/use", http.StatusOK)
	if session == nil || !session.closed {
		t.Error("scoped session should be closed when the request finishes")
	}
}

func TestScopeDisposedOnPanic(t *testing.T) {
	srv, c := newTestServer(t)
	tok := di.For[*requestSession]()

	var session *requestSession
	if err := c.Register(tok, func(ctx context.Context, r di.Resolver) (any, error) {
		session = &requestSession{}
		return session, nil
	}, di.Scoped); err != nil {
		t.Fatal(err)
	}

	srv.GinEngine().GET("/boom", func(gc *gin.Context) {
		if _, err := Resolve[*requestSession](gc, c, tok); err != nil {
			AbortWithDIError(gc, err)
			return
		}
		panic("handler exploded")
	})

	doRequest(t, srv, "/boom", http.StatusInternalServerError)
	if session == nil || !session.closed {
		t.Error("scoped session should be closed even when the handler panics")
	}
}

func TestAbortWithDIErrorForMissingProvider(t *testing.T) {
	srv, c := newTestServer(t)
	tok := di.Named[string]("never-registered")

	srv.GinEngine().GET("/missing", func(gc *gin.Context) {
		if _, err := ResolveFromContext(gc, c, tok); err != nil {
			AbortWithDIError(gc, err)
			return
		}
		RespondOK(gc, nil)
	})

	body := doRequest(t, srv, "/missing", http.StatusInternalServerError)
	errObj := body["error"].(map[string]any)
	if errObj["code"] != "MISCONFIGURED" {
		t.Errorf("expected MISCONFIGURED, got %v", errObj)
	}
	if errObj["details"].(map[string]any)["token"] != tok.String() {
		t.Errorf("expected token detail, got %v", errObj)
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.GinEngine().GET("/ping", func(gc *gin.Context) { RespondOK(gc, "pong") })

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	srv.GinEngine().ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("expected a generated X-Request-Id header")
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-Id", "client-id")
	srv.GinEngine().ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-Id") != "client-id" {
		t.Error("expected the client-provided request id to be echoed")
	}
}

func TestConfigDefaultsAndValidate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Port != 8080 || cfg.ReadTimeout != 15 || cfg.IdleTimeout != 60 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config rejected: %v", err)
	}

	cfg.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for out-of-range port")
	}
}

func doRequest(t *testing.T, srv *Server, path string, wantStatus int) map[string]any {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	srv.GinEngine().ServeHTTP(rec, req)
	if rec.Code != wantStatus {
		t.Fatalf("GET %s returned %d, want %d (body: %s)", path, rec.Code, wantStatus, rec.Body.String())
	}
	var body map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON body: %v", err)
		}
	}
	return body
}
