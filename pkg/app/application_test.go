package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	"storefront/pkg/config"
	"storefront/pkg/logger"
)

type routes func(*httprouter.Router)

func (f routes) RegisterRoutes(r *httprouter.Router) { f(r) }

func newTestApp() *Application {
	cfg := &config.Config{
		Log:             logger.Discard(),
		Port:            "8080",
		RequestTimeout:  time.Second,
		MaxRequestSize:  64,
		ShutdownTimeout: time.Second,
	}
	a := NewApplication(cfg)
	a.SetApp(
		routes(func(r *httprouter.Router) {
			r.GET("/health", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
				_, _ = w.Write([]byte(`{"status":"ok"}`))
			})
		}),
		routes(func(r *httprouter.Router) {
			r.POST("/api/echo", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
				w.WriteHeader(http.StatusCreated)
			})
			r.GET("/api/panic", func(http.ResponseWriter, *http.Request, httprouter.Params) {
				panic("boom")
			})
		}),
	)
	return a
}

func TestApplication_Routing(t *testing.T) {
	a := newTestApp()

	tests := []struct {
		name        string
		method      string
		path        string
		contentType string
		body        string
		wantStatus  int
	}{
		{"health bypasses content type", http.MethodGet, "/health", "", "", http.StatusOK},
		{"json post", http.MethodPost, "/api/echo", "application/json", `{}`, http.StatusCreated},
		{"form post rejected", http.MethodPost, "/api/echo", "text/plain", "hi", http.StatusUnsupportedMediaType},
		{"panic recovered", http.MethodGet, "/api/panic", "", "", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()

			a.Handler().ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if rec.Header().Get("X-Request-ID") == "" {
				t.Error("expected a request id header")
			}
		})
	}
}

func TestApplication_ShutdownHooksRunInOrder(t *testing.T) {
	a := newTestApp()

	var order []string
	a.OnShutdown("publisher", func(context.Context) error {
		order = append(order, "publisher")
		return errors.New("already closed")
	})
	a.OnShutdown("mongo", func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("expected hook context to carry a deadline")
		}
		order = append(order, "mongo")
		return nil
	})

	a.gracefulShutdown()

	if strings.Join(order, ",") != "publisher,mongo" {
		t.Errorf("unexpected hook order %v", order)
	}
}
