package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type recorded struct {
	method string
	path   string
	query  string
	header http.Header
	body   string
}

func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.RawQuery
		rec.header = r.Header.Clone()
		rec.body = string(b)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestRequest_ValidationError(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusUnprocessableEntity,
		`{"success":false,"error":"Validation failed","details":[{"field":"name","message":"required"}]}`)

	c := NewHttpClient(srv.URL)
	err := c.Request(context.Background(), "/api/admin/categories", RequestOptions{Method: http.MethodPost}, nil)
	if err == nil {
		t.Fatal("expected an error")
	}

	msg := err.Error()
	if !strings.Contains(msg, "Validation failed") || !strings.Contains(msg, "name: required") {
		t.Errorf("error = %q", msg)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity || len(apiErr.Details) != 1 {
		t.Errorf("unexpected APIError %+v", apiErr)
	}
}

func TestRequest_ErrorMessagePrecedence(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"error field wins", http.StatusBadRequest, `{"error":"bad slug","message":"ignored"}`, "bad slug"},
		{"message fallback", http.StatusConflict, `{"message":"already exists"}`, "already exists"},
		{"status text fallback", http.StatusNotFound, `not json`, "Not Found"},
		{"empty body", http.StatusInternalServerError, ``, "Internal Server Error"},
		{"malformed details dropped", http.StatusUnprocessableEntity, `{"error":"Validation failed","details":"oops"}`, "Validation failed"},
		{"empty details", http.StatusUnprocessableEntity, `{"error":"Validation failed","details":[]}`, "Validation failed"},
		{"several details", http.StatusUnprocessableEntity,
			`{"error":"Validation failed","details":[{"field":"name","message":"required"},{"field":"price","message":"invalid"}]}`,
			"Validation failed: name: required, price: invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, tt.status, tt.body)
			err := NewHttpClient(srv.URL).Request(context.Background(), "/x", RequestOptions{}, nil)
			if err == nil || err.Error() != tt.want {
				t.Errorf("error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestRequest_URLHeadersAndBody(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{"success":true}`)

	c := NewHttpClient(srv.URL + "/")
	err := c.Request(context.Background(), "/api/products", RequestOptions{
		Method:  http.MethodPost,
		Body:    map[string]string{"name": "Shoes"},
		Headers: map[string]string{"X-Trace": "abc"},
		Query:   Params{"featured": true, "premium": false, "category": "", "page": 2},
	}, nil)
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}

	if rec.method != http.MethodPost || rec.path != "/api/products" {
		t.Errorf("got %s %s", rec.method, rec.path)
	}
	if rec.query != "featured=true&page=2" {
		t.Errorf("query = %q", rec.query)
	}
	if rec.header.Get("Content-Type") != "application/json" || rec.header.Get("X-Trace") != "abc" {
		t.Errorf("headers = %v", rec.header)
	}
	if rec.header.Get("Authorization") != "" {
		t.Error("unauthenticated request must not send a token")
	}
	if rec.body != `{"name":"Shoes"}` {
		t.Errorf("body = %q", rec.body)
	}
}

func TestRequest_CallerOverridesContentType(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, ``)

	err := NewHttpClient(srv.URL).Request(context.Background(), "/upload", RequestOptions{
		Method:  http.MethodPost,
		Body:    []byte("raw"),
		Headers: map[string]string{"Content-Type": "text/plain"},
	}, nil)
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if rec.header.Get("Content-Type") != "text/plain" || rec.body != "raw" {
		t.Errorf("content type %q body %q", rec.header.Get("Content-Type"), rec.body)
	}
}

func TestAuthRequest(t *testing.T) {
	t.Run("attaches stored token", func(t *testing.T) {
		srv, rec := newTestServer(t, http.StatusOK, `{"success":true}`)
		store := NewMemoryTokenStore()
		_ = store.SetToken(context.Background(), "secret")

		c := NewHttpClient(srv.URL, WithTokenStore(store))
		if err := c.AuthRequest(context.Background(), "/api/admin/products", RequestOptions{}, nil); err != nil {
			t.Fatalf("AuthRequest() error = %v", err)
		}
		if got := rec.header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
	})

	t.Run("missing token is skipped", func(t *testing.T) {
		srv, rec := newTestServer(t, http.StatusOK, `{"success":true}`)

		c := NewHttpClient(srv.URL)
		if err := c.AuthRequest(context.Background(), "/api/admin/products", RequestOptions{}, nil); err != nil {
			t.Fatalf("AuthRequest() error = %v", err)
		}
		if _, ok := rec.header["Authorization"]; ok {
			t.Error("expected no Authorization header")
		}
	})

	t.Run("token store failure", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusOK, `{"success":true}`)
		kv := newFakeRedis()
		kv.getErr = errors.New("connection refused")

		c := NewHttpClient(srv.URL, WithTokenStore(NewRedisTokenStore(kv, "", 0)))
		if err := c.AuthRequest(context.Background(), "/x", RequestOptions{}, nil); err == nil {
			t.Fatal("expected the store error to surface")
		}
	})
}

func TestDo(t *testing.T) {
	t.Run("decodes envelope", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusOK,
			`{"success":true,"data":["a","b"],"message":"ok","pagination":{"page":1,"limit":10,"total":2,"totalPages":1}}`)

		env, err := Do[[]string](context.Background(), NewHttpClient(srv.URL), "/list", RequestOptions{})
		if err != nil {
			t.Fatalf("Do() error = %v", err)
		}
		if !env.Success || len(env.Data) != 2 || env.Message != "ok" {
			t.Errorf("envelope = %+v", env)
		}
		if env.Pagination == nil || env.Pagination.Total != 2 {
			t.Errorf("pagination = %+v", env.Pagination)
		}
	})

	t.Run("empty success body", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusNoContent, ``)

		env, err := Do[any](context.Background(), NewHttpClient(srv.URL), "/x", RequestOptions{Method: http.MethodDelete})
		if err != nil {
			t.Fatalf("Do() error = %v", err)
		}
		if !env.Success || env.Data != nil {
			t.Errorf("envelope = %+v", env)
		}
	})

	t.Run("undecodable success body", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusOK, `<html>`)

		if _, err := Do[any](context.Background(), NewHttpClient(srv.URL), "/x", RequestOptions{}); err == nil {
			t.Fatal("expected decode error")
		}
	})

	t.Run("transport failure", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusOK, ``)
		srv.Close()

		_, err := Do[any](context.Background(), NewHttpClient(srv.URL), "/x", RequestOptions{})
		var apiErr *APIError
		if err == nil || errors.As(err, &apiErr) {
			t.Fatalf("expected a transport error, got %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusOK, `{"success":true}`)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Do[any](ctx, NewHttpClient(srv.URL), "/x", RequestOptions{})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

func TestRequest_BodyNotMarshalable(t *testing.T) {
	c := NewHttpClient("http://127.0.0.1:0")
	err := c.Request(context.Background(), "/x", RequestOptions{Method: http.MethodPost, Body: make(chan int)}, nil)
	var jsonErr *json.UnsupportedTypeError
	if !errors.As(err, &jsonErr) {
		t.Errorf("error = %v, want a marshal error", err)
	}
}
