package http

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// captureLog перенаправляет стандартный лог в буфер на время теста
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prev := log.Writer()
	log.SetOutput(buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return buf
}

// TestLoggingMiddleware проверяет запись метода, пути и статуса в лог
func TestLoggingMiddleware(t *testing.T) {
	buf := captureLog(t)
	handler := LoggingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	rq := httptest.NewRecorder()
	handler.ServeHTTP(rq, req)
	if rq.Code != http.StatusCreated {
		t.Fatalf("status = %d", rq.Code)
	}
	if !strings.Contains(buf.String(), "GET /items 201") {
		t.Fatalf("log entry not found: %s", buf.String())
	}
}

// TestLoggingMiddleware_DefaultStatus проверяет, что статус по умолчанию 200
func TestLoggingMiddleware_DefaultStatus(t *testing.T) {
	buf := captureLog(t)
	handler := LoggingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rq := httptest.NewRecorder()
	handler.ServeHTTP(rq, req)
	if !strings.Contains(buf.String(), "GET / 200") {
		t.Fatalf("log entry not found: %s", buf.String())
	}
}

// TestLoggingMiddleware_Panic проверяет логирование паники с повторным пробросом
func TestLoggingMiddleware_Panic(t *testing.T) {
	buf := captureLog(t)
	handler := LoggingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	rq := httptest.NewRecorder()

	defer func() {
		if rec := recover(); rec == nil {
			t.Fatal("expected panic to propagate")
		}
		if !strings.Contains(buf.String(), "PANIC GET /items 500") {
			t.Fatalf("panic log entry not found: %s", buf.String())
		}
	}()
	handler.ServeHTTP(rq, req)
}
