package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type readinessEnvelope struct {
	Status  bool          `json:"status"`
	Data    readinessData `json:"data"`
	Message string        `json:"message"`
}

func TestHealthHandler_Liveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["status"] != true || body["data"] != nil || body["message"] != "Service is alive" {
		t.Fatalf("unexpected envelope %v", body)
	}
}

func TestHealthDependenciesHandler_Readiness(t *testing.T) {
	ok := DependencyCheck{Name: "mongodb", Check: func(context.Context) error { return nil }}
	down := DependencyCheck{Name: "redis", Check: func(context.Context) error { return errors.New("connection refused") }}

	cases := []struct {
		checks  []DependencyCheck
		code    int
		status  bool
		message string
	}{
		{[]DependencyCheck{ok}, http.StatusOK, true, "Service is ready"},
		{[]DependencyCheck{ok, down}, http.StatusServiceUnavailable, false, "Service is not ready"},
	}

	for _, tc := range cases {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

		if err := NewHealthDependenciesHandler(tc.checks...).Readiness(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != tc.code {
			t.Fatalf("expected %d, got %d", tc.code, rec.Code)
		}

		var resp readinessEnvelope
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if resp.Status != tc.status || resp.Message != tc.message || len(resp.Data.Dependencies) != len(tc.checks) {
			t.Fatalf("unexpected response %+v", resp)
		}
	}

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)
	_ = NewHealthDependenciesHandler(down).Readiness(c)

	var resp readinessEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if dep := resp.Data.Dependencies["redis"]; dep.Status != "unhealthy" || dep.Error != "connection refused" {
		t.Fatalf("unexpected dependency status %+v", dep)
	}
}
