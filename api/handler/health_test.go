package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/keyhole/models"
)

type fakeStats struct {
	stats models.PoolStats
}

func (f *fakeStats) Stats() models.PoolStats { return f.stats }

func healthRequest(t *testing.T, stats models.PoolStats) models.HealthResponse {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/v1/health", Health(&fakeStats{stats: stats}, time.Now().Add(-time.Minute)))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}
	var resp models.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	return resp
}

func TestHealth_Healthy(t *testing.T) {
	resp := healthRequest(t, models.PoolStats{MaxPages: 10, ActivePages: 3})
	if resp.Status != "healthy" {
		t.Errorf("got status %q, want healthy", resp.Status)
	}
	if resp.PoolStats.ActivePages != 3 {
		t.Errorf("pool stats not reported: %+v", resp.PoolStats)
	}
	if resp.Uptime == "" {
		t.Error("uptime missing")
	}
}

func TestHealth_DegradedUnderLoad(t *testing.T) {
	resp := healthRequest(t, models.PoolStats{MaxPages: 10, ActivePages: 9})
	if resp.Status != "degraded" {
		t.Errorf("got status %q, want degraded", resp.Status)
	}
}

func TestHealth_BoundaryNotDegraded(t *testing.T) {
	// Exactly 80% is still healthy; degradation starts above it.
	resp := healthRequest(t, models.PoolStats{MaxPages: 10, ActivePages: 8})
	if resp.Status != "healthy" {
		t.Errorf("got status %q, want healthy at the boundary", resp.Status)
	}
}
