package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	breakers     BreakerReporter
	dependencies map[string]Pinger
	now          func() time.Time
}

// NewHealthHandler reports breaker states and pings each named dependency.
// Either argument may be nil.
func NewHealthHandler(breakers BreakerReporter, dependencies map[string]Pinger) *HealthHandler {
	return &HealthHandler{
		breakers:     breakers,
		dependencies: dependencies,
		now:          time.Now,
	}
}

// GetHealth always answers 200 while the server is up. Status is "degraded"
// when an upstream breaker is open or a dependency fails its ping.
// GET /health
func (h *HealthHandler) GetHealth(c *gin.Context) {
	status := "ok"

	upstreams := map[string]string{}
	if h.breakers != nil {
		upstreams = h.breakers.States()
		for _, state := range upstreams {
			if state == "open" {
				status = "degraded"
			}
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dependencies := make(map[string]string, len(h.dependencies))
	for name, dep := range h.dependencies {
		if err := dep.Ping(ctx); err != nil {
			dependencies[name] = err.Error()
			status = "degraded"
			continue
		}
		dependencies[name] = "ok"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       status,
		"service":      "prop-engine",
		"timestamp":    h.now().UTC().Format(time.RFC3339),
		"upstreams":    upstreams,
		"dependencies": dependencies,
	})
}
