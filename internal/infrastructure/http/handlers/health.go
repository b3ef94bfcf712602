package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthHandler serves /health with document-store and optional Redis
// checks.
type HealthHandler struct {
	client *mongo.Client
	redis  *redis.Client
}

// NewHealthHandler creates a health handler (redis optional).
func NewHealthHandler(client *mongo.Client, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{client: client, redis: redisClient}
}

type healthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks,omitempty"`
	Message string            `json:"message,omitempty"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := make(map[string]string)
	allOK := true

	if err := h.client.Ping(ctx, nil); err != nil {
		checks["database"] = "down: " + err.Error()
		allOK = false
	} else {
		checks["database"] = "ok"
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = "down: " + err.Error()
			allOK = false
		} else {
			checks["redis"] = "ok"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if !allOK {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(healthResponse{
			Status:  "unhealthy",
			Checks:  checks,
			Message: "one or more checks failed",
		})
		return
	}
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(healthResponse{
		Status: "ok",
		Checks: checks,
	})
}
