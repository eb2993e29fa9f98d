// Package health exposes the service health endpoint.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"log/slog"

	"gorm.io/gorm"
)

// Pinger is anything that can confirm an upstream dependency is reachable.
// The provider client implements it.
type Pinger interface {
	Ping(ctx context.Context) error
}

type dependency struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Health is the health check response.
type Health struct {
	Status    string     `json:"status"`
	Timestamp time.Time  `json:"timestamp"`
	DB        dependency `json:"db"`
	Provider  dependency `json:"provider"`
}

// Check returns the health handler. A broken database makes the service
// unavailable (503); an unreachable provider only degrades it, since
// user-content endpoints keep working.
func Check(db *gorm.DB, provider Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		health := Health{
			Status:    "ok",
			Timestamp: time.Now(),
			DB:        dependency{Status: "ok"},
			Provider:  dependency{Status: "ok"},
		}
		status := http.StatusOK

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			health.Status = "unavailable"
			health.DB = dependency{Status: "error", Message: "database unreachable"}
			status = http.StatusServiceUnavailable
		}

		if err := provider.Ping(ctx); err != nil {
			if health.Status == "ok" {
				health.Status = "degraded"
			}
			health.Provider = dependency{Status: "error", Message: "provider unreachable"}
		}

		writeHealth(w, health, status)
	}
}

func writeHealth(w http.ResponseWriter, health Health, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(health); err != nil {
		slog.Error("failed to encode health response", slog.Any("error", err))
	}
}
