package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/neo-social/neo_server/internal/utils"
)

type HealthHandler struct {
	db      *sql.DB
	rdb     *redis.Client
	startAt time.Time
}

func NewHealthHandler(db *sql.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:      db,
		rdb:     rdb,
		startAt: time.Now(),
	}
}

func (hh *HealthHandler) HandlerHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := utils.Envelope{}
	status := "healthy"

	if err := hh.db.PingContext(ctx); err != nil {
		checks["database"] = "down"
		status = "degraded"
	} else {
		checks["database"] = "up"
	}

	if hh.rdb == nil {
		checks["redis"] = "disabled"
	} else if err := hh.rdb.Ping(ctx).Err(); err != nil {
		checks["redis"] = "down"
		status = "degraded"
	} else {
		checks["redis"] = "up"
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	utils.WriteJSON(w, code, utils.Envelope{
		"status":         status,
		"checks":         checks,
		"uptime_seconds": int(time.Since(hh.startAt).Seconds()),
	})
}
