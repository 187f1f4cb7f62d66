package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/tradelink-backend/api/responses"
	pkgerrors "github.com/angelmondragon/tradelink-backend/pkg/errors"
	"github.com/angelmondragon/tradelink-backend/pkg/logger"
)

// Pinger is the connectivity probe each infrastructure client exposes.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Live reports process liveness.
func Live() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// Ready reports readiness by pinging every named dependency.
func Ready(logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		statuses := make(map[string]string, len(deps))
		healthy := true
		for name, dep := range deps {
			if dep == nil {
				statuses[name] = "disabled"
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				statuses[name] = "down"
				healthy = false
				continue
			}
			statuses[name] = "up"
		}

		if !healthy {
			responses.WriteError(ctx, w, logg, pkgerrors.New(pkgerrors.CodeDependency, "dependency unavailable").
				WithDetails(statuses))
			return
		}
		responses.WriteSuccess(w, http.StatusOK, statuses)
	}
}
