package controllers

import (
	"net/http"

	"github.com/youssefalsaeed/order-management-system/api/responses"
	"github.com/youssefalsaeed/order-management-system/pkg/config"
	"github.com/youssefalsaeed/order-management-system/pkg/db"
	pkgerrors "github.com/youssefalsaeed/order-management-system/pkg/errors"
	"github.com/youssefalsaeed/order-management-system/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-OMS-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-OMS-Env", cfg.App.Env)

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
