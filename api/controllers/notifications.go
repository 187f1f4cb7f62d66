package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/tradelink-backend/api/responses"
	"github.com/angelmondragon/tradelink-backend/api/validators"
	"github.com/angelmondragon/tradelink-backend/internal/notifications"
	"github.com/angelmondragon/tradelink-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/tradelink-backend/pkg/errors"
	"github.com/angelmondragon/tradelink-backend/pkg/logger"
)

// ListNotifications returns the portal bell feed for one supplier. Omitting
// supplier_id returns the platform store's own feed.
func ListNotifications(repo notifications.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var supplierID *uuid.UUID
		if raw := strings.TrimSpace(r.URL.Query().Get("supplier_id")); raw != "" {
			id, err := validators.PathUUID(raw, "supplier_id")
			if err != nil {
				responses.WriteError(r.Context(), w, logg, err)
				return
			}
			supplierID = &id
		}

		limit, err := validators.QueryInt(r, "limit", 50)
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}

		rows, err := repo.ListBySupplier(r.Context(), supplierID, limit)
		if err != nil {
			responses.WriteError(r.Context(), w, logg, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications"))
			return
		}
		if rows == nil {
			rows = []models.Notification{}
		}
		responses.WriteSuccess(w, http.StatusOK, rows)
	}
}

// MarkNotificationRead stamps a notification's read timestamp.
func MarkNotificationRead(repo notifications.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "notificationId"), "notification id")
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}

		if err := repo.MarkRead(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), w, logg, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notification read"))
			return
		}
		responses.WriteSuccess(w, http.StatusOK, map[string]string{"status": "read"})
	}
}
