package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/yourorg/comps-api/internal/store"
)

type SavedSearchDeps struct {
	Store *store.Store // nil when no database is configured
}

func RegisterSavedSearches(r chi.Router, d SavedSearchDeps) {
	r.Post("/search/save", func(w http.ResponseWriter, req *http.Request) {
		if d.Store == nil {
			render.Status(req, http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": "store_unavailable"})
			return
		}
		var body SearchRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			render.Status(req, http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": "invalid_json", "detail": err.Error()})
			return
		}
		if strings.TrimSpace(body.City) == "" || strings.TrimSpace(body.State) == "" {
			render.Status(req, http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": "location_required"})
			return
		}
		username := body.Username
		if username == "" {
			username = "api_user"
		}
		id, err := d.Store.SaveSearch(req.Context(), store.SavedSearch{
			Username:     username,
			City:         body.City,
			State:        body.State,
			DownPayment:  body.DownPayment,
			InterestRate: body.InterestRate,
			MinPrice:     body.MinPrice,
			MaxPrice:     body.MaxPrice,
		})
		if err != nil {
			render.Status(req, http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": "save_failed", "detail": err.Error()})
			return
		}
		render.JSON(w, req, map[string]any{"ok": true, "id": id})
	})

	r.Get("/searches/{username}", func(w http.ResponseWriter, req *http.Request) {
		if d.Store == nil {
			render.Status(req, http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": "store_unavailable"})
			return
		}
		username := chi.URLParam(req, "username")
		if username == "" {
			render.Status(req, http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": "username_required"})
			return
		}
		searches, err := d.Store.ListSearches(req.Context(), username)
		if err != nil {
			render.Status(req, http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": "list_failed", "detail": err.Error()})
			return
		}
		render.JSON(w, req, map[string]any{"ok": true, "count": len(searches), "searches": searches})
	})
}
