package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/yourorg/comps-api/internal/canon"
	"github.com/yourorg/comps-api/internal/comps"
	"github.com/yourorg/comps-api/internal/events"
)

type CompsDeps struct {
	Aggregator *comps.Aggregator
	Pub        events.Publisher
}

// CompsRequest is a target property plus the optional street address used
// only for the normalized echo / property key in the response.
type CompsRequest struct {
	Address string `json:"address,omitempty"`
	comps.TargetProperty
}

func RegisterComps(r chi.Router, d CompsDeps) {
	// POST: JSON body
	r.Post("/comps", func(w http.ResponseWriter, req *http.Request) {
		var body CompsRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			render.Status(req, http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": "invalid_json", "detail": err.Error()})
			return
		}
		handleCompsRequest(w, req, d, body)
	})

	// GET: query params (compatibility)
	r.Get("/comps", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		var body CompsRequest
		body.Address = q.Get("address")
		body.City = q.Get("city")
		body.State = q.Get("state")
		body.Zip = q.Get("zip")
		if v := q.Get("bedrooms"); v != "" {
			if i, err := strconv.Atoi(v); err == nil {
				body.Bedrooms = &i
			}
		}
		if v := q.Get("bathrooms"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				body.Bathrooms = &f
			}
		}
		if v := q.Get("price"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				body.Price = &f
			}
		}
		if v := q.Get("sqft"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				body.Sqft = &f
			}
		}
		if v := q.Get("lat"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				body.Latitude = &f
			}
		}
		if v := q.Get("lon"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				body.Longitude = &f
			}
		}
		handleCompsRequest(w, req, d, body)
	})
}

func handleCompsRequest(w http.ResponseWriter, req *http.Request, d CompsDeps, body CompsRequest) {
	start := time.Now()
	results, err := d.Aggregator.FindComps(req.Context(), body.TargetProperty)
	if err != nil {
		if errors.Is(err, comps.ErrMissingLocation) {
			render.Status(req, http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": "location_required", "detail": "city and state are required"})
			return
		}
		render.Status(req, http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": "comps_error", "detail": err.Error()})
		return
	}

	line1, city, st, zip, pkey := canon.Canonicalize(body.Address, body.City, body.State, body.Zip)
	if d.Pub != nil {
		d.Pub.PublishSearchCompleted(req.Context(), events.SearchCompleted{
			Kind:    "comps",
			City:    body.City,
			State:   body.State,
			Results: len(results),
			Took:    time.Since(start),
		})
	}
	render.JSON(w, req, map[string]any{
		"ok":           true,
		"count":        len(results),
		"property_key": pkey,
		"normalized":   map[string]string{"line1": line1, "city": city, "state": st, "zip": zip},
		"comps":        results,
	})
}
