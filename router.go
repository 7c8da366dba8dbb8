package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"

	httpapi "github.com/yourorg/comps-api/http"
)

func BuildRouter(compsDeps httpapi.CompsDeps, searchDeps httpapi.SearchDeps, savedDeps httpapi.SavedSearchDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(httprate.LimitByIP(100, 1*time.Minute)) // protect upstream quota
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"ok":true}`)) })

	httpapi.RegisterComps(r, compsDeps)
	httpapi.RegisterSearch(r, searchDeps)
	httpapi.RegisterSavedSearches(r, savedDeps)

	return r
}
