package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
)

func TestSearchHandlerMissingLocation(t *testing.T) {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	RegisterSearch(r, SearchDeps{})

	for _, payload := range []string{`{}`, `{"city": "Houston"}`, `{"state": "TX"}`} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(payload)))

		body := decodeBody(t, rec)
		assert.Equal(t, "location_required", body["error"], payload)
	}
}

func TestSavedSearchesWithoutStore(t *testing.T) {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	RegisterSavedSearches(r, SavedSearchDeps{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/search/save", strings.NewReader(`{"city":"Houston","state":"TX"}`)))
	assert.Equal(t, "store_unavailable", decodeBody(t, rec)["error"])

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/searches/someone", nil))
	assert.Equal(t, "store_unavailable", decodeBody(t, rec)["error"])
}

func TestZipFromAddress(t *testing.T) {
	cases := []struct {
		addr string
		want string
	}{
		{"123 Main St, Houston, TX 77002", "77002"},
		{"77002", "77002"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, zipFromAddress(tc.addr), tc.addr)
	}
}
