package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cecepns/al-hakim-catering-sub001/internal/content"
	mw "github.com/cecepns/al-hakim-catering-sub001/internal/middleware"
)

// ContentPageHandler renders a markdown page such as the ordering guide.
func ContentPageHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	slug := chi.URLParam(r, "slug")

	page, err := contentStore.Get(slug, lang)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=600")
	if !page.UpdatedAt.IsZero() {
		w.Header().Set("Last-Modified", page.UpdatedAt.UTC().Format(http.TimeFormat))
	}

	pd := basePageData(r, page.Title)
	pd.Content = page
	renderPage(w, r, "page", pd)
}
