package handler

import (
	"net/http"

	"github.com/quistberg/ladle/internal/persist"
)

// HandleGetRecipeBook returns every recorded recipe discovery.
func HandleGetRecipeBook(repo persist.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		book, err := repo.RecipeBook(r.Context())
		if err != nil {
			respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: book})
	}
}

// HandleGetLastRun returns the most recent run summary.
func HandleGetLastRun(repo persist.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, found, err := repo.LastRunSummary(r.Context())
		if err != nil {
			respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
			return
		}
		if !found {
			respondError(w, http.StatusNotFound, "No runs recorded yet")
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: summary})
	}
}
