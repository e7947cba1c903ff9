package v1

import (
	"errors"
	"net/http"
	"strings"

	"artesano-backend/internal/domain"
	"artesano-backend/pkg/logger"
	"artesano-backend/pkg/utils"
)

type SearchHandler struct {
	searchUC domain.SearchUsecase
}

func NewSearchHandler(searchUC domain.SearchUsecase) *SearchHandler {
	return &SearchHandler{
		searchUC: searchUC,
	}
}

// Search handles GET /api/v1/search?q=. The query is validated here, before
// the usecase runs, so a bad request never touches the catalog.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		utils.WriteError(w, http.StatusBadRequest, `Query parameter "q" is required`)
		return
	}

	products, err := h.searchUC.Search(r.Context(), query)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			utils.WriteError(w, http.StatusBadRequest, `Query parameter "q" is required`)
			return
		}
		logger.WithContext(r.Context()).Error().
			Str("query", query).
			Err(err).
			Msg("Search failed")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	utils.WriteJSON(w, http.StatusOK, products)
}
