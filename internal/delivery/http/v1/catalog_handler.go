package v1

import (
	"errors"
	"net/http"

	"artesano-backend/internal/domain"
	"artesano-backend/internal/usecase"
	"artesano-backend/pkg/logger"
	"artesano-backend/pkg/utils"
)

type CatalogHandler struct {
	catalogUC *usecase.CatalogUsecase
}

func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: uc,
	}
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogUC.GetProducts(r.Context())
	if err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Msg("ListProducts failed")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	utils.WriteJSON(w, http.StatusOK, domain.Response{
		Success: true,
		Data:    products,
	})
}

func (h *CatalogHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "Product ID required")
		return
	}

	product, err := h.catalogUC.GetProductByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Product not found")
			return
		}
		logger.WithContext(r.Context()).Error().Str("product_id", id).Err(err).Msg("GetProductByID failed")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}

	utils.WriteJSON(w, http.StatusOK, domain.Response{
		Success: true,
		Data:    product,
	})
}
