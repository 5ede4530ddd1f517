package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wolfeidau/stockroom/internal/auth"
	"github.com/wolfeidau/stockroom/internal/models"
	"github.com/wolfeidau/stockroom/internal/store"
)

type createProductRequest struct {
	Name              string   `json:"name"`
	SKU               string   `json:"sku"`
	Description       *string  `json:"description"`
	QuantityOnHand    *int32   `json:"quantityOnHand"`
	CostPrice         *float64 `json:"costPrice"`
	SellingPrice      *float64 `json:"sellingPrice"`
	LowStockThreshold *int32   `json:"lowStockThreshold"`
}

// handleCreateProduct creates a product owned by the caller's organization.
// The organization id comes from the verified token, never the body.
func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())

	var req createProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" || req.SKU == "" {
		writeError(w, http.StatusBadRequest, "name and sku are required")
		return
	}

	productID, err := uuid.NewV7()
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	var quantity int32
	if req.QuantityOnHand != nil {
		quantity = *req.QuantityOnHand
	}

	now := time.Now().UTC()

	product := &models.Product{
		ProductID:         productID,
		OrgID:             identity.OrgID,
		Name:              req.Name,
		SKU:               req.SKU,
		Description:       req.Description,
		QuantityOnHand:    quantity,
		CostPrice:         req.CostPrice,
		SellingPrice:      req.SellingPrice,
		LowStockThreshold: req.LowStockThreshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.products.Create(r.Context(), product); err != nil {
		writeStoreError(w, r, err)
		return
	}

	zerolog.Ctx(r.Context()).Debug().
		Str("product_id", product.ProductID.String()).
		Str("org_id", product.OrgID.String()).
		Msg("product created")

	writeJSON(w, http.StatusOK, product)
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())

	products, err := s.products.List(r.Context(), identity.OrgID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	if products == nil {
		products = []*models.Product{}
	}

	writeJSON(w, http.StatusOK, products)
}

// handleUpdateProduct applies a partial update. Fields absent from the body
// are left unchanged, explicit nulls clear nullable fields, and the required
// name and sku fields reject empty or null replacements.
func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())

	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	var patch store.ProductUpdate
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if patch.Name.Set && (!patch.Name.Valid || patch.Name.Value == "") {
		writeError(w, http.StatusBadRequest, "name cannot be empty")
		return
	}

	if patch.SKU.Set && (!patch.SKU.Valid || patch.SKU.Value == "") {
		writeError(w, http.StatusBadRequest, "sku cannot be empty")
		return
	}

	product, err := s.products.Update(r.Context(), identity.OrgID, productID, &patch)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())

	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	if err := s.products.Delete(r.Context(), identity.OrgID, productID); err != nil {
		writeStoreError(w, r, err)
		return
	}

	zerolog.Ctx(r.Context()).Debug().
		Str("product_id", productID.String()).
		Str("org_id", identity.OrgID.String()).
		Msg("product deleted")

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
