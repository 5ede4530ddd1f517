package server

import (
	"net/http"

	"github.com/wolfeidau/stockroom/internal/auth"
	"github.com/wolfeidau/stockroom/internal/models"
)

// DashboardSummary aggregates an organization's catalog for the dashboard
// view. LowStockItems is never null, an empty catalog serializes as [].
type DashboardSummary struct {
	TotalProducts int               `json:"totalProducts"`
	TotalQuantity int64             `json:"totalQuantity"`
	LowStockItems []*models.Product `json:"lowStockItems"`
}

// Summarize computes the dashboard aggregates over a single snapshot of the
// product list so the counts and the low-stock set are consistent with each
// other.
func Summarize(products []*models.Product) DashboardSummary {
	summary := DashboardSummary{
		TotalProducts: len(products),
		LowStockItems: []*models.Product{},
	}

	for _, p := range products {
		summary.TotalQuantity += int64(p.QuantityOnHand)

		if p.IsLowStock() {
			summary.LowStockItems = append(summary.LowStockItems, p)
		}
	}

	return summary
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())

	products, err := s.products.List(r.Context(), identity.OrgID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, Summarize(products))
}
