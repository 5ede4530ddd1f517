package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wolfeidau/stockroom/internal/models"
)

// Sentinel errors for product store operations
var (
	ErrProductNotFound = errors.New("product not found")
	ErrDuplicateSKU    = errors.New("sku already exists in organization")
)

// ProductUpdate describes a partial update. Fields absent from the request
// body keep their zero Optional and are left unchanged; fields explicitly
// set to null clear the stored value.
type ProductUpdate struct {
	Name              models.Optional[string]  `json:"name"`
	SKU               models.Optional[string]  `json:"sku"`
	Description       models.Optional[string]  `json:"description"`
	QuantityOnHand    models.Optional[int32]   `json:"quantityOnHand"`
	CostPrice         models.Optional[float64] `json:"costPrice"`
	SellingPrice      models.Optional[float64] `json:"sellingPrice"`
	LowStockThreshold models.Optional[int32]   `json:"lowStockThreshold"`
}

// ProductStore defines the interface for catalog storage. Every operation
// that reads or mutates an existing product takes the caller's organization
// ID and applies it in the same atomic lookup as the product ID, so a
// cross-tenant ID behaves exactly like a nonexistent one.
type ProductStore interface {
	// Create persists a new product. The product's OrgID must already be
	// fixed to the caller's organization by the caller.
	// Returns ErrDuplicateSKU if the SKU exists within the organization.
	Create(ctx context.Context, product *models.Product) error

	// List returns all products for the organization, most recently
	// created first.
	List(ctx context.Context, orgID uuid.UUID) ([]*models.Product, error)

	// Update applies a partial update to the product matching both IDs and
	// returns the updated record. Returns ErrProductNotFound when no row
	// matches (including rows owned by another organization).
	Update(ctx context.Context, orgID, productID uuid.UUID, patch *ProductUpdate) (*models.Product, error)

	// Delete removes the product matching both IDs.
	// Returns ErrProductNotFound when no row matches.
	Delete(ctx context.Context, orgID, productID uuid.UUID) error
}
