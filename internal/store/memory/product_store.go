package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wolfeidau/stockroom/internal/models"
	"github.com/wolfeidau/stockroom/internal/store"
)

// ProductStore implements store.ProductStore using in-memory storage.
// This implementation is for testing and local development - data is lost
// on restart.
type ProductStore struct {
	mu sync.RWMutex

	products map[uuid.UUID]*models.Product // product_id -> Product
}

// NewProductStore creates a new in-memory product store.
func NewProductStore() *ProductStore {
	return &ProductStore{
		products: make(map[uuid.UUID]*models.Product),
	}
}

// Create persists a new product.
func (s *ProductStore) Create(ctx context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.products {
		if p.OrgID == product.OrgID && p.SKU == product.SKU {
			return store.ErrDuplicateSKU
		}
	}

	// Clone to avoid external modifications
	clone := *product
	s.products[product.ProductID] = &clone

	return nil
}

// List returns all products for the organization, most recently created
// first.
func (s *ProductStore) List(ctx context.Context, orgID uuid.UUID) ([]*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.Product
	for _, p := range s.products {
		if p.OrgID == orgID {
			clone := *p
			result = append(result, &clone)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		// UUIDv7 is time ordered, which keeps equal timestamps stable
		return result[i].ProductID.String() > result[j].ProductID.String()
	})

	return result, nil
}

// Update applies a partial update to the product matching both IDs. The
// lookup and mutation happen under one lock, mirroring the single-statement
// semantics of the PostgreSQL store.
func (s *ProductStore) Update(ctx context.Context, orgID, productID uuid.UUID, patch *store.ProductUpdate) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.products[productID]
	if !exists || p.OrgID != orgID {
		return nil, store.ErrProductNotFound
	}

	if patch.SKU.Set && patch.SKU.Valid && patch.SKU.Value != p.SKU {
		for _, other := range s.products {
			if other.OrgID == orgID && other.SKU == patch.SKU.Value {
				return nil, store.ErrDuplicateSKU
			}
		}
	}

	if patch.Name.Set && patch.Name.Valid {
		p.Name = patch.Name.Value
	}
	if patch.SKU.Set && patch.SKU.Valid {
		p.SKU = patch.SKU.Value
	}
	if patch.Description.Set {
		p.Description = patch.Description.Ptr()
	}
	if patch.QuantityOnHand.Set {
		p.QuantityOnHand = 0
		if patch.QuantityOnHand.Valid {
			p.QuantityOnHand = patch.QuantityOnHand.Value
		}
	}
	if patch.CostPrice.Set {
		p.CostPrice = patch.CostPrice.Ptr()
	}
	if patch.SellingPrice.Set {
		p.SellingPrice = patch.SellingPrice.Ptr()
	}
	if patch.LowStockThreshold.Set {
		p.LowStockThreshold = patch.LowStockThreshold.Ptr()
	}
	p.UpdatedAt = time.Now()

	clone := *p
	return &clone, nil
}

// Delete removes the product matching both IDs.
func (s *ProductStore) Delete(ctx context.Context, orgID, productID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.products[productID]
	if !exists || p.OrgID != orgID {
		return store.ErrProductNotFound
	}

	delete(s.products, productID)

	return nil
}
