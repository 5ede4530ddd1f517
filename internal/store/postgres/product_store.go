package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/stockroom/internal/models"
	"github.com/wolfeidau/stockroom/internal/store"
)

const productColumns = `
	product_id, org_id, name, sku, description,
	quantity_on_hand, cost_price, selling_price, low_stock_threshold,
	created_at, updated_at
`

// ProductStore implements store.ProductStore using PostgreSQL.
type ProductStore struct {
	pool *pgxpool.Pool
}

// NewProductStore creates a new PostgreSQL-backed product store.
// It shares the connection pool with other stores.
func NewProductStore(pool *pgxpool.Pool) *ProductStore {
	return &ProductStore{
		pool: pool,
	}
}

// Create persists a new product.
func (s *ProductStore) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (
			product_id, org_id, name, sku, description,
			quantity_on_hand, cost_price, selling_price, low_stock_threshold,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
	`

	_, err := s.pool.Exec(ctx, query,
		product.ProductID,
		product.OrgID,
		product.Name,
		product.SKU,
		product.Description,
		product.QuantityOnHand,
		product.CostPrice,
		product.SellingPrice,
		product.LowStockThreshold,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrDuplicateSKU
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	log.Debug().
		Str("product_id", product.ProductID.String()).
		Str("org_id", product.OrgID.String()).
		Str("sku", product.SKU).
		Msg("Created product")

	return nil
}

// List returns all products for the organization, most recently created
// first.
func (s *ProductStore) List(ctx context.Context, orgID uuid.UUID) ([]*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE org_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Update applies a partial update to the product matching both IDs in a
// single UPDATE statement, so the organization filter and the mutation are
// atomic. Returns the updated record.
func (s *ProductStore) Update(ctx context.Context, orgID, productID uuid.UUID, patch *store.ProductUpdate) (*models.Product, error) {
	sets := []string{"updated_at = now()"}
	args := []any{productID, orgID}

	appendSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name.Set && patch.Name.Valid {
		appendSet("name", patch.Name.Value)
	}
	if patch.SKU.Set && patch.SKU.Valid {
		appendSet("sku", patch.SKU.Value)
	}
	if patch.Description.Set {
		appendSet("description", patch.Description.Ptr())
	}
	if patch.QuantityOnHand.Set {
		qty := int32(0)
		if patch.QuantityOnHand.Valid {
			qty = patch.QuantityOnHand.Value
		}
		appendSet("quantity_on_hand", qty)
	}
	if patch.CostPrice.Set {
		appendSet("cost_price", patch.CostPrice.Ptr())
	}
	if patch.SellingPrice.Set {
		appendSet("selling_price", patch.SellingPrice.Ptr())
	}
	if patch.LowStockThreshold.Set {
		appendSet("low_stock_threshold", patch.LowStockThreshold.Ptr())
	}

	query := `
		UPDATE products SET ` + strings.Join(sets, ", ") + `
		WHERE product_id = $1 AND org_id = $2
		RETURNING ` + productColumns

	row := s.pool.QueryRow(ctx, query, args...)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrProductNotFound
		}
		if isUniqueViolation(err) {
			return nil, store.ErrDuplicateSKU
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	log.Debug().
		Str("product_id", productID.String()).
		Str("org_id", orgID.String()).
		Msg("Updated product")

	return p, nil
}

// Delete removes the product matching both IDs. The organization filter is
// part of the DELETE itself.
func (s *ProductStore) Delete(ctx context.Context, orgID, productID uuid.UUID) error {
	query := `DELETE FROM products WHERE product_id = $1 AND org_id = $2`

	result, err := s.pool.Exec(ctx, query, productID, orgID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if result.RowsAffected() == 0 {
		return store.ErrProductNotFound
	}

	log.Debug().
		Str("product_id", productID.String()).
		Str("org_id", orgID.String()).
		Msg("Deleted product")

	return nil
}

// scanProduct scans a product row from either a pgx.Row or pgx.Rows.
func scanProduct(row pgx.Row) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ProductID,
		&p.OrgID,
		&p.Name,
		&p.SKU,
		&p.Description,
		&p.QuantityOnHand,
		&p.CostPrice,
		&p.SellingPrice,
		&p.LowStockThreshold,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
