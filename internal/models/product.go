package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultLowStockThreshold is the system-wide quantity at or below which a
// product is flagged as low stock, used when the product has no threshold of
// its own.
const DefaultLowStockThreshold = 5

// Product is a catalog item scoped to one organization. The org reference is
// set at creation and never reassigned.
//
// Optional attributes are pointers so that "no price set" stays distinct
// from a zero price. QuantityOnHand defaults to 0 at the write path; reads
// never re-apply defaults.
type Product struct {
	ProductID uuid.UUID `json:"id"` // UUIDv7
	OrgID     uuid.UUID `json:"organizationId"`

	Name        string  `json:"name"`
	SKU         string  `json:"sku"` // unique within the organization
	Description *string `json:"description"`

	QuantityOnHand    int32    `json:"quantityOnHand"`
	CostPrice         *float64 `json:"costPrice"`
	SellingPrice      *float64 `json:"sellingPrice"`
	LowStockThreshold *int32   `json:"lowStockThreshold"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsLowStock reports whether the product's quantity is at or below its own
// threshold, falling back to DefaultLowStockThreshold when unset. The
// comparison is inclusive.
func (p *Product) IsLowStock() bool {
	threshold := int32(DefaultLowStockThreshold)
	if p.LowStockThreshold != nil {
		threshold = *p.LowStockThreshold
	}
	return p.QuantityOnHand <= threshold
}
