package server

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wolfeidau/stockroom/internal/models"
)

func TestSummarize(t *testing.T) {
	t.Run("empty catalog", func(t *testing.T) {
		summary := Summarize(nil)
		require.Equal(t, 0, summary.TotalProducts)
		require.Equal(t, int64(0), summary.TotalQuantity)
		require.NotNil(t, summary.LowStockItems)
		require.Empty(t, summary.LowStockItems)
	})

	t.Run("totals count every product", func(t *testing.T) {
		summary := Summarize([]*models.Product{
			{Name: "bolts", QuantityOnHand: 3},
			{Name: "nuts", QuantityOnHand: 0},
			{Name: "washers", QuantityOnHand: 7},
		})
		require.Equal(t, 3, summary.TotalProducts)
		require.Equal(t, int64(10), summary.TotalQuantity)
	})

	t.Run("default threshold is inclusive", func(t *testing.T) {
		summary := Summarize([]*models.Product{
			{Name: "at threshold", QuantityOnHand: 5},
			{Name: "above threshold", QuantityOnHand: 6},
		})
		require.Len(t, summary.LowStockItems, 1)
		require.Equal(t, "at threshold", summary.LowStockItems[0].Name)
	})

	t.Run("per product threshold overrides default", func(t *testing.T) {
		threshold := int32(10)
		summary := Summarize([]*models.Product{
			{Name: "custom", QuantityOnHand: 10, LowStockThreshold: &threshold},
			{Name: "default", QuantityOnHand: 10},
		})
		require.Len(t, summary.LowStockItems, 1)
		require.Equal(t, "custom", summary.LowStockItems[0].Name)
	})

	t.Run("zero threshold only flags empty stock", func(t *testing.T) {
		threshold := int32(0)
		summary := Summarize([]*models.Product{
			{Name: "in stock", QuantityOnHand: 1, LowStockThreshold: &threshold},
			{Name: "out of stock", QuantityOnHand: 0, LowStockThreshold: &threshold},
		})
		require.Len(t, summary.LowStockItems, 1)
		require.Equal(t, "out of stock", summary.LowStockItems[0].Name)
	})
}
