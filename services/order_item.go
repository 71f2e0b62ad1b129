// services/order_item.go
package services

import (
	"context"
	"fmt"
	"math/rand"

	"boacompra-loader/config"
	"boacompra-loader/models"

	"github.com/rs/zerolog"
)

const maxItemQuantity = 50

type OrderItemGenerator struct{}

func (OrderItemGenerator) Table() string { return models.TableOrderItem }
func (OrderItemGenerator) DependsOn() []string {
	return []string{models.TableOrder, models.TableProduct}
}

func (OrderItemGenerator) Generate(ctx context.Context, s *Seeder) (Rows, error) {
	orders, err := s.loadIDs(ctx, models.TableOrder, "id_pedido")
	if err != nil {
		return Rows{}, err
	}
	products, err := s.loadProductRefs(ctx)
	if err != nil {
		return Rows{}, err
	}
	rows, err := buildOrderItems(orders, products, s.settings, s.rng)
	if err != nil {
		return Rows{}, err
	}
	return rowsOf(rows), nil
}

// AfterWrite recomputes every order total from the lines just written.
func (OrderItemGenerator) AfterWrite(ctx context.Context, s *Seeder) error {
	n, err := s.store.RecomputeOrderTotals(ctx)
	if err != nil {
		return err
	}
	zerolog.Ctx(ctx).Info().Int64("orders", n).Msg("Order totals updated")
	return nil
}

// buildOrderItems picks 1..min(MaxItemsPerOrder, products) distinct products
// per order and prices every line.
func buildOrderItems(orders []int64, products []models.ProductRef, cfg config.SeedSettings, rng *rand.Rand) ([]models.OrderItem, error) {
	limit := min(cfg.MaxItemsPerOrder, len(products))
	rows := make([]models.OrderItem, 0, len(orders)*(limit+1)/2)
	for _, orderID := range orders {
		count := rng.Intn(limit) + 1
		for _, idx := range samplePositions(rng, len(products), count) {
			product := products[idx]
			qty := rng.Intn(maxItemQuantity) + 1
			price, err := PriceLine(qty, product.UnitPrice, cfg.MaxDiscountFraction, rng.Float64())
			if err != nil {
				return nil, fmt.Errorf("order %d product %d: %w", orderID, product.ID, err)
			}
			rows = append(rows, models.OrderItem{
				OrderID:   orderID,
				ProductID: product.ID,
				Quantity:  qty,
				UnitPrice: product.UnitPrice,
				Discount:  price.Discount,
				Total:     price.Total,
				Audit:     models.NewAudit(cfg.ActorID),
			})
		}
	}
	return rows, nil
}

// samplePositions draws k distinct positions out of n (partial Fisher-Yates
// over a sparse swap map, so large catalogs cost O(k)).
func samplePositions(rng *rand.Rand, n, k int) []int {
	swapped := make(map[int]int, k)
	at := func(i int) int {
		if v, ok := swapped[i]; ok {
			return v
		}
		return i
	}
	out := make([]int, k)
	for i := 0; i < k; i++ {
		j := i + rng.Intn(n-i)
		out[i] = at(j)
		swapped[j] = at(i)
	}
	return out
}
