// services/order.go
package services

import (
	"context"
	"math/rand"
	"time"

	"boacompra-loader/config"
	"boacompra-loader/models"

	"github.com/shopspring/decimal"
)

const orderNoteMax = 100

type OrderGenerator struct{}

func (OrderGenerator) Table() string { return models.TableOrder }
func (OrderGenerator) DependsOn() []string {
	return []string{models.TableCustomer, models.TableOrderStatus}
}

func (OrderGenerator) Generate(ctx context.Context, s *Seeder) (Rows, error) {
	customers, err := s.loadIDs(ctx, models.TableCustomer, "id_cliente")
	if err != nil {
		return Rows{}, err
	}
	statuses, err := s.loadStatusCodes(ctx)
	if err != nil {
		return Rows{}, err
	}
	return rowsOf(buildOrders(customers, statuses, s.settings, s.faker, s.rng, s.now())), nil
}

// buildOrders writes every total as zero; OrderItemGenerator fills them in.
func buildOrders(customers, statuses []int64, cfg config.SeedSettings, f *Faker, rng *rand.Rand, now time.Time) []models.Order {
	from := now.AddDate(-1, 0, 0)
	rows := make([]models.Order, 0, cfg.Orders)
	for i := 0; i < cfg.Orders; i++ {
		order := models.Order{
			CustomerID: customers[rng.Intn(len(customers))],
			StatusCode: statuses[rng.Intn(len(statuses))],
			OrderDate:  f.DateBetween(from, now),
			Total:      decimal.Zero,
			Audit:      models.NewAudit(cfg.ActorID),
		}
		if rng.Float64() >= 0.5 {
			note := f.Note(orderNoteMax)
			order.Note = &note
		}
		rows = append(rows, order)
	}
	return rows
}
