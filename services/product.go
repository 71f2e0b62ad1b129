// services/product.go
package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"boacompra-loader/config"
	"boacompra-loader/models"
	"boacompra-loader/utils"
)

const (
	productNameMax        = 150
	productDescriptionMax = 500
)

type ProductGenerator struct{}

func (ProductGenerator) Table() string { return models.TableProduct }
func (ProductGenerator) DependsOn() []string {
	return []string{models.TableCategory, models.TableUnit}
}

func (ProductGenerator) Generate(ctx context.Context, s *Seeder) (Rows, error) {
	categories, err := s.loadIDs(ctx, models.TableCategory, "id_produto_categoria")
	if err != nil {
		return Rows{}, err
	}
	units, err := s.loadIDs(ctx, models.TableUnit, "id_produto_unidade_medida")
	if err != nil {
		return Rows{}, err
	}
	rows, err := buildProducts(categories, units, s.settings, s.faker, s.rng)
	if err != nil {
		return Rows{}, err
	}
	return rowsOf(rows), nil
}

// buildProducts makes ProductsPerCategory products for every category.
// Names are unique over the whole batch in their stored form.
func buildProducts(categories, units []int64, cfg config.SeedSettings, f *Faker, rng *rand.Rand) ([]models.Product, error) {
	names := NewUniqueSet[string](cfg.MaxUniqueAttempts)
	storedName := func() string {
		return strings.ToUpper(utils.Truncate(f.ProductName(), productNameMax))
	}

	rows := make([]models.Product, 0, len(categories)*cfg.ProductsPerCategory)
	for _, categoryID := range categories {
		for i := 0; i < cfg.ProductsPerCategory; i++ {
			name, err := names.Draw(storedName)
			if err != nil {
				return nil, fmt.Errorf("product name for category %d: %w", categoryID, err)
			}
			rows = append(rows, models.Product{
				CategoryID:  categoryID,
				UnitID:      units[rng.Intn(len(units))],
				Name:        name,
				Description: f.Description(productDescriptionMax),
				UnitPrice:   RandomUnitPrice(rng),
				Active:      true,
				Audit:       models.NewAudit(cfg.ActorID),
			})
		}
	}
	return rows, nil
}
