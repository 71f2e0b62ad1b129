// services/refs.go
package services

import (
	"context"
	"fmt"

	"boacompra-loader/models"
	"boacompra-loader/store"
)

// loadIDs returns the values of one integer column of table. An empty table
// is a missing prerequisite.
func (s *Seeder) loadIDs(ctx context.Context, table, column string) ([]int64, error) {
	var ids []int64
	q := store.Projection{Table: table, Columns: []string{column}, OrderBy: column}
	if err := s.store.Project(ctx, q, &ids); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrMissingPrerequisite, table)
	}
	return ids, nil
}

func (s *Seeder) loadRegionRefs(ctx context.Context) ([]models.RegionRef, error) {
	var refs []models.RegionRef
	q := store.Projection{
		Table:   models.TableRegion,
		Columns: []string{"id_unidade_federativa", "sg_unidade_federativa"},
	}
	if err := s.store.Project(ctx, q, &refs); err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrMissingPrerequisite, models.TableRegion)
	}
	return refs, nil
}

func (s *Seeder) loadProductRefs(ctx context.Context) ([]models.ProductRef, error) {
	var refs []models.ProductRef
	q := store.Projection{
		Table:   models.TableProduct,
		Columns: []string{"id_produto", "vl_produto_unitario"},
		OrderBy: "id_produto",
	}
	if err := s.store.Project(ctx, q, &refs); err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrMissingPrerequisite, models.TableProduct)
	}
	return refs, nil
}

func (s *Seeder) loadStatusCodes(ctx context.Context) ([]int64, error) {
	return s.loadIDs(ctx, models.TableOrderStatus, "co_pedido_situacao")
}
