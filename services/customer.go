// services/customer.go
package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"boacompra-loader/config"
	"boacompra-loader/models"
	"boacompra-loader/utils"
)

const (
	minCustomerAge = 18
	maxCustomerAge = 90

	addressComplement = "SEM COMPLEMENTO"
)

type CustomerGenerator struct{}

func (CustomerGenerator) Table() string       { return models.TableCustomer }
func (CustomerGenerator) DependsOn() []string { return nil }

func (CustomerGenerator) Generate(ctx context.Context, s *Seeder) (Rows, error) {
	rows, err := buildCustomers(s.settings, s.faker, s.rng, s.now())
	if err != nil {
		return Rows{}, err
	}
	return rowsOf(rows), nil
}

// buildCustomers draws all CPFs first, so a duplicate never reaches a row.
func buildCustomers(cfg config.SeedSettings, f *Faker, rng *rand.Rand, now time.Time) ([]models.Customer, error) {
	cpfs := NewUniqueSet[string](cfg.MaxUniqueAttempts)
	for cpfs.Len() < cfg.Customers {
		cpf, err := cpfs.Draw(f.CPF)
		if err != nil {
			return nil, fmt.Errorf("draw cpf: %w", err)
		}
		if err := checkGenerated("cpf", cpf, utils.ValidateCPF(cpf)); err != nil {
			return nil, err
		}
	}

	rows := make([]models.Customer, 0, cfg.Customers)
	for _, cpf := range cpfs.Items() {
		rows = append(rows, models.Customer{
			Name:      f.PersonName(),
			CPF:       cpf,
			BirthDate: f.BirthDate(now, minCustomerAge, maxCustomerAge),
			Active:    rng.Intn(2) == 1,
			Audit:     models.NewAudit(cfg.ActorID),
		})
	}
	return rows, nil
}

type AddressGenerator struct{}

func (AddressGenerator) Table() string { return models.TableCustomerAddress }
func (AddressGenerator) DependsOn() []string {
	return []string{models.TableCustomer, models.TableMunicipality}
}

func (AddressGenerator) Generate(ctx context.Context, s *Seeder) (Rows, error) {
	customers, err := s.loadIDs(ctx, models.TableCustomer, "id_cliente")
	if err != nil {
		return Rows{}, err
	}
	municipalities, err := s.loadIDs(ctx, models.TableMunicipality, "id_municipio")
	if err != nil {
		return Rows{}, err
	}
	rows, err := buildAddresses(customers, municipalities, s.settings, s.faker, s.rng)
	if err != nil {
		return Rows{}, err
	}
	return rowsOf(rows), nil
}

// buildAddresses gives one address to each of min(Addresses, customers)
// customers sampled without replacement.
func buildAddresses(customers, municipalities []int64, cfg config.SeedSettings, f *Faker, rng *rand.Rand) ([]models.CustomerAddress, error) {
	n := min(cfg.Addresses, len(customers))
	picked := rng.Perm(len(customers))[:n]

	rows := make([]models.CustomerAddress, 0, n)
	for _, i := range picked {
		cep := f.PostalCode()
		if err := checkGenerated("postal code", cep, utils.ValidatePostalCode(cep)); err != nil {
			return nil, err
		}
		rows = append(rows, models.CustomerAddress{
			CustomerID:     customers[i],
			MunicipalityID: municipalities[rng.Intn(len(municipalities))],
			Street:         f.Street(),
			Number:         f.HouseNumber(),
			Complement:     addressComplement,
			District:       f.District(),
			PostalCode:     cep,
			Audit:          models.NewAudit(cfg.ActorID),
		})
	}
	return rows, nil
}

// checkGenerated rejects a fake value that would not pass the column's
// format checks.
func checkGenerated(field, value string, valid bool) error {
	if !valid {
		return fmt.Errorf("%w: %s %q", ErrInvalidValue, field, value)
	}
	return nil
}
