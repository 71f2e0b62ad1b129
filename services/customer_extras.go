// services/customer_extras.go
package services

import (
	"context"
	"fmt"
	"math/rand"

	"boacompra-loader/config"
	"boacompra-loader/models"
	"boacompra-loader/utils"
)

type EmailGenerator struct{}

func (EmailGenerator) Table() string       { return models.TableCustomerEmail }
func (EmailGenerator) DependsOn() []string { return []string{models.TableCustomer} }

func (EmailGenerator) Generate(ctx context.Context, s *Seeder) (Rows, error) {
	customers, err := s.loadIDs(ctx, models.TableCustomer, "id_cliente")
	if err != nil {
		return Rows{}, err
	}
	rows, err := buildEmails(customers, s.settings, s.faker, s.rng)
	if err != nil {
		return Rows{}, err
	}
	return rowsOf(rows), nil
}

// buildEmails gives every customer 1..MaxEmailsPerCustomer addresses,
// distinct within the customer. The first one is primary.
func buildEmails(customers []int64, cfg config.SeedSettings, f *Faker, rng *rand.Rand) ([]models.CustomerEmail, error) {
	rows := make([]models.CustomerEmail, 0, len(customers)*(cfg.MaxEmailsPerCustomer+1)/2)
	for _, customerID := range customers {
		want := rng.Intn(cfg.MaxEmailsPerCustomer) + 1
		seen := NewUniqueSet[string](cfg.MaxUniqueAttempts)
		for i := 0; i < want; i++ {
			email, err := seen.Draw(f.Email)
			if err != nil {
				return nil, fmt.Errorf("email for customer %d: %w", customerID, err)
			}
			rows = append(rows, models.CustomerEmail{
				CustomerID: customerID,
				Address:    email,
				Primary:    i == 0,
				Audit:      models.NewAudit(cfg.ActorID),
			})
		}
	}
	return rows, nil
}

type ContactGenerator struct{}

func (ContactGenerator) Table() string       { return models.TableCustomerContact }
func (ContactGenerator) DependsOn() []string { return []string{models.TableCustomer} }

func (ContactGenerator) Generate(ctx context.Context, s *Seeder) (Rows, error) {
	customers, err := s.loadIDs(ctx, models.TableCustomer, "id_cliente")
	if err != nil {
		return Rows{}, err
	}
	rows, err := buildContacts(customers, s.settings, s.faker, s.rng)
	if err != nil {
		return Rows{}, err
	}
	return rowsOf(rows), nil
}

type contactKey struct {
	areaCode int
	number   string
	kind     models.ContactType
}

// buildContacts gives every customer 1..MaxContactsPerCustomer contacts with
// distinct (ddd, number, type). The first one is primary.
func buildContacts(customers []int64, cfg config.SeedSettings, f *Faker, rng *rand.Rand) ([]models.CustomerContact, error) {
	rows := make([]models.CustomerContact, 0, len(customers)*(cfg.MaxContactsPerCustomer+1)/2)
	draw := func() contactKey {
		return contactKey{areaCode: f.AreaCode(), number: f.PhoneNumber(), kind: f.ContactType()}
	}
	for _, customerID := range customers {
		want := rng.Intn(cfg.MaxContactsPerCustomer) + 1
		seen := NewUniqueSet[contactKey](cfg.MaxUniqueAttempts)
		for i := 0; i < want; i++ {
			key, err := seen.Draw(draw)
			if err != nil {
				return nil, fmt.Errorf("contact for customer %d: %w", customerID, err)
			}
			if err := checkGenerated("phone", key.number, utils.ValidatePhone(key.areaCode, key.number)); err != nil {
				return nil, fmt.Errorf("contact for customer %d: %w", customerID, err)
			}
			rows = append(rows, models.CustomerContact{
				CustomerID: customerID,
				AreaCode:   key.areaCode,
				Number:     key.number,
				Type:       key.kind,
				Primary:    i == 0,
				Audit:      models.NewAudit(cfg.ActorID),
			})
		}
	}
	return rows, nil
}
