// services/catalog.go
package services

import (
	"context"

	"boacompra-loader/models"
	"boacompra-loader/utils"
)

var categoryNames = []string{
	"Eletrônicos", "Roupas", "Brinquedos", "Móveis", "Livros",
	"Beleza", "Esportes", "Alimentos", "Informática", "Automotivo",
	"Calçados", "Joias", "Saúde", "Casa e Jardim", "Telefonia",
	"Ferramentas", "Relógios", "Bebês", "Pet Shop", "Papelaria",
}

type unitEntry struct {
	name         string
	abbreviation string
}

var unitCatalog = []unitEntry{
	{"Unidade", "UN"},
	{"Quilograma", "KG"},
	{"Grama", "G"},
	{"Litro", "L"},
	{"Mililitro", "ML"},
	{"Metro", "M"},
	{"Centímetro", "CM"},
	{"Milímetro", "MM"},
	{"Pacote", "PC"},
	{"Caixa", "CX"},
	{"Dúzia", "DZ"},
	{"Par", "PAR"},
	{"Tonelada", "T"},
	{"Hora", "H"},
	{"Dia", "D"},
	{"Pacote Pequeno", "PCP"},
	{"Pacote Grande", "PCG"},
	{"Galão", "GL"},
	{"Litro Estendido", "LE"},
	{"Unidade Comercial", "UC"},
}

// Order statuses the reports filter on.
var orderStatusCatalog = []models.OrderStatus{
	{Code: 1, Name: "PENDENTE"},
	{Code: 2, Name: "PAGO"},
	{Code: 3, Name: "ENVIADO"},
	{Code: 4, Name: "CONCLUIDO"},
	{Code: 5, Name: "CANCELADO"},
}

type CategoryGenerator struct{}

func (CategoryGenerator) Table() string       { return models.TableCategory }
func (CategoryGenerator) DependsOn() []string { return nil }

func (CategoryGenerator) Generate(_ context.Context, s *Seeder) (Rows, error) {
	return rowsOf(buildCategories(s.settings.ActorID)), nil
}

func buildCategories(actorID int64) []models.Category {
	rows := make([]models.Category, 0, len(categoryNames))
	for _, name := range categoryNames {
		rows = append(rows, models.Category{
			Name:   utils.NormalizeName(name),
			Active: true,
			Audit:  models.NewAudit(actorID),
		})
	}
	return rows
}

type UnitGenerator struct{}

func (UnitGenerator) Table() string       { return models.TableUnit }
func (UnitGenerator) DependsOn() []string { return nil }

func (UnitGenerator) Generate(_ context.Context, s *Seeder) (Rows, error) {
	return rowsOf(buildUnits(s.settings.ActorID)), nil
}

func buildUnits(actorID int64) []models.Unit {
	rows := make([]models.Unit, 0, len(unitCatalog))
	for _, u := range unitCatalog {
		rows = append(rows, models.Unit{
			Name:         utils.NormalizeName(u.name),
			Abbreviation: utils.NormalizeName(u.abbreviation),
			Active:       true,
			Audit:        models.NewAudit(actorID),
		})
	}
	return rows
}

type OrderStatusGenerator struct{}

func (OrderStatusGenerator) Table() string       { return models.TableOrderStatus }
func (OrderStatusGenerator) DependsOn() []string { return nil }

func (OrderStatusGenerator) Generate(_ context.Context, s *Seeder) (Rows, error) {
	rows := make([]models.OrderStatus, 0, len(orderStatusCatalog))
	for _, st := range orderStatusCatalog {
		st.Audit = models.NewAudit(s.settings.ActorID)
		rows = append(rows, st)
	}
	return rowsOf(rows), nil
}
