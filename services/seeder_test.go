package services

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"boacompra-loader/config"
	"boacompra-loader/models"
	"boacompra-loader/utils"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 7, 15, 14, 30, 0, 0, time.UTC)

func testSettings() config.SeedSettings {
	cfg := config.DefaultSeedSettings()
	cfg.Customers = 200
	cfg.Addresses = 150
	cfg.ProductsPerCategory = 5
	cfg.Orders = 120
	cfg.RandomSeed = 42
	return cfg
}

func newTestSeeder(t *testing.T, st *memStore, opts ...Option) *Seeder {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	s, err := NewSeeder(st, testSettings(), zerolog.Nop(), opts...)
	require.NoError(t, err)
	return s
}

func statusOf(summary RunSummary, table string) StepStatus {
	for _, st := range summary.Steps {
		if st.Table == table {
			return st.Status
		}
	}
	return ""
}

func idSet(rows []map[string]any, column string) map[int64]bool {
	out := make(map[int64]bool, len(rows))
	for _, r := range rows {
		out[r[column].(int64)] = true
	}
	return out
}

func TestSeeder_FullRun(t *testing.T) {
	st := newMemStore()
	summary := newTestSeeder(t, st).Run(context.Background())

	require.Empty(t, summary.Failed())
	require.Len(t, summary.Steps, len(DefaultSteps()))
	for _, step := range summary.Steps {
		assert.Equal(t, StepInserted, step.Status, step.Table)
	}
	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, int64(42), summary.Seed)

	assert.Len(t, st.rows(models.TableRegion), 27)
	assert.Len(t, st.rows(models.TableMunicipality), 37)
	assert.Len(t, st.rows(models.TableCustomer), 200)
	assert.Len(t, st.rows(models.TableCustomerAddress), 150)
	assert.Len(t, st.rows(models.TableCategory), 20)
	assert.Len(t, st.rows(models.TableUnit), 20)
	assert.Len(t, st.rows(models.TableProduct), 100)
	assert.Len(t, st.rows(models.TableOrderStatus), 5)
	assert.Len(t, st.rows(models.TableOrder), 120)

	for table, rows := range st.tables {
		for _, r := range rows {
			assert.Equal(t, int64(1), r["id_usuario_criacao"], table)
			assert.Equal(t, int64(1), r["id_usuario_atualizacao"], table)
		}
	}
}

func TestSeeder_SecondRunInsertsNothing(t *testing.T) {
	st := newMemStore()
	newTestSeeder(t, st).Run(context.Background())

	before := map[string]int{}
	for table, rows := range st.tables {
		before[table] = len(rows)
	}

	summary := newTestSeeder(t, st).Run(context.Background())
	for _, step := range summary.Steps {
		assert.Equal(t, StepSkipped, step.Status, step.Table)
	}
	assert.Zero(t, summary.Inserted())
	for table, rows := range st.tables {
		assert.Len(t, rows, before[table], table)
	}
}

func TestSeeder_CustomersHaveDistinctValidCPFs(t *testing.T) {
	st := newMemStore()
	newTestSeeder(t, st).Run(context.Background())

	seen := map[string]bool{}
	for _, c := range st.rows(models.TableCustomer) {
		cpf := c["nu_cpf"].(string)
		assert.Len(t, cpf, 11)
		assert.True(t, utils.ValidateCPF(cpf), cpf)
		assert.False(t, seen[cpf], "duplicate cpf %s", cpf)
		seen[cpf] = true

		birth := c["dt_nascimento"].(time.Time)
		assert.False(t, birth.After(fixedNow.AddDate(-18, 0, 0)), "too young: %s", birth)
		assert.True(t, birth.After(fixedNow.AddDate(-91, 0, 0)), "too old: %s", birth)
	}
}

func TestSeeder_ForeignKeysResolve(t *testing.T) {
	st := newMemStore()
	newTestSeeder(t, st).Run(context.Background())

	regions := idSet(st.rows(models.TableRegion), "id_unidade_federativa")
	municipalities := idSet(st.rows(models.TableMunicipality), "id_municipio")
	customers := idSet(st.rows(models.TableCustomer), "id_cliente")
	categories := idSet(st.rows(models.TableCategory), "id_produto_categoria")
	units := idSet(st.rows(models.TableUnit), "id_produto_unidade_medida")
	products := idSet(st.rows(models.TableProduct), "id_produto")
	statuses := idSet(st.rows(models.TableOrderStatus), "co_pedido_situacao")
	orders := idSet(st.rows(models.TableOrder), "id_pedido")

	for _, r := range st.rows(models.TableMunicipality) {
		assert.True(t, regions[r["id_unidade_federativa"].(int64)])
	}
	addressed := map[int64]bool{}
	for _, r := range st.rows(models.TableCustomerAddress) {
		id := r["id_cliente"].(int64)
		assert.True(t, customers[id])
		assert.False(t, addressed[id], "customer %d has two addresses", id)
		addressed[id] = true
		assert.True(t, municipalities[r["id_municipio"].(int64)])
		assert.Equal(t, "SEM COMPLEMENTO", r["ds_complemento"])
		assert.True(t, utils.ValidatePostalCode(r["nu_cep"].(string)))
	}
	for _, table := range []string{models.TableCustomerEmail, models.TableCustomerContact, models.TableOrder} {
		for _, r := range st.rows(table) {
			assert.True(t, customers[r["id_cliente"].(int64)], table)
		}
	}
	for _, r := range st.rows(models.TableProduct) {
		assert.True(t, categories[r["id_produto_categoria"].(int64)])
		assert.True(t, units[r["id_produto_unidade_medida"].(int64)])
	}
	for _, r := range st.rows(models.TableOrder) {
		assert.True(t, statuses[r["co_pedido_situacao"].(int64)])
	}
	for _, r := range st.rows(models.TableOrderItem) {
		assert.True(t, orders[r["id_pedido"].(int64)])
		assert.True(t, products[r["id_produto"].(int64)])
	}
}

func TestSeeder_EmailsAndContactsPerCustomer(t *testing.T) {
	st := newMemStore()
	newTestSeeder(t, st).Run(context.Background())
	cfg := testSettings()

	emails := map[int64][]map[string]any{}
	for _, r := range st.rows(models.TableCustomerEmail) {
		id := r["id_cliente"].(int64)
		emails[id] = append(emails[id], r)
	}
	assert.Len(t, emails, cfg.Customers)
	for id, rows := range emails {
		assert.LessOrEqual(t, len(rows), cfg.MaxEmailsPerCustomer)
		seen := map[string]bool{}
		primaries := 0
		for _, r := range rows {
			addr := r["tx_email"].(string)
			assert.False(t, seen[addr], "customer %d repeats %s", id, addr)
			seen[addr] = true
			if r["in_principal"].(bool) {
				primaries++
			}
		}
		assert.Equal(t, 1, primaries, "customer %d", id)
		assert.True(t, rows[0]["in_principal"].(bool))
	}

	type contactTuple struct {
		customer int64
		ddd      int
		number   string
		kind     models.ContactType
	}
	tuples := map[contactTuple]bool{}
	primaries := map[int64]int{}
	for _, r := range st.rows(models.TableCustomerContact) {
		key := contactTuple{r["id_cliente"].(int64), r["nu_ddd"].(int), r["nu_telefone"].(string), r["tp_contato"].(models.ContactType)}
		assert.False(t, tuples[key], "duplicate contact %+v", key)
		tuples[key] = true
		assert.True(t, utils.ValidatePhone(key.ddd, key.number), "%+v", key)
		assert.Contains(t, models.ContactTypes, key.kind)
		if r["in_principal"].(bool) {
			primaries[key.customer]++
		}
	}
	assert.Len(t, primaries, cfg.Customers)
	for id, n := range primaries {
		assert.Equal(t, 1, n, "customer %d", id)
	}
}

func TestSeeder_ProductsAndCatalogs(t *testing.T) {
	st := newMemStore()
	newTestSeeder(t, st).Run(context.Background())

	names := map[string]bool{}
	for _, r := range st.rows(models.TableProduct) {
		name := r["no_produto"].(string)
		assert.False(t, names[name], "duplicate product %s", name)
		names[name] = true
		assert.LessOrEqual(t, len([]rune(name)), 150)
		assert.LessOrEqual(t, len([]rune(r["ds_produto"].(string))), 500)

		price := r["vl_produto_unitario"].(decimal.Decimal)
		assert.True(t, price.GreaterThanOrEqual(decimal.NewFromInt(10)), price.String())
		assert.True(t, price.LessThanOrEqual(decimal.NewFromInt(1000)), price.String())
		assert.True(t, price.Equal(price.Round(2)))
	}

	var categories []string
	for _, r := range st.rows(models.TableCategory) {
		categories = append(categories, r["no_produto_categoria"].(string))
	}
	assert.Contains(t, categories, "ELETRONICOS")
	assert.Contains(t, categories, "CASA E JARDIM")
	assert.Contains(t, categories, "BEBES")
}

func TestSeeder_OrderLinesAndTotals(t *testing.T) {
	st := newMemStore()
	newTestSeeder(t, st).Run(context.Background())
	cfg := testSettings()

	prices := map[int64]decimal.Decimal{}
	for _, r := range st.rows(models.TableProduct) {
		prices[r["id_produto"].(int64)] = r["vl_produto_unitario"].(decimal.Decimal)
	}

	sums := map[int64]decimal.Decimal{}
	perOrder := map[int64]map[int64]bool{}
	for _, r := range st.rows(models.TableOrderItem) {
		orderID, productID := r["id_pedido"].(int64), r["id_produto"].(int64)
		if perOrder[orderID] == nil {
			perOrder[orderID] = map[int64]bool{}
		}
		assert.False(t, perOrder[orderID][productID], "order %d repeats product %d", orderID, productID)
		perOrder[orderID][productID] = true

		qty := r["qt_item"].(int)
		unit := r["vl_unitario"].(decimal.Decimal)
		discount := r["vl_desconto"].(decimal.Decimal)
		total := r["vl_item_total"].(decimal.Decimal)
		assert.True(t, unit.Equal(prices[productID]))
		assert.GreaterOrEqual(t, qty, 1)
		assert.LessOrEqual(t, qty, 50)

		gross := unit.Mul(decimal.NewFromInt(int64(qty)))
		ceiling := gross.Mul(cfg.MaxDiscountFraction).Round(2)
		assert.False(t, discount.IsNegative())
		assert.True(t, discount.LessThanOrEqual(ceiling), "discount %s over %s", discount, ceiling)
		assert.True(t, total.Equal(gross.Sub(discount)), "total %s", total)

		sums[orderID] = sums[orderID].Add(total)
	}

	assert.Len(t, perOrder, cfg.Orders)
	for id, items := range perOrder {
		assert.LessOrEqual(t, len(items), cfg.MaxItemsPerOrder, "order %d", id)
	}
	for _, r := range st.rows(models.TableOrder) {
		id := r["id_pedido"].(int64)
		assert.True(t, r["vl_pedido_total"].(decimal.Decimal).Equal(sums[id]), "order %d", id)

		date := r["dt_pedido"].(time.Time)
		assert.False(t, date.Before(utils.BeginningOfDay(fixedNow.AddDate(-1, 0, 0))), date)
		assert.False(t, date.After(fixedNow), date)
		if note, ok := r["tx_observacao"].(*string); ok && note != nil {
			assert.LessOrEqual(t, len([]rune(*note)), 100)
		}
	}
}

func TestSeeder_MissingPrerequisiteFailsStepOnly(t *testing.T) {
	st := newMemStore()
	s := newTestSeeder(t, st, WithSteps(AddressGenerator{}, CategoryGenerator{}))
	summary := s.Run(context.Background())

	require.Len(t, summary.Steps, 2)
	assert.Equal(t, StepFailed, summary.Steps[0].Status)
	assert.Contains(t, summary.Steps[0].Error, ErrMissingPrerequisite.Error())
	assert.Empty(t, st.rows(models.TableCustomerAddress))
	assert.Equal(t, StepInserted, summary.Steps[1].Status)
	assert.Len(t, st.rows(models.TableCategory), 20)
}

func TestSeeder_UnresolvedAbbreviationAbortsMunicipalities(t *testing.T) {
	refs := fstest.MapFS{
		"states.csv": {Data: []byte("co_unidade_federativa,sg_unidade_federativa,no_unidade_federativa\n35,SP,São Paulo\n")},
		"cities.csv": {Data: []byte("sg_unidade_federativa,co_municipio_ibge,no_municipio,in_ativo\nSP,3550308,São Paulo,1\nXX,1,Lugar Nenhum,1\nYY,2,Outro,1\nXX,3,Mais Um,1\n")},
	}
	st := newMemStore()
	s := newTestSeeder(t, st, WithReferenceFS(refs), WithSteps(RegionGenerator{}, MunicipalityGenerator{}))
	summary := s.Run(context.Background())

	assert.Equal(t, StepInserted, statusOf(summary, models.TableRegion))
	assert.Equal(t, StepFailed, statusOf(summary, models.TableMunicipality))
	assert.Contains(t, summary.Steps[1].Error, "XX, YY")
	assert.Empty(t, st.rows(models.TableMunicipality))
}

func TestSeeder_WriteErrorDoesNotStopRun(t *testing.T) {
	st := newMemStore()
	st.appendErr[models.TableUnit] = errors.New("duplicate key")
	summary := newTestSeeder(t, st).Run(context.Background())

	assert.Equal(t, StepFailed, statusOf(summary, models.TableUnit))
	assert.Equal(t, StepFailed, statusOf(summary, models.TableProduct))
	assert.Equal(t, StepFailed, statusOf(summary, models.TableOrderItem))
	assert.Equal(t, StepInserted, statusOf(summary, models.TableOrder))
	assert.Len(t, summary.Failed(), 3)
}

func TestSeeder_CountErrorLeavesTableAlone(t *testing.T) {
	st := newMemStore()
	st.countErr[models.TableRegion] = errors.New("connection reset")
	summary := newTestSeeder(t, st, WithSteps(RegionGenerator{})).Run(context.Background())

	assert.Equal(t, StepFailed, summary.Steps[0].Status)
	assert.Empty(t, st.appends)
}

type recordingNotifier struct{ runs []RunSummary }

func (n *recordingNotifier) NotifyRun(_ context.Context, s RunSummary) error {
	n.runs = append(n.runs, s)
	return errors.New("broker down")
}

func TestSeeder_NotifiesRunSummary(t *testing.T) {
	n := &recordingNotifier{}
	st := newMemStore()
	summary := newTestSeeder(t, st, WithNotifier(n), WithSteps(CategoryGenerator{})).Run(context.Background())

	require.Len(t, n.runs, 1)
	assert.Equal(t, summary.RunID, n.runs[0].RunID)
	assert.Equal(t, int64(20), summary.Inserted())
}

func TestValidateOrder(t *testing.T) {
	assert.NoError(t, ValidateOrder(DefaultSteps()))
	assert.NoError(t, ValidateOrder([]Generator{OrderItemGenerator{}}))

	err := ValidateOrder([]Generator{OrderItemGenerator{}, OrderGenerator{}})
	assert.ErrorIs(t, err, ErrInvalidStepOrder)

	err = ValidateOrder([]Generator{RegionGenerator{}, RegionGenerator{}})
	assert.ErrorIs(t, err, ErrInvalidStepOrder)
}

func TestNewSeeder_RejectsBadSettings(t *testing.T) {
	cfg := testSettings()
	cfg.Orders = 0
	_, err := NewSeeder(newMemStore(), cfg, zerolog.Nop())
	assert.Error(t, err)

	_, err = NewSeeder(newMemStore(), testSettings(), zerolog.Nop(), WithSteps(ProductGenerator{}, UnitGenerator{}))
	assert.ErrorIs(t, err, ErrInvalidStepOrder)
}
