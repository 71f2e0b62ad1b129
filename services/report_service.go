// services/report_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"boacompra-loader/models"
	"boacompra-loader/store"
	"boacompra-loader/utils"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	ProcSalesByPeriod  = "prc_relatorio_venda_periodo"
	ProcCustomerOrders = "prc_relatorio_pedido_cliente_valor_minino"

	ReportSalesByPeriod  = "sales-by-period"
	ReportCustomerOrders = "customer-orders-above-minimum"
)

var ErrInvalidReportParams = errors.New("invalid report parameters")

type SalesByPeriodParams struct {
	Start    time.Time `json:"start" validate:"required"`
	End      time.Time `json:"end" validate:"required,gtefield=Start"`
	Category string    `json:"category" validate:"required,max=100"`
}

type CustomerOrdersParams struct {
	Start    time.Time       `json:"start" validate:"required"`
	End      time.Time       `json:"end" validate:"required,gtefield=Start"`
	Status   string          `json:"status" validate:"required,max=30"`
	Minimum  decimal.Decimal `json:"minimum"`
	PageSize int             `json:"pageSize" validate:"gte=1,lte=1000"`
	Page     int             `json:"page" validate:"gte=1"`
}

func DefaultSalesByPeriodParams() SalesByPeriodParams {
	return SalesByPeriodParams{
		Start:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Category: "ELETRONICOS",
	}
}

func DefaultCustomerOrdersParams() CustomerOrdersParams {
	return CustomerOrdersParams{
		Start:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:   "CONCLUIDO",
		Minimum:  decimal.RequireFromString("10000.00"),
		PageSize: 20,
		Page:     1,
	}
}

// ReportService calls the reporting procedures. It never returns an error:
// a failed, malformed or empty report is logged and comes back as nil.
type ReportService struct {
	store    store.Store
	log      zerolog.Logger
	validate *validator.Validate
	cache    ReportCache
	now      func() time.Time
}

type ReportOption func(*ReportService)

func WithReportCache(c ReportCache) ReportOption {
	return func(r *ReportService) { r.cache = c }
}

func WithReportClock(now func() time.Time) ReportOption {
	return func(r *ReportService) { r.now = now }
}

func NewReportService(st store.Store, log zerolog.Logger, opts ...ReportOption) *ReportService {
	r := &ReportService{
		store:    st,
		log:      log,
		validate: validator.New(),
		cache:    noopCache{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SalesByPeriod reports sales of one category between two dates.
func (r *ReportService) SalesByPeriod(ctx context.Context, p SalesByPeriodParams) *models.ReportResult {
	return r.salesByPeriod(ctx, p, true)
}

func (r *ReportService) salesByPeriod(ctx context.Context, p SalesByPeriodParams, useCache bool) *models.ReportResult {
	p.Category = utils.NormalizeName(p.Category)
	if err := r.validate.Struct(p); err != nil {
		r.log.Error().Err(fmt.Errorf("%w: %v", ErrInvalidReportParams, err)).Str("report", ReportSalesByPeriod).Msg("Error validating report parameters")
		return nil
	}
	start, end := p.Start.Format(utils.DateLayout), p.End.Format(utils.DateLayout)
	params := map[string]any{"start": start, "end": end, "category": p.Category}
	return r.fetch(ctx, ReportSalesByPeriod, ProcSalesByPeriod, params, []any{start, end, p.Category}, useCache)
}

// CustomerOrdersAboveMinimum reports, one page at a time, the customers whose
// orders in a status add up to at least the minimum.
func (r *ReportService) CustomerOrdersAboveMinimum(ctx context.Context, p CustomerOrdersParams) *models.ReportResult {
	return r.customerOrders(ctx, p, true)
}

func (r *ReportService) customerOrders(ctx context.Context, p CustomerOrdersParams, useCache bool) *models.ReportResult {
	p.Status = strings.ToUpper(strings.TrimSpace(p.Status))
	err := r.validate.Struct(p)
	if err == nil && p.Minimum.IsNegative() {
		err = fmt.Errorf("minimum %s is negative", p.Minimum)
	}
	if err != nil {
		r.log.Error().Err(fmt.Errorf("%w: %v", ErrInvalidReportParams, err)).Str("report", ReportCustomerOrders).Msg("Error validating report parameters")
		return nil
	}
	start, end := p.Start.Format(utils.DateLayout), p.End.Format(utils.DateLayout)
	minimum := p.Minimum.StringFixed(2)
	params := map[string]any{
		"start":    start,
		"end":      end,
		"status":   p.Status,
		"minimum":  minimum,
		"pageSize": p.PageSize,
		"page":     p.Page,
	}
	args := []any{start, end, p.Status, minimum, p.PageSize, p.Page}
	return r.fetch(ctx, ReportCustomerOrders, ProcCustomerOrders, params, args, useCache)
}

// Refresh recomputes both reports with their default parameters, skipping
// the cache lookup.
func (r *ReportService) Refresh(ctx context.Context) {
	r.salesByPeriod(ctx, DefaultSalesByPeriodParams(), false)
	r.customerOrders(ctx, DefaultCustomerOrdersParams(), false)
}

func (r *ReportService) fetch(ctx context.Context, name, proc string, params map[string]any, args []any, useCache bool) *models.ReportResult {
	log := r.log.With().Str("report", name).Logger()
	key := cacheKey(name, args)

	if useCache {
		cached, err := r.cache.Get(ctx, key)
		if err != nil {
			log.Warn().Err(err).Msg("Error reading report cache")
		} else if cached != nil {
			cached.Cached = true
			log.Info().Msg("Report served from cache")
			return cached
		}
	}

	payload, err := r.store.CallProcedure(ctx, proc, args)
	if err != nil {
		log.Error().Err(err).Msgf("Error calling %s", proc)
		return nil
	}
	if len(payload) == 0 {
		log.Warn().Msgf("Procedure %s returned an empty result", proc)
		return nil
	}
	if !json.Valid(payload) {
		log.Error().Msgf("Procedure %s returned malformed JSON", proc)
		return nil
	}

	result := &models.ReportResult{
		Name:      name,
		Params:    params,
		Payload:   payload,
		FetchedAt: r.now(),
	}
	if err := r.cache.Set(ctx, key, result); err != nil {
		log.Warn().Err(err).Msg("Error writing report cache")
	}
	log.Info().RawJSON("payload", payload).Msg("Report fetched")
	return result
}

func cacheKey(name string, args []any) string {
	parts := make([]string, 0, len(args)+2)
	parts = append(parts, "report", name)
	for _, a := range args {
		parts = append(parts, fmt.Sprint(a))
	}
	return strings.Join(parts, ":")
}
