// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"boacompra-loader/models"
	"boacompra-loader/services"
	"boacompra-loader/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ReportController exposes the two reporting procedures.
type ReportController struct {
	Reports *services.ReportService
}

// SalesQuery is the query string of GET /api/reports/sales. Empty fields
// fall back to the report defaults.
type SalesQuery struct {
	Start    string `form:"start"`
	End      string `form:"end"`
	Category string `form:"category"`
}

type CustomerOrdersQuery struct {
	Start    string `form:"start"`
	End      string `form:"end"`
	Status   string `form:"status"`
	Minimum  string `form:"minimum"`
	PageSize int    `form:"pageSize"`
	Page     int    `form:"page"`
}

// GetSalesByPeriod handles GET /api/reports/sales
func (rc *ReportController) GetSalesByPeriod(c *gin.Context) {
	var q SalesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid query: "+err.Error())
		return
	}

	params := services.DefaultSalesByPeriodParams()
	if !parseDate(c, "start", q.Start, &params.Start) || !parseDate(c, "end", q.End, &params.End) {
		return
	}
	if q.Category != "" {
		params.Category = q.Category
	}

	respondWithReport(c, rc.Reports.SalesByPeriod(c.Request.Context(), params))
}

// GetCustomerOrders handles GET /api/reports/orders
func (rc *ReportController) GetCustomerOrders(c *gin.Context) {
	var q CustomerOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid query: "+err.Error())
		return
	}

	params := services.DefaultCustomerOrdersParams()
	if !parseDate(c, "start", q.Start, &params.Start) || !parseDate(c, "end", q.End, &params.End) {
		return
	}
	if q.Status != "" {
		params.Status = q.Status
	}
	if q.Minimum != "" {
		minimum, err := decimal.NewFromString(q.Minimum)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid minimum: "+q.Minimum)
			return
		}
		params.Minimum = minimum
	}
	if q.PageSize != 0 {
		params.PageSize = q.PageSize
	}
	if q.Page != 0 {
		params.Page = q.Page
	}

	respondWithReport(c, rc.Reports.CustomerOrdersAboveMinimum(c.Request.Context(), params))
}

func parseDate(c *gin.Context, name, value string, dst *time.Time) bool {
	if value == "" {
		return true
	}
	t, err := utils.ParseDate(value)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+name+" date, expected YYYY-MM-DD")
		return false
	}
	*dst = t
	return true
}

// The service logs why a report is missing; the client only learns that it is.
func respondWithReport(c *gin.Context, result *models.ReportResult) {
	if result == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Report returned no data")
		return
	}
	c.JSON(http.StatusOK, result)
}
