// controllers/dashboard.go
package controllers

import (
	"net/http"

	"boacompra-loader/models"
	"boacompra-loader/store"
	"boacompra-loader/utils"

	"github.com/gin-gonic/gin"
)

type TableCount struct {
	Table string `json:"table"`
	Rows  int64  `json:"rows"`
}

type DashboardOverview struct {
	Dialect   string       `json:"dialect,omitempty"`
	Tables    []TableCount `json:"tables"`
	TotalRows int64        `json:"totalRows"`
}

var dashboardTables = []string{
	models.TableRegion,
	models.TableMunicipality,
	models.TableCustomer,
	models.TableCustomerAddress,
	models.TableCustomerEmail,
	models.TableCustomerContact,
	models.TableCategory,
	models.TableUnit,
	models.TableProduct,
	models.TableOrderStatus,
	models.TableOrder,
	models.TableOrderItem,
}

type DashboardController struct {
	Store   store.Store
	Dialect store.Dialect
}

// GetDashboardOverview handles GET /api/dashboard: row counts of every
// loaded table.
func (dc *DashboardController) GetDashboardOverview(c *gin.Context) {
	overview := DashboardOverview{
		Dialect: string(dc.Dialect),
		Tables:  make([]TableCount, 0, len(dashboardTables)),
	}
	for _, table := range dashboardTables {
		n, err := dc.Store.Count(c.Request.Context(), table)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		overview.Tables = append(overview.Tables, TableCount{Table: table, Rows: n})
		overview.TotalRows += n
	}
	c.JSON(http.StatusOK, overview)
}
