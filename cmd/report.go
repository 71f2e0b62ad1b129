package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"boacompra-loader/models"
	"boacompra-loader/services"
	"boacompra-loader/utils"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type reportFlags struct {
	start    string
	end      string
	category string
	status   string
	minimum  string
	pageSize int
	page     int
}

var reportCfg reportFlags

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Query the reporting procedures",
}

var reportSalesCmd = &cobra.Command{
	Use:   "sales",
	Short: "Sales of one product category in a period (prc_relatorio_venda_periodo)",
	RunE:  runReportSales,
}

var reportOrdersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Customers whose orders reach a minimum value (prc_relatorio_pedido_cliente_valor_minino)",
	RunE:  runReportOrders,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportSalesCmd, reportOrdersCmd)

	reportCmd.PersistentFlags().StringVar(&reportCfg.start, "start", "2025-01-01", "Start date (YYYY-MM-DD)")
	reportCmd.PersistentFlags().StringVar(&reportCfg.end, "end", "2025-06-01", "End date (YYYY-MM-DD)")

	reportSalesCmd.Flags().StringVar(&reportCfg.category, "category", "ELETRONICOS", "Product category")

	reportOrdersCmd.Flags().StringVar(&reportCfg.status, "status", "CONCLUIDO", "Order status")
	reportOrdersCmd.Flags().StringVar(&reportCfg.minimum, "minimum", "10000.00", "Minimum order value")
	reportOrdersCmd.Flags().IntVar(&reportCfg.pageSize, "page-size", 20, "Rows per page")
	reportOrdersCmd.Flags().IntVar(&reportCfg.page, "page", 1, "Page number, from 1")
}

func runReportSales(cmd *cobra.Command, args []string) error {
	params := services.DefaultSalesByPeriodParams()
	var err error
	if params.Start, err = utils.ParseDate(reportCfg.start); err != nil {
		return fmt.Errorf("--start: %w", err)
	}
	if params.End, err = utils.ParseDate(reportCfg.end); err != nil {
		return fmt.Errorf("--end: %w", err)
	}
	params.Category = reportCfg.category

	db, st, err := openStore()
	if err != nil {
		return err
	}
	defer closeDB(db)
	reports, closeReports := newReportService(st)
	defer closeReports()

	return printReport(cmd, reports.SalesByPeriod(cmd.Context(), params))
}

func runReportOrders(cmd *cobra.Command, args []string) error {
	params := services.DefaultCustomerOrdersParams()
	var err error
	if params.Start, err = utils.ParseDate(reportCfg.start); err != nil {
		return fmt.Errorf("--start: %w", err)
	}
	if params.End, err = utils.ParseDate(reportCfg.end); err != nil {
		return fmt.Errorf("--end: %w", err)
	}
	if params.Minimum, err = decimal.NewFromString(reportCfg.minimum); err != nil {
		return fmt.Errorf("--minimum: %w", err)
	}
	params.Status = reportCfg.status
	params.PageSize = reportCfg.pageSize
	params.Page = reportCfg.page

	db, st, err := openStore()
	if err != nil {
		return err
	}
	defer closeDB(db)
	reports, closeReports := newReportService(st)
	defer closeReports()

	return printReport(cmd, reports.CustomerOrdersAboveMinimum(cmd.Context(), params))
}

// printReport writes the indented payload. An absent report was already
// logged by the service and is not a command failure.
func printReport(cmd *cobra.Command, result *models.ReportResult) error {
	if result == nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "no data")
		return nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, result.Payload, "", "    "); err != nil {
		return err
	}
	out.WriteByte('\n')
	_, err := out.WriteTo(cmd.OutOrStdout())
	return err
}
