package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"boacompra-loader/controllers"
	"boacompra-loader/routes"
	"boacompra-loader/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the reports and the seed trigger over HTTP",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	db, st, err := openStore()
	if err != nil {
		return err
	}
	defer closeDB(db)

	reports, closeReports := newReportService(st)
	defer closeReports()

	seeder, closeNotifier, err := newSeeder(st, settings.Seed)
	if err != nil {
		return err
	}
	defer closeNotifier()

	if settings.Report.Schedule != "" {
		scheduler := services.NewReportScheduler(reports, logger)
		if err := scheduler.Start(settings.Report.Schedule); err != nil {
			return err
		}
		defer scheduler.Stop()
	}

	gin.SetMode(gin.ReleaseMode)
	r := routes.SetupRouter(routes.Deps{
		Reports:   &controllers.ReportController{Reports: reports},
		Seed:      &controllers.SeedController{Runner: seeder},
		Dashboard: &controllers.DashboardController{Store: st, Dialect: st.Dialect()},
		Health: &controllers.HealthController{Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}},
		JWTSecret:      settings.HTTP.JWTSecret,
		AllowedOrigins: settings.HTTP.AllowedOrigins,
		Log:            logger,
	})
	for _, route := range r.Routes() {
		logger.Debug().Str("method", route.Method).Str("path", route.Path).Msg("route")
	}

	srv := &http.Server{Addr: ":" + settings.HTTP.Port, Handler: r}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info().Msg("Shutting down HTTP server")
	return srv.Shutdown(shutdownCtx)
}
