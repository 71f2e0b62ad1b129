package routes

import (
	"time"

	"boacompra-loader/config"
	"boacompra-loader/controllers"
	"boacompra-loader/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Deps are the handlers' collaborators, built by the serve command.
type Deps struct {
	Reports   *controllers.ReportController
	Seed      *controllers.SeedController
	Dashboard *controllers.DashboardController
	Health    *controllers.HealthController

	JWTSecret      string
	AllowedOrigins []string
	Log            zerolog.Logger
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if len(d.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  d.AllowedOrigins,
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
			ExposeHeaders: []string{"Content-Length"},
		}))
	}

	r.Use(config.PerformanceLogger(d.Log, 2*time.Second))

	r.GET("/health", d.Health.Health)

	api := r.Group("/api")
	{
		reports := api.Group("/reports")
		{
			reports.GET("/sales", d.Reports.GetSalesByPeriod)
			reports.GET("/orders", d.Reports.GetCustomerOrders)
		}

		api.GET("/dashboard", d.Dashboard.GetDashboardOverview)
		api.GET("/seed/last", d.Seed.GetLastSeed)

		// Loading data is the only write the API offers.
		protected := api.Group("", utils.AuthMiddleware(d.JWTSecret))
		protected.POST("/seed", d.Seed.TriggerSeed)
	}

	return r
}
