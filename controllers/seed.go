// controllers/seed.go
package controllers

import (
	"context"
	"net/http"
	"sync"

	"boacompra-loader/services"
	"boacompra-loader/utils"

	"github.com/gin-gonic/gin"
)

// SeedRunner is satisfied by *services.Seeder.
type SeedRunner interface {
	Run(ctx context.Context) services.RunSummary
}

// SeedController triggers pipeline runs over HTTP, one at a time.
type SeedController struct {
	Runner SeedRunner

	mu      sync.Mutex // held for the duration of a run
	lastMu  sync.RWMutex
	lastRun *services.RunSummary
}

// TriggerSeed handles POST /api/seed
func (sc *SeedController) TriggerSeed(c *gin.Context) {
	if !sc.mu.TryLock() {
		utils.RespondWithError(c, http.StatusConflict, "A seed run is already in progress")
		return
	}
	defer sc.mu.Unlock()

	summary := sc.Runner.Run(c.Request.Context())

	sc.lastMu.Lock()
	sc.lastRun = &summary
	sc.lastMu.Unlock()

	c.JSON(http.StatusOK, summary)
}

// GetLastSeed handles GET /api/seed/last
func (sc *SeedController) GetLastSeed(c *gin.Context) {
	sc.lastMu.RLock()
	last := sc.lastRun
	sc.lastMu.RUnlock()

	if last == nil {
		utils.RespondWithError(c, http.StatusNotFound, "No seed run yet")
		return
	}
	c.JSON(http.StatusOK, last)
}
