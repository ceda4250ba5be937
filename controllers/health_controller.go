package controllers

import (
	"net/http"

	"github.com/yashrajoria/storefront/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HealthController struct {
	db Pinger
}

func NewHealthController(db Pinger) *HealthController {
	return &HealthController{db: db}
}

// Health reports liveness and whether MongoDB answers a ping.
func (hc *HealthController) Health(c *gin.Context) {
	if hc.db != nil {
		if err := hc.db.Ping(c.Request.Context()); err != nil {
			logger.Warn(c, "Health check ping failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"success":  false,
				"status":   "degraded",
				"database": "unreachable",
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"status":   "ok",
		"database": "MongoDB",
	})
}
