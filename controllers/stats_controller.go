package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	stats StatsAPI
}

func NewStatsController(stats StatsAPI) *StatsController {
	return &StatsController{stats: stats}
}

func (sc *StatsController) Public(c *gin.Context) {
	stats, err := sc.stats.Public(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch stats")
		return
	}
	respond(c, http.StatusOK, "", stats)
}

func (sc *StatsController) Admin(c *gin.Context) {
	stats, err := sc.stats.Admin(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch stats")
		return
	}
	respond(c, http.StatusOK, "", stats)
}
