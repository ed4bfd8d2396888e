package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unirideapp/uniride-api/internal/middleware"
	ucStats "github.com/unirideapp/uniride-api/internal/usecase/stats"
)

type StatsHandler struct {
	stats *ucStats.GetStatistics
}

func NewStatsHandler(stats *ucStats.GetStatistics) *StatsHandler {
	return &StatsHandler{stats: stats}
}

func (h *StatsHandler) Get(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	s, err := h.stats.Execute(c.Request.Context(), userID)
	if err != nil {
		writeBusiness(c, err)
		return
	}

	c.JSON(http.StatusOK, s)
}
