package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/erandawijewantha/personalized-health-coach/internal/database"
	"github.com/erandawijewantha/personalized-health-coach/internal/types"
)

// LogHandler serves the daily health log endpoints.
type LogHandler struct {
	logs *database.LogDAO
	now  func() time.Time
}

func NewLogHandler(logs *database.LogDAO) *LogHandler {
	return &LogHandler{logs: logs, now: time.Now}
}

// Create records one health log for the user in the path. The timestamp
// defaults to the current time when the body omits it.
func (h *LogHandler) Create(c *gin.Context) {
	var log types.UserLog
	if err := c.ShouldBindJSON(&log); err != nil {
		respondBadRequest(c, "invalid log body", err)
		return
	}

	log.UserID = c.Param("user_id")
	if log.Timestamp.IsZero() {
		log.Timestamp = h.now().UTC()
	}

	if err := h.logs.Insert(c.Request.Context(), log); err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, log)
}

// List returns the user's most recent logs, newest first.
func (h *LogHandler) List(c *gin.Context) {
	limit := parseLimit(c.Query("limit"))

	logs, err := h.logs.ListByUser(c.Request.Context(), c.Param("user_id"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"logs": logs})
}

// parseLimit returns 0 for missing or invalid values, deferring to the
// DAO default.
func parseLimit(raw string) int {
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
