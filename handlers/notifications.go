package handlers

import (
	"encoding/json"
	"net/http"

	"schedulit/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const notifyKeyPrefix = "notify:"

// NotificationsHandler drains the user's pending reminder notes.
func NotificationsHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString("userID")
	cache := utils.GetCacheClient()

	key := notifyKeyPrefix + userID
	raw, err := cache.LRange(c.Request.Context(), key, 0, -1).Result()
	if err != nil {
		logger.Error("notification fetch failed", zap.String("userID", userID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch notifications", "")
		return
	}
	if len(raw) > 0 {
		if err := cache.Del(c.Request.Context(), key).Err(); err != nil {
			logger.Warn("notification drain failed", zap.String("userID", userID), zap.Error(err))
		}
	}

	notes := make([]json.RawMessage, 0, len(raw))
	for _, r := range raw {
		notes = append(notes, json.RawMessage(r))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "notifications": notes})
}
