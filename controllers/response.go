package controllers

import (
	"net/http"

	"github.com/yashrajoria/storefront/apperrors"
	"github.com/yashrajoria/storefront/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respond writes a success envelope. Empty message and nil data are omitted.
func respond(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// respondList writes a success envelope with data and count. extra fields are
// merged into the top level.
func respondList(c *gin.Context, message string, data interface{}, count int, extra gin.H) {
	body := gin.H{"success": true, "data": data, "count": count}
	if message != "" {
		body["message"] = message
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// respondError writes the failure envelope for err. Internal errors are logged
// with their cause and reported with fallbackMsg (or their own client message).
func respondError(c *gin.Context, err error, fallbackMsg string) {
	appErr := apperrors.As(err)
	if appErr == nil {
		appErr = apperrors.Internal(fallbackMsg, err)
	}

	if appErr.Kind == apperrors.KindInternal {
		msg := appErr.Message
		if msg == "" {
			msg = fallbackMsg
		}
		logger.Error(c, msg, appErr.Err, zap.String("path", c.FullPath()))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": msg})
		return
	}

	c.JSON(appErr.Code, gin.H{"success": false, "message": appErr.Message})
}
