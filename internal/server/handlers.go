package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chauanphu/xdoc-iu/internal/apperr"
	"github.com/chauanphu/xdoc-iu/internal/history"
	"github.com/chauanphu/xdoc-iu/internal/i18n"
)

func (h *handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) readyz(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "disabled"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"db":     fmt.Sprintf("unhealthy: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "ok"})
}

func (h *handler) predict(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		var tooLarge *http.MaxBytesError
		status := http.StatusBadRequest
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		c.JSON(status, gin.H{
			"error": h.msg.Sprintf(i18n.InvalidBody),
			"code":  apperr.CodeValidation,
		})
		return
	}

	res, err := h.diag.Run(c.Request.Context(), c.Param("condition"), raw)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *handler) listHistory(c *gin.Context) {
	if !h.history.Enabled() {
		c.JSON(http.StatusOK, gin.H{
			"db":      "disabled",
			"message": h.msg.Sprintf(i18n.HistoryDisabled),
			"records": []history.Record{},
		})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		limit = 0
	}
	limit = history.ClampLimit(limit)

	records, err := h.history.Recent(c.Request.Context(), c.Query("condition"), limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records, "limit": limit})
}

// writeError renders {error, code}. Causes are logged and never sent.
func (h *handler) writeError(c *gin.Context, err error) {
	appErr := apperr.From(err, h.msg.Sprintf(i18n.SystemError))

	fields := []zap.Field{
		zap.String("code", appErr.Code),
		zap.Int("status", appErr.HTTPStatus),
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.Error(err),
	}
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.logger.Error("request failed", fields...)
	} else {
		h.logger.Warn("request rejected", fields...)
	}

	c.JSON(appErr.HTTPStatus, gin.H{
		"error": appErr.Message,
		"code":  appErr.Code,
	})
}
