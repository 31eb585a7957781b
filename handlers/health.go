package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"batch-transcribe-api/history"
)

func HandleHealthcheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := gin.H{"message": "ok"}
		if history.DB != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			resp["db_connected"] = history.DB.PingContext(ctx) == nil
		}
		c.JSON(http.StatusOK, resp)
	}
}
