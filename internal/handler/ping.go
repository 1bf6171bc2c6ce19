// File: internal/handler/ping.go
package handler

import (
	"net/http"
	"time"

	"ecarry-photography/internal/api"
	"ecarry-photography/internal/cache"
	"ecarry-photography/internal/database"

	"github.com/labstack/echo/v4"
)

const pingKey = "health:ping"

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫與快取連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} api.PingResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /ping [get]
func PingHandler(db database.DB, c cache.Cache) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		reqCtx := ctx.Request().Context()
		if err := db.Ping(reqCtx); err != nil {
			return ctx.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "database unhealthy"})
		}
		if err := c.Set(reqCtx, pingKey, "pong", 10*time.Second).Err(); err != nil {
			return ctx.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "cache unhealthy"})
		}
		return ctx.JSON(http.StatusOK, api.PingResponse{Message: "pong"})
	}
}
