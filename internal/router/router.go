// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"ecarry-photography/internal/cache"
	"ecarry-photography/internal/database"
	"ecarry-photography/internal/handler"
	"ecarry-photography/internal/handler/profile"
	"ecarry-photography/internal/middleware"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, c cache.Cache, profiles profile.Service, jwtSecret string) {
	api := e.Group("/api")

	// 健康檢查
	api.GET("/ping", handler.PingHandler(db, c))

	// 取得、更新當前使用者個人資料
	me := api.Group("/profile", middleware.RequireAuth(jwtSecret))
	me.GET("", profile.GetMyProfileHandler(profiles))
	me.PATCH("", profile.UpdateMyProfileHandler(profiles))
}
