// File: internal/handler/profile/profile.go
package profile

import (
	"context"
	"errors"
	"net/http"

	"ecarry-photography/internal/api"
	"ecarry-photography/internal/middleware"
	"ecarry-photography/internal/model"
	profilepkg "ecarry-photography/internal/profile"
	"ecarry-photography/internal/service"
	"ecarry-photography/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// Service 由 service.ProfileService 實作
type Service interface {
	GetProfile(ctx context.Context, claims *service.CustomClaims) (*model.Profile, error)
	UpdateProfile(ctx context.Context, claims *service.CustomClaims, u store.ProfileUpdate) (*model.Profile, error)
}

func toResponse(p *model.Profile) api.ProfileResponse {
	return api.ProfileResponse{
		ID:        p.ID.String(),
		UserID:    p.UserID,
		Name:      p.Name,
		Email:     p.Email,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
}

// @Summary     Get current profile
// @Description 取得當前使用者的個人資料，第一次存取時自動建立
// @Tags        profile
// @Produce     json
// @Success     200 {object} api.ProfileResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /profile [get]
func GetMyProfileHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.ClaimsFrom(c)
		if !ok {
			return unauthorized(c)
		}
		p, err := svc.GetProfile(c.Request().Context(), claims)
		if err != nil {
			log.Error().Err(err).Str("user_id", claims.UserID()).Msg("get profile failed")
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to load profile"})
		}
		return c.JSON(http.StatusOK, toResponse(p))
	}
}

// @Summary     Update current profile
// @Description 部分更新當前使用者的名稱與頭像；未帶的欄位維持原值
// @Tags        profile
// @Accept      json
// @Produce     json
// @Param       body body     api.UpdateProfileRequest true "更新內容"
// @Success     200  {object} api.ProfileResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /profile [patch]
func UpdateMyProfileHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.ClaimsFrom(c)
		if !ok {
			return unauthorized(c)
		}

		var req api.UpdateProfileRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			var violations profilepkg.Violations
			if !errors.As(err, &violations) {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
			}
			resp := api.ErrorResponse{Message: "validation failed"}
			for _, v := range violations {
				resp.Errors = append(resp.Errors, api.FieldError{Field: v.Field, Message: v.Message})
			}
			return c.JSON(http.StatusBadRequest, resp)
		}

		p, err := svc.UpdateProfile(c.Request().Context(), claims, store.ProfileUpdate{
			Name:     req.Name,
			ImageURL: req.ImageURL,
		})
		if err != nil {
			log.Error().Err(err).Str("user_id", claims.UserID()).Msg("update profile failed")
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to update profile"})
		}
		return c.JSON(http.StatusOK, toResponse(p))
	}
}
