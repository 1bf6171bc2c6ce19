package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ecarry-photography/internal/cache"
	"ecarry-photography/internal/database"
	"ecarry-photography/internal/model"
	profilepkg "ecarry-photography/internal/profile"
	"ecarry-photography/internal/service"
	"ecarry-photography/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubProfiles struct {
	updated *store.ProfileUpdate
}

func (s *stubProfiles) GetProfile(_ context.Context, c *service.CustomClaims) (*model.Profile, error) {
	return &model.Profile{UserID: c.UserID(), Name: c.Name}, nil
}

func (s *stubProfiles) UpdateProfile(_ context.Context, c *service.CustomClaims, u store.ProfileUpdate) (*model.Profile, error) {
	s.updated = &u
	return &model.Profile{UserID: c.UserID(), Name: *u.Name}, nil
}

func TestSetupRoutes(t *testing.T) {
	e := echo.New()
	Setup(e, &database.FakeDB{}, &cache.FakeCache{}, &stubProfiles{}, "secret")

	got := map[string]struct{}{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = struct{}{}
	}

	expected := []string{
		http.MethodGet + " /api/ping",
		http.MethodGet + " /api/profile",
		http.MethodPatch + " /api/profile",
	}

	require.Equal(t, len(expected), len(got))
	for _, k := range expected {
		_, ok := got[k]
		require.True(t, ok, "missing route %s", k)
	}
}

func TestProfileRoutesRequireToken(t *testing.T) {
	e := echo.New()
	e.Validator = profilepkg.NewEchoValidator()
	stub := &stubProfiles{}
	Setup(e, &database.FakeDB{}, &cache.FakeCache{}, stub, "secret")

	req := httptest.NewRequest(http.MethodPatch, "/api/profile", strings.NewReader(`{"name":"ab"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Nil(t, stub.updated)

	tok, err := service.IssueAccessToken("secret", service.CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user_1"},
	}, time.Minute)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodPatch, "/api/profile", strings.NewReader(`{"name":"ab","imageUrl":""}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, stub.updated)
	require.Equal(t, "ab", *stub.updated.Name)
}
