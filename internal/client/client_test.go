package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ecarry-photography/internal/api"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestUpdateProfile(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotMethod, gotPath, gotAuth, gotType string
		var gotBody map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			gotType = r.Header.Get("Content-Type")
			b, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(b, &gotBody))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"p1","userId":"u1","name":"ECarry","imageUrl":""}`))
		}))
		defer srv.Close()

		c := New(srv.URL+"/", "tok", time.Second)
		p, err := c.UpdateProfile(context.Background(), api.UpdateProfileRequest{Name: strPtr("ECarry"), ImageURL: strPtr("")})
		require.NoError(t, err)
		require.Equal(t, http.MethodPatch, gotMethod)
		require.Equal(t, "/api/profile", gotPath)
		require.Equal(t, "Bearer tok", gotAuth)
		require.Equal(t, "application/json", gotType)
		require.Equal(t, map[string]any{"name": "ECarry", "imageUrl": ""}, gotBody)
		require.Equal(t, "ECarry", p.Name)
		require.Equal(t, "u1", p.UserID)
	})

	t.Run("error status is not parsed as profile", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"validation failed","errors":[{"field":"name","message":"Username must be at least 2 characters."}]}`))
		}))
		defer srv.Close()

		p, err := New(srv.URL, "", 0).UpdateProfile(context.Background(), api.UpdateProfileRequest{Name: strPtr("a")})
		require.Nil(t, p)
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		require.Equal(t, "validation failed", apiErr.Message)
		require.Len(t, apiErr.Fields, 1)
		require.Equal(t, "Username must be at least 2 characters.", apiErr.UserMessage())
	})

	t.Run("server error without body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := New(srv.URL, "", 0).UpdateProfile(context.Background(), api.UpdateProfileRequest{Name: strPtr("ab")})
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, "Bad Gateway", apiErr.UserMessage())
		require.Contains(t, apiErr.Error(), "502")
	})

	t.Run("invalid json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		_, err := New(srv.URL, "", 0).UpdateProfile(context.Background(), api.UpdateProfileRequest{Name: strPtr("ab")})
		require.ErrorContains(t, err, "failed to decode response")
	})

	t.Run("network failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		url := srv.URL
		srv.Close()

		_, err := New(url, "", time.Second).UpdateProfile(context.Background(), api.UpdateProfileRequest{Name: strPtr("ab")})
		require.ErrorContains(t, err, "failed to make request")
	})
}

func TestGetProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Empty(t, r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"id":"p1","name":"Alice","imageUrl":"https://img/a.png"}`))
	}))
	defer srv.Close()

	p, err := New(srv.URL, "tok", 0).GetProfile(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Alice", p.Name)
	require.Equal(t, "https://img/a.png", p.ImageURL)
}

func TestGetProfileWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Authorization"))
		require.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"id":"p1","name":"Alice"}`))
	}))
	defer srv.Close()

	p, err := New(srv.URL, "", 0).GetProfile(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Alice", p.Name)
}
