// File: internal/client/client.go
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ecarry-photography/internal/api"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

const (
	DefaultTimeout = 30 * time.Second
	profilePath    = "/api/profile"
)

// APIError 伺服器回傳非 2xx 狀態時的錯誤
type APIError struct {
	StatusCode int
	Message    string
	Fields     []api.FieldError
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API returned status code: %d", e.StatusCode)
	}
	return fmt.Sprintf("API returned status code: %d, message: %s", e.StatusCode, e.Message)
}

// UserMessage 給使用者看的錯誤訊息，欄位錯誤優先
func (e *APIError) UserMessage() string {
	if len(e.Fields) > 0 {
		msgs := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			msgs = append(msgs, f.Message)
		}
		return strings.Join(msgs, " ")
	}
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.StatusCode)
}

// Client 呼叫 profile API 的 HTTP 用戶端
type Client struct {
	rc *resty.Client
}

func New(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{})
	if token != "" {
		rc.SetAuthToken(token)
	}
	return &Client{rc: rc}
}

// restyLogger 把 resty 內部訊息轉成 zerolog debug
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...interface{}) { log.Debug().Msgf(format, v...) }
func (restyLogger) Warnf(format string, v ...interface{})  { log.Debug().Msgf(format, v...) }
func (restyLogger) Debugf(format string, v ...interface{}) { log.Debug().Msgf(format, v...) }

// GetProfile 取得目前使用者的 profile
func (c *Client) GetProfile(ctx context.Context) (*api.ProfileResponse, error) {
	var out api.ProfileResponse
	if err := c.do(ctx, http.MethodGet, profilePath, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile 以 PATCH 送出部分更新
func (c *Client) UpdateProfile(ctx context.Context, req api.UpdateProfileRequest) (*api.ProfileResponse, error) {
	var out api.ProfileResponse
	if err := c.do(ctx, http.MethodPatch, profilePath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	r := c.rc.R().SetContext(ctx)
	if body != nil {
		r.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := r.Execute(method, path)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}

	data := resp.Body()
	if !resp.IsSuccess() {
		apiErr := &APIError{StatusCode: resp.StatusCode()}
		var er api.ErrorResponse
		if json.Unmarshal(data, &er) == nil {
			apiErr.Message = er.Message
			apiErr.Fields = er.Errors
		}
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
