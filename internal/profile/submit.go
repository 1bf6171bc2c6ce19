// File: internal/profile/submit.go
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"ecarry-photography/internal/api"

	"github.com/rs/zerolog/log"
)

// Updater 送出部分更新並回傳更新後的 profile
type Updater interface {
	UpdateProfile(ctx context.Context, req api.UpdateProfileRequest) (*api.ProfileResponse, error)
}

// Refresher 在更新成功後重新載入目前畫面的資料
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RefreshFunc 讓一般函式可以當作 Refresher 使用
type RefreshFunc func(ctx context.Context) error

func (f RefreshFunc) Refresh(ctx context.Context) error { return f(ctx) }

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification 短暫顯示的提示訊息
type Notification struct {
	Title       string
	Description string
	Variant     Variant
}

type Notifier interface {
	Notify(n Notification)
}

// WriterNotifier 將提示訊息寫到 io.Writer（CLI 使用）
type WriterNotifier struct {
	W io.Writer
}

func (w WriterNotifier) Notify(n Notification) {
	prefix := "»"
	if n.Variant == VariantDestructive {
		prefix = "✗"
	}
	fmt.Fprintf(w.W, "%s %s\n", prefix, n.Title)
	if n.Description != "" {
		fmt.Fprintln(w.W, n.Description)
	}
}

// Submitter 負責送出已驗證的表單
type Submitter struct {
	updater   Updater
	notifier  Notifier
	refresher Refresher
}

func NewSubmitter(updater Updater, notifier Notifier, refresher Refresher) *Submitter {
	return &Submitter{updater: updater, notifier: notifier, refresher: refresher}
}

// Submit 依序：回顯送出內容、PATCH、解析回應、重新整理畫面一次。
// 失敗時顯示錯誤提示並回傳錯誤，不重試也不觸發重新整理。
func (s *Submitter) Submit(ctx context.Context, v Values) (*api.ProfileResponse, error) {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	s.notifier.Notify(Notification{
		Title:       "You submitted the following values:",
		Description: string(payload),
		Variant:     VariantDefault,
	})

	name, imageURL := v.Name, v.ImageURL
	profile, err := s.updater.UpdateProfile(ctx, api.UpdateProfileRequest{
		Name:     &name,
		ImageURL: &imageURL,
	})
	if err != nil {
		log.Error().Err(err).Msg("profile update failed")
		s.notifier.Notify(Notification{
			Title:       "Profile update failed",
			Description: failureMessage(err),
			Variant:     VariantDestructive,
		})
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if err := s.refresher.Refresh(ctx); err != nil {
		// 更新已寫入，刷新失敗只提示不回傳錯誤
		log.Warn().Err(err).Msg("refresh after profile update failed")
		s.notifier.Notify(Notification{
			Title:       "Profile updated, but the view could not be refreshed",
			Description: err.Error(),
			Variant:     VariantDestructive,
		})
	}
	return profile, nil
}

type messager interface {
	UserMessage() string
}

func failureMessage(err error) string {
	var m messager
	if errors.As(err, &m) {
		return m.UserMessage()
	}
	return err.Error()
}
