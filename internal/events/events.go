// File: internal/events/events.go
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const SubjectProfileUpdated = "profile.updated"

// ProfileUpdated 個人資料更新後對外發布的事件
type ProfileUpdated struct {
	ID         uuid.UUID `json:"id"`
	ProfileID  uuid.UUID `json:"profileId"`
	UserID     string    `json:"userId"`
	Name       string    `json:"name"`
	ImageURL   string    `json:"imageUrl"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher 發布事件的介面
type Publisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
	Close()
}

// PublishJSON 將 v 編碼為 JSON 後發布
func PublishJSON(ctx context.Context, p Publisher, subject string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", subject, err)
	}
	if err := p.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

// NoopPublisher 未設定 NATS 時使用
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, []byte) error { return nil }
func (NoopPublisher) Close()                                        {}

type Message struct {
	Subject string
	Data    []byte
}

// FakePublisher 測試用，記錄所有發布的訊息
type FakePublisher struct {
	PublishFn func(ctx context.Context, subject string, data []byte) error
	Published []Message
	Closed    bool
}

func (f *FakePublisher) Publish(ctx context.Context, subject string, data []byte) error {
	if f.PublishFn != nil {
		if err := f.PublishFn(ctx, subject, data); err != nil {
			return err
		}
	}
	f.Published = append(f.Published, Message{Subject: subject, Data: data})
	return nil
}

func (f *FakePublisher) Close() { f.Closed = true }
