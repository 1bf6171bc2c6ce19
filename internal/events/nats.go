// File: internal/events/nats.go
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

const (
	natsMaxReconnects = 10
	natsReconnectWait = 2 * time.Second
)

type natsConn interface {
	Publish(subj string, data []byte) error
	Drain() error
	Close()
}

// 供測試替換
var natsConnect = func(url string, opts ...nats.Option) (natsConn, error) {
	return nats.Connect(url, opts...)
}

// NATSPublisher 以 core NATS 發布事件
type NATSPublisher struct {
	conn natsConn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.Name("ecarry-photography"),
		nats.MaxReconnects(natsMaxReconnects),
		nats.ReconnectWait(natsReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}
	conn, err := natsConnect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.conn.Publish(subject, data)
}

// Close 先 Drain 送出緩衝中的訊息，失敗才直接關閉
func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		log.Warn().Err(err).Msg("NATS drain failed")
		p.conn.Close()
	}
}
