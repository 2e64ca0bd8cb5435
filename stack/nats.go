package stack

import (
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Nats publishes on an optional connection. A zero Nats (no host
// configured) drops every message.
type Nats struct {
	conn   *nats.Conn
	logger *zap.Logger
}

func (n *Nats) Enabled() bool {
	return n != nil && n.conn != nil
}

func (n *Nats) Publish(subject string, data []byte) error {
	if !n.Enabled() {
		return nil
	}
	return n.conn.Publish(subject, data)
}

// Close flushes pending messages before closing.
func (n *Nats) Close() {
	if !n.Enabled() {
		return
	}
	if err := n.conn.Drain(); err != nil {
		n.logger.Warn("drain nats", zap.Error(err))
	}
}

func NewNats(host string, logger *zap.Logger) (*Nats, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if host == "" {
		return &Nats{logger: logger}, nil
	}
	conn, err := nats.Connect(
		host,
		nats.Name("academix-api"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", zap.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, err
	}
	return &Nats{
		conn:   conn,
		logger: logger,
	}, nil
}
