package eventbus

import (
	"context"

	"github.com/nats-io/nats.go"
)

// NATSConn is the part of *nats.Conn used by NATSSink.
type NATSConn interface {
	PublishMsg(m *nats.Msg) error
}

// NATSSink publishes messages on the subject named by Message.Topic.
type NATSSink struct {
	conn NATSConn
}

// NewNATSSink wraps conn.
func NewNATSSink(conn NATSConn) *NATSSink {
	return &NATSSink{conn: conn}
}

func (s *NATSSink) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := nats.NewMsg(msg.Topic)
	m.Data = msg.Body
	for k, v := range msg.Headers {
		m.Header.Set(k, v)
	}
	return s.conn.PublishMsg(m)
}
