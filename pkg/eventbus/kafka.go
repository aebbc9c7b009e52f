package eventbus

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// KafkaWriter is the part of *kafka.Writer used by KafkaSink.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaSink writes messages to the topic named by Message.Topic. The
// writer must not have a Topic configured.
type KafkaSink struct {
	writer KafkaWriter
}

// NewKafkaSink wraps writer.
func NewKafkaSink(writer KafkaWriter) *KafkaSink {
	return &KafkaSink{writer: writer}
}

func (s *KafkaSink) Send(ctx context.Context, msg Message) error {
	headers := make([]kafka.Header, 0, len(msg.Headers))
	for k, v := range msg.Headers {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}
	return s.writer.WriteMessages(ctx, kafka.Message{
		Topic:   msg.Topic,
		Key:     msg.Key,
		Value:   msg.Body,
		Headers: headers,
	})
}
