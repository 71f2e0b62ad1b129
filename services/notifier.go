// services/notifier.go
package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// RunNotifier is told about every finished seed run.
type RunNotifier interface {
	NotifyRun(ctx context.Context, summary RunSummary) error
}

type noopNotifier struct{}

func (noopNotifier) NotifyRun(context.Context, RunSummary) error { return nil }

// KafkaNotifier publishes run summaries as JSON, keyed by run id.
type KafkaNotifier struct {
	writer *kafka.Writer
}

func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	return &KafkaNotifier{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}}
}

func (k *KafkaNotifier) NotifyRun(ctx context.Context, summary RunSummary) error {
	value, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("seed-run-%s", summary.RunID)),
		Value: value,
	}
	return k.writer.WriteMessages(ctx, msg)
}

func (k *KafkaNotifier) Close() error {
	return k.writer.Close()
}
