package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"pessoas/internal/platform/kafka/producer"
)

// Topic is where person audit events land.
const Topic = "pessoas.audit"

// KafkaSink forwards events to a Kafka topic, keyed by person key so one
// person's trail stays ordered within a partition.
type KafkaSink struct {
	producer *producer.Producer
	topic    string
}

func NewKafkaSink(p *producer.Producer, topic string) *KafkaSink {
	if topic == "" {
		topic = Topic
	}
	return &KafkaSink{producer: p, topic: topic}
}

func (s *KafkaSink) Append(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}
	return s.producer.Produce(ctx, &producer.Message{
		Topic: s.topic,
		Key:   []byte(event.PersonKey.String()),
		Value: payload,
		Headers: map[string]string{
			"action": string(event.Action),
		},
	})
}
