package eventlog

import (
	"encoding/json"
	"log/slog"
)

// Sink delivers serialized entries to an external transport. The Kafka
// producer in internal/platform/kafka satisfies this.
type Sink interface {
	ProduceAsync(topic string, key, value []byte) error
}

// Publisher fans accepted entries out to external indexers. Delivery is
// fire-and-forget: the in-process log remains the source of truth, and
// downstream consumers are required to fold idempotently, so a dropped or
// re-delivered message never corrupts a projection.
type Publisher struct {
	sink   Sink
	topic  string
	logger *slog.Logger
}

// NewPublisher wires a sink and topic. A nil sink yields a no-op publisher
// so callers never have to branch.
func NewPublisher(sink Sink, topic string, logger *slog.Logger) *Publisher {
	return &Publisher{sink: sink, topic: topic, logger: logger}
}

// Publish serializes the entry as JSON keyed by subject, preserving
// per-subject ordering across partitions.
func (p *Publisher) Publish(e Entry) {
	if p == nil || p.sink == nil {
		return
	}
	value, err := json.Marshal(e)
	if err != nil {
		if p.logger != nil {
			p.logger.Error("failed to encode event for fan-out", "seq", e.Seq, "kind", e.Kind, "error", err)
		}
		return
	}
	if err := p.sink.ProduceAsync(p.topic, []byte(e.Subject), value); err != nil && p.logger != nil {
		p.logger.Error("failed to fan out event", "seq", e.Seq, "kind", e.Kind, "error", err)
	}
}
